// Package ffprobe provides a typed wrapper around ffprobe container probes.
//
// The only fact hevcpress needs from a media file is its total duration,
// which becomes the denominator for live encode progress. The probe asks
// ffprobe for format.duration in JSON and maps every failure mode (missing
// binary, nonzero exit, malformed payload, non-numeric field) to an explicit
// unknown MediaDuration instead of an exception-style error: an unknown
// duration tells the caller to skip the file, nothing more.
package ffprobe
