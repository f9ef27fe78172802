// Command hevcpress batch-transcodes video libraries to H.265/HEVC by
// driving external ffmpeg and ffprobe binaries.
package main
