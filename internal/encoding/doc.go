// Package encoding drives a single ffmpeg transcode from input file to
// H.265/HEVC output.
//
// The package owns profile selection (software libx265 CRF vs hardware
// hevc_nvenc CQP), deterministic output naming, the full encoder argument
// list, subprocess lifecycle, and live progress extraction from the encoder's
// stderr stream. Skip policy makes batch re-runs idempotent: files whose
// output already exists, or whose duration cannot be probed, are never
// encoded.
package encoding
