package encoding

import (
	"strconv"

	"hevcpress/internal/config"
)

// encodeArgs constructs the full ffmpeg argument list for one transcode.
// Field order matters to ffmpeg: input first, then stream options, then the
// output path last.
func encodeArgs(input, output string, profile Profile, enc config.Encoding) []string {
	args := make([]string, 0, 20+len(profile.ExtraArgs))
	args = append(args,
		"-i", input,
		"-map_metadata", "0",
		"-c:v", profile.VideoCodec,
		profile.qualityFlag(), strconv.Itoa(profile.QualityValue),
		"-preset", profile.Preset,
	)
	args = append(args, profile.ExtraArgs...)
	args = append(args,
		// hvc1 sample entry keeps HEVC-in-MP4 playable on Apple players.
		"-tag:v", "hvc1",
		"-c:a", enc.AudioCodec,
		"-b:a", enc.AudioBitrate,
		"-stats",
		output,
	)
	return args
}
