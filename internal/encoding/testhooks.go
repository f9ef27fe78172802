package encoding

import (
	"context"

	"hevcpress/internal/media/ffprobe"
)

// probeDuration is the ffprobe function used by the encoding package.
// It is a package-level variable so tests can override it.
var probeDuration = ffprobe.Duration

// SetProbeForTests overrides the duration probe during tests.
func SetProbeForTests(fn func(context.Context, string, string) (ffprobe.MediaDuration, error)) func() {
	previous := probeDuration
	probeDuration = fn
	return func() {
		probeDuration = previous
	}
}
