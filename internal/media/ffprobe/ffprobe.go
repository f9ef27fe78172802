package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// MediaDuration is a probed container duration: a non-negative number of
// seconds, or an explicit unknown sentinel.
type MediaDuration struct {
	seconds float64
	known   bool
}

// KnownDuration constructs a duration of the given seconds.
func KnownDuration(seconds float64) MediaDuration {
	if seconds < 0 {
		return MediaDuration{}
	}
	return MediaDuration{seconds: seconds, known: true}
}

// UnknownDuration constructs the unknown sentinel.
func UnknownDuration() MediaDuration {
	return MediaDuration{}
}

// Known reports whether the probe produced a usable value.
func (d MediaDuration) Known() bool { return d.known }

// Seconds returns the duration in seconds, or 0 when unknown.
func (d MediaDuration) Seconds() float64 {
	if !d.known {
		return 0
	}
	return d.seconds
}

func (d MediaDuration) String() string {
	if !d.known {
		return "unknown"
	}
	return strconv.FormatFloat(d.seconds, 'f', 2, 64) + "s"
}

type durationPayload struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Duration executes ffprobe against the provided path and returns the
// container duration. Every failure maps to the unknown sentinel; the error
// carries the cause for logging and is never fatal to the caller.
func Duration(ctx context.Context, binary string, path string) (MediaDuration, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return UnknownDuration(), errors.New("ffprobe duration: empty path")
	}
	absolute, err := filepath.Abs(path)
	if err != nil {
		return UnknownDuration(), fmt.Errorf("ffprobe duration: resolve path: %w", err)
	}

	cmd := exec.CommandContext(ctx, binary,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "json",
		"--", absolute,
	)
	output, err := cmd.Output()
	if err != nil {
		detail := ""
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			detail = strings.TrimSpace(string(exitErr.Stderr))
		}
		if detail != "" {
			return UnknownDuration(), fmt.Errorf("ffprobe duration: %w: %s", err, detail)
		}
		return UnknownDuration(), fmt.Errorf("ffprobe duration: %w", err)
	}

	return decodeDuration(output)
}

// decodeDuration parses the ffprobe JSON payload into a MediaDuration.
func decodeDuration(payload []byte) (MediaDuration, error) {
	var decoded durationPayload
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return UnknownDuration(), fmt.Errorf("ffprobe parse: %w", err)
	}
	raw := strings.TrimSpace(decoded.Format.Duration)
	if raw == "" {
		return UnknownDuration(), errors.New("ffprobe parse: format.duration missing")
	}
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return UnknownDuration(), fmt.Errorf("ffprobe parse: duration %q: %w", raw, err)
	}
	if seconds < 0 {
		return UnknownDuration(), fmt.Errorf("ffprobe parse: negative duration %q", raw)
	}
	return KnownDuration(seconds), nil
}
