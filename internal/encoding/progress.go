package encoding

import (
	"regexp"
	"strconv"
)

// timePattern matches ffmpeg's elapsed-time marker on stderr stats lines,
// e.g. "frame= 100 fps= 25 ... time=00:01:23.45 bitrate=...". ffmpeg emits a
// two-digit centisecond fraction today; a third digit is accepted and read as
// milliseconds in case the format ever gains precision.
var timePattern = regexp.MustCompile(`time=(\d{2}):(\d{2}):(\d{2})\.(\d{2,3})`)

// ProgressTracker converts encoder stderr lines into a monotonically
// non-decreasing elapsed-seconds value clamped to the known total duration.
// It is owned by a single running job and is not safe for concurrent use.
type ProgressTracker struct {
	total   float64
	current float64
}

// NewProgressTracker creates a tracker for a file of the given total
// duration in seconds.
func NewProgressTracker(total float64) *ProgressTracker {
	if total < 0 {
		total = 0
	}
	return &ProgressTracker{total: total}
}

// Consume scans one stderr line for a progress marker. It returns the new
// current value and true when the line advanced progress; lines without a
// recognizable marker, malformed fragments, and regressed timestamps all
// yield false and leave the state untouched.
func (t *ProgressTracker) Consume(line string) (float64, bool) {
	match := timePattern.FindStringSubmatch(line)
	if match == nil {
		return 0, false
	}
	seconds, ok := timestampSeconds(match[1], match[2], match[3], match[4])
	if !ok {
		return 0, false
	}
	if seconds > t.total {
		seconds = t.total
	}
	if seconds <= t.current {
		return 0, false
	}
	t.current = seconds
	return seconds, true
}

// Current returns the last emitted value.
func (t *ProgressTracker) Current() float64 { return t.current }

// Total returns the clamp ceiling.
func (t *ProgressTracker) Total() float64 { return t.total }

func timestampSeconds(hh, mm, ss, frac string) (float64, bool) {
	hours, err := strconv.Atoi(hh)
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil {
		return 0, false
	}
	seconds, err := strconv.Atoi(ss)
	if err != nil {
		return 0, false
	}
	fraction, err := strconv.Atoi(frac)
	if err != nil {
		return 0, false
	}
	scale := 100.0
	if len(frac) == 3 {
		scale = 1000.0
	}
	return float64(hours)*3600 + float64(minutes)*60 + float64(seconds) + float64(fraction)/scale, true
}
