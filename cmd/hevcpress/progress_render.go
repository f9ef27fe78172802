package main

import (
	"os"
	"sync"
	"time"

	"log/slog"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"hevcpress/internal/encoding"
	"hevcpress/internal/logging"
)

const logProgressInterval = 15 * time.Second

// newProgressSink selects a renderer for live encode progress: a terminal
// gets a bar on stderr, everything else gets throttled log lines.
func newProgressSink(logger *slog.Logger) encoding.ProgressSink {
	fd := os.Stderr.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return &barSink{}
	}
	return &logSink{logger: logging.NewComponentLogger(logger, "progress")}
}

// barSink renders one progress bar per file. With more than one worker the
// bar tracks whichever encode reported last; the log file keeps the full
// per-file record.
type barSink struct {
	mu  sync.Mutex
	bar *progressbar.ProgressBar
}

func (s *barSink) Begin(title string, totalSeconds float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bar = progressbar.NewOptions64(int64(totalSeconds*100),
		progressbar.OptionSetDescription(title),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionClearOnFinish(),
	)
}

func (s *barSink) Update(currentSeconds float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bar == nil {
		return
	}
	_ = s.bar.Set64(int64(currentSeconds * 100))
}

func (s *barSink) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bar == nil {
		return
	}
	_ = s.bar.Finish()
	s.bar = nil
}

// logSink emits progress as periodic log lines for non-interactive runs.
type logSink struct {
	logger *slog.Logger

	mu    sync.Mutex
	title string
	total float64
	last  time.Time
}

func (s *logSink) Begin(title string, totalSeconds float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.title = title
	s.total = totalSeconds
	s.last = time.Now()
}

func (s *logSink) Update(currentSeconds float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if time.Since(s.last) < logProgressInterval {
		return
	}
	s.last = time.Now()
	attrs := []any{
		logging.String("title", s.title),
		logging.Float64("seconds", currentSeconds),
	}
	if s.total > 0 {
		attrs = append(attrs, logging.Float64("percent", currentSeconds/s.total*100))
	}
	s.logger.Info("encode progress", attrs...)
}

func (s *logSink) End() {}
