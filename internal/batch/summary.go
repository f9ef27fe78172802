package batch

import (
	"sync"
	"time"

	"hevcpress/internal/encoding"
)

// Summary aggregates per-file outcomes across a batch. Safe for concurrent
// use by the worker pool.
type Summary struct {
	mu      sync.Mutex
	results []encoding.Result
	started time.Time
}

// NewSummary starts an empty summary clocked from now.
func NewSummary() *Summary {
	return &Summary{started: time.Now()}
}

// Add records one finished file.
func (s *Summary) Add(result encoding.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, result)
}

// Counts returns the number of succeeded, skipped, and failed files.
func (s *Summary) Counts() (succeeded, skipped, failed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, result := range s.results {
		switch result.Outcome {
		case encoding.OutcomeSuccess:
			succeeded++
		case encoding.OutcomeSkipped:
			skipped++
		case encoding.OutcomeFailed:
			failed++
		}
	}
	return succeeded, skipped, failed
}

// Results returns a copy of the recorded outcomes.
func (s *Summary) Results() []encoding.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]encoding.Result, len(s.results))
	copy(cp, s.results)
	return cp
}

// Elapsed reports wall time since the summary was started.
func (s *Summary) Elapsed() time.Duration {
	return time.Since(s.started)
}
