package batch

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"hevcpress/internal/encoding"
	"hevcpress/internal/journal"
	"hevcpress/internal/logging"
	"hevcpress/internal/services"
)

type fakeRunner struct {
	mu      sync.Mutex
	calls   []string
	results map[string]encoding.Result
	errs    map[string]error
}

func (f *fakeRunner) Run(ctx context.Context, inputPath, outputDir string) (encoding.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, inputPath)
	f.mu.Unlock()
	if err, ok := f.errs[filepath.Base(inputPath)]; ok {
		return encoding.Result{}, err
	}
	if result, ok := f.results[filepath.Base(inputPath)]; ok {
		result.Input = inputPath
		return result, nil
	}
	return encoding.Result{Input: inputPath, Outcome: encoding.OutcomeSuccess}, nil
}

func (f *fakeRunner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func seedInputs(t *testing.T, names ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, name := range names {
		writeFile(t, filepath.Join(root, name))
	}
	return root
}

func TestControllerIsolatesFileFailures(t *testing.T) {
	root := seedInputs(t, "a.mp4", "b.mp4", "c.mp4")
	runner := &fakeRunner{
		results: map[string]encoding.Result{
			"b.mp4": {Outcome: encoding.OutcomeFailed, Reason: "exit status 1"},
			"c.mp4": {Outcome: encoding.OutcomeSkipped, Reason: "output exists"},
		},
	}

	controller := NewController(runner, nil, logging.NewNop(), 1)
	summary, err := controller.Run(context.Background(), root, t.TempDir(), []string{".mp4"}, "CRF20")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if runner.callCount() != 3 {
		t.Fatalf("expected all files attempted, got %d calls", runner.callCount())
	}
	succeeded, skipped, failed := summary.Counts()
	if succeeded != 1 || skipped != 1 || failed != 1 {
		t.Fatalf("unexpected counts: %d/%d/%d", succeeded, skipped, failed)
	}
}

func TestControllerStopsOnFatalError(t *testing.T) {
	root := seedInputs(t, "a.mp4", "b.mp4", "c.mp4")
	fatal := services.Wrap(services.ErrConfiguration, "encoding", "start", "encoder binary not found", nil)
	runner := &fakeRunner{errs: map[string]error{"a.mp4": fatal}}

	controller := NewController(runner, nil, logging.NewNop(), 1)
	summary, err := controller.Run(context.Background(), root, t.TempDir(), []string{".mp4"}, "CRF20")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if runner.callCount() != 1 {
		t.Fatalf("expected batch to stop after fatal error, got %d calls", runner.callCount())
	}
	succeeded, skipped, failed := summary.Counts()
	if succeeded != 0 || skipped != 0 || failed != 0 {
		t.Fatalf("unexpected counts after fatal error: %d/%d/%d", succeeded, skipped, failed)
	}
}

func TestControllerEmptyInputTree(t *testing.T) {
	runner := &fakeRunner{}
	controller := NewController(runner, nil, logging.NewNop(), 1)
	summary, err := controller.Run(context.Background(), t.TempDir(), t.TempDir(), []string{".mp4"}, "CRF20")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if runner.callCount() != 0 {
		t.Fatalf("expected no runner calls, got %d", runner.callCount())
	}
	if results := summary.Results(); len(results) != 0 {
		t.Fatalf("expected empty summary, got %v", results)
	}
}

func TestControllerRecordsJournal(t *testing.T) {
	root := seedInputs(t, "a.mp4", "b.mp4")
	store, err := journal.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	defer store.Close()

	runner := &fakeRunner{
		results: map[string]encoding.Result{
			"b.mp4": {Outcome: encoding.OutcomeFailed, Reason: "exit status 1"},
		},
	}
	controller := NewController(runner, store, logging.NewNop(), 1)
	if _, err := controller.Run(context.Background(), root, t.TempDir(), []string{".mp4"}, "CRF20"); err != nil {
		t.Fatalf("run: %v", err)
	}

	runs, err := store.RecentRuns(context.Background(), 5)
	if err != nil {
		t.Fatalf("recent runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 journal run, got %d", len(runs))
	}
	run := runs[0]
	if run.Succeeded != 1 || run.Failed != 1 {
		t.Fatalf("unexpected journal counts: %#v", run)
	}
	if run.FinishedAt.IsZero() {
		t.Fatal("expected run to be finalized")
	}
	files, err := store.RunFiles(context.Background(), run.ID)
	if err != nil {
		t.Fatalf("run files: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 file records, got %d", len(files))
	}
}

func TestControllerWorkerPool(t *testing.T) {
	root := seedInputs(t, "a.mp4", "b.mp4", "c.mp4", "d.mp4")
	runner := &fakeRunner{}

	controller := NewController(runner, nil, logging.NewNop(), 3)
	summary, err := controller.Run(context.Background(), root, t.TempDir(), []string{".mp4"}, "CRF20")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if runner.callCount() != 4 {
		t.Fatalf("expected 4 calls, got %d", runner.callCount())
	}
	succeeded, _, _ := summary.Counts()
	if succeeded != 4 {
		t.Fatalf("expected 4 successes, got %d", succeeded)
	}
}
