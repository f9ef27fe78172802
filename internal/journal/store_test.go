package journal

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRunRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	runID, err := store.BeginRun(ctx, "CRF20", "/in", "/out")
	if err != nil {
		t.Fatalf("begin run: %v", err)
	}
	if runID == "" {
		t.Fatal("expected run id")
	}

	records := []FileRecord{
		{InputPath: "/in/a.mp4", OutputPath: "/out/a_CRF20.mp4", Outcome: "success", DurationSeconds: 120, ElapsedSeconds: 35.5},
		{InputPath: "/in/b.mkv", Outcome: "skipped", Reason: "already exists"},
		{InputPath: "/in/c.avi", Outcome: "failed", Reason: "exit status 1"},
	}
	for _, rec := range records {
		if err := store.RecordFile(ctx, runID, rec); err != nil {
			t.Fatalf("record file: %v", err)
		}
	}
	if err := store.FinishRun(ctx, runID, 1, 1, 1); err != nil {
		t.Fatalf("finish run: %v", err)
	}

	runs, err := store.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("recent runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	run := runs[0]
	if run.ID != runID || run.ProfileTag != "CRF20" {
		t.Fatalf("unexpected run: %#v", run)
	}
	if run.Succeeded != 1 || run.Skipped != 1 || run.Failed != 1 {
		t.Fatalf("unexpected counts: %#v", run)
	}
	if run.FinishedAt.IsZero() || run.StartedAt.IsZero() {
		t.Fatalf("expected timestamps: %#v", run)
	}

	files, err := store.RunFiles(ctx, runID)
	if err != nil {
		t.Fatalf("run files: %v", err)
	}
	if len(files) != len(records) {
		t.Fatalf("expected %d files, got %d", len(records), len(files))
	}
	if files[1].Reason != "already exists" {
		t.Fatalf("unexpected reason: %q", files[1].Reason)
	}
	if files[0].OutputPath != "/out/a_CRF20.mp4" {
		t.Fatalf("unexpected output path: %q", files[0].OutputPath)
	}
}

func TestRecentRunsOrderAndLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	var last string
	for i := 0; i < 3; i++ {
		id, err := store.BeginRun(ctx, "CRF20", "/in", "/out")
		if err != nil {
			t.Fatalf("begin run: %v", err)
		}
		last = id
	}

	runs, err := store.RecentRuns(ctx, 2)
	if err != nil {
		t.Fatalf("recent runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != last {
		t.Fatalf("expected newest run first, got %s", runs[0].ID)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
