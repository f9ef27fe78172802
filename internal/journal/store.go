package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store manages run history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id           TEXT PRIMARY KEY,
    profile_tag  TEXT NOT NULL,
    input_dir    TEXT NOT NULL,
    output_dir   TEXT NOT NULL,
    started_at   TEXT NOT NULL,
    finished_at  TEXT,
    succeeded    INTEGER NOT NULL DEFAULT 0,
    skipped      INTEGER NOT NULL DEFAULT 0,
    failed       INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS run_files (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id           TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    input_path       TEXT NOT NULL,
    output_path      TEXT,
    outcome          TEXT NOT NULL,
    reason           TEXT,
    duration_seconds REAL,
    elapsed_seconds  REAL,
    recorded_at      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_run_files_run ON run_files(run_id);
`

// Run is one batch invocation.
type Run struct {
	ID         string
	ProfileTag string
	InputDir   string
	OutputDir  string
	StartedAt  time.Time
	FinishedAt time.Time
	Succeeded  int
	Skipped    int
	Failed     int
}

// FileRecord is one attempted file within a run.
type FileRecord struct {
	InputPath       string
	OutputPath      string
	Outcome         string
	Reason          string
	DurationSeconds float64
	ElapsedSeconds  float64
}

// Open initializes or connects to the journal database and applies the
// schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("journal path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// BeginRun inserts a new run row and returns its identifier.
func (s *Store) BeginRun(ctx context.Context, profileTag, inputDir, outputDir string) (string, error) {
	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, profile_tag, input_dir, output_dir, started_at) VALUES (?, ?, ?, ?, ?)`,
		id, profileTag, inputDir, outputDir, now,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// RecordFile appends an attempted file to a run.
func (s *Store) RecordFile(ctx context.Context, runID string, rec FileRecord) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO run_files (run_id, input_path, output_path, outcome, reason, duration_seconds, elapsed_seconds, recorded_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, rec.InputPath, nullableString(rec.OutputPath), rec.Outcome, nullableString(rec.Reason),
		rec.DurationSeconds, rec.ElapsedSeconds, now,
	)
	if err != nil {
		return fmt.Errorf("insert run file: %w", err)
	}
	return nil
}

// FinishRun stamps the run with its completion time and outcome counts.
func (s *Store) FinishRun(ctx context.Context, runID string, succeeded, skipped, failed int) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, succeeded = ?, skipped = ?, failed = ? WHERE id = ?`,
		now, succeeded, skipped, failed, runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// RecentRuns returns the newest runs first, bounded by limit (0 means a
// default of 20).
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, profile_tag, input_dir, output_dir, started_at, finished_at, succeeded, skipped, failed
         FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var started string
		var finished sql.NullString
		if err := rows.Scan(&run.ID, &run.ProfileTag, &run.InputDir, &run.OutputDir,
			&started, &finished, &run.Succeeded, &run.Skipped, &run.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt = parseTimestamp(started)
		if finished.Valid {
			run.FinishedAt = parseTimestamp(finished.String)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunFiles returns the file records of a run in insertion order.
func (s *Store) RunFiles(ctx context.Context, runID string) ([]FileRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT input_path, output_path, outcome, reason, duration_seconds, elapsed_seconds
         FROM run_files WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run files: %w", err)
	}
	defer rows.Close()

	var records []FileRecord
	for rows.Next() {
		var rec FileRecord
		var output, reason sql.NullString
		if err := rows.Scan(&rec.InputPath, &output, &rec.Outcome, &reason,
			&rec.DurationSeconds, &rec.ElapsedSeconds); err != nil {
			return nil, fmt.Errorf("scan run file: %w", err)
		}
		rec.OutputPath = output.String
		rec.Reason = reason.String
		records = append(records, rec)
	}
	return records, rows.Err()
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

func parseTimestamp(value string) time.Time {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}
