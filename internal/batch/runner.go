package batch

import (
	"context"
	"sync"

	"log/slog"

	"hevcpress/internal/encoding"
	"hevcpress/internal/journal"
	"hevcpress/internal/logging"
)

// FileRunner transcodes one file. A returned error is fatal to the batch;
// per-file problems are carried inside the Result.
type FileRunner interface {
	Run(ctx context.Context, inputPath, outputDir string) (encoding.Result, error)
}

// Controller walks the input tree and fans matching files out to a bounded
// worker pool of FileRunner invocations.
type Controller struct {
	runner  FileRunner
	journal *journal.Store
	logger  *slog.Logger
	workers int
}

// NewController constructs a Controller. jrnl and logger may be nil; workers
// below 1 is treated as 1, the safe default for hardware encoder sessions.
func NewController(runner FileRunner, jrnl *journal.Store, logger *slog.Logger, workers int) *Controller {
	if workers < 1 {
		workers = 1
	}
	return &Controller{
		runner:  runner,
		journal: jrnl,
		logger:  logging.NewComponentLogger(logger, "batch"),
		workers: workers,
	}
}

// Run processes every matching file under inputDir. The returned summary is
// valid even when err is non-nil; err reports fatal conditions only
// (unusable input, missing encoder, cancellation).
func (c *Controller) Run(ctx context.Context, inputDir, outputDir string, extensions []string, profileTag string) (*Summary, error) {
	files, err := Discover(inputDir, extensions)
	if err != nil {
		return NewSummary(), err
	}

	summary := NewSummary()
	c.logger.Info("batch discovered files",
		logging.Int("count", len(files)),
		logging.String("input_dir", inputDir),
		logging.String("output_dir", outputDir),
	)
	if len(files) == 0 {
		return summary, nil
	}

	runID := ""
	if c.journal != nil {
		id, journalErr := c.journal.BeginRun(ctx, profileTag, inputDir, outputDir)
		if journalErr != nil {
			c.logger.Warn("journal unavailable for this run", logging.Error(journalErr))
		} else {
			runID = id
			c.logger.Info("run journal entry created", logging.String(logging.FieldRunID, runID))
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan string)
	var (
		wg        sync.WaitGroup
		fatalOnce sync.Once
		fatalErr  error
	)

	for i := 0; i < c.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				if runCtx.Err() != nil {
					continue
				}
				result, runErr := c.runner.Run(runCtx, path, outputDir)
				if runErr != nil {
					// Fatal conditions stop issuing work; everything queued
					// behind them would fail identically.
					fatalOnce.Do(func() {
						fatalErr = runErr
						cancel()
					})
					continue
				}
				summary.Add(result)
				c.record(runCtx, runID, result)
			}
		}()
	}

	for _, path := range files {
		select {
		case jobs <- path:
		case <-runCtx.Done():
		}
		if runCtx.Err() != nil {
			break
		}
	}
	close(jobs)
	wg.Wait()

	if runID != "" {
		succeeded, skipped, failed := summary.Counts()
		// Finish with a fresh context so an interrupted batch still lands in
		// the journal.
		if journalErr := c.journal.FinishRun(context.WithoutCancel(ctx), runID, succeeded, skipped, failed); journalErr != nil {
			c.logger.Warn("failed to finalize journal entry", logging.Error(journalErr))
		}
	}

	if fatalErr != nil {
		return summary, fatalErr
	}
	if ctx.Err() != nil {
		return summary, ctx.Err()
	}
	return summary, nil
}

func (c *Controller) record(ctx context.Context, runID string, result encoding.Result) {
	if c.journal == nil || runID == "" {
		return
	}
	rec := journal.FileRecord{
		InputPath:       result.Input,
		OutputPath:      result.Output,
		Outcome:         result.Outcome.String(),
		Reason:          result.Reason,
		DurationSeconds: result.Duration.Seconds(),
		ElapsedSeconds:  result.Elapsed.Seconds(),
	}
	if err := c.journal.RecordFile(context.WithoutCancel(ctx), runID, rec); err != nil {
		c.logger.Warn("failed to journal file outcome",
			logging.String(logging.FieldFile, result.Input),
			logging.Error(err),
		)
	}
}
