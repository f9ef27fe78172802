package encoding

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"log/slog"

	"hevcpress/internal/config"
	"hevcpress/internal/logging"
	"hevcpress/internal/media/ffprobe"
	"hevcpress/internal/services"
	"hevcpress/internal/textutil"
)

// Outcome classifies the terminal state of one transcode task.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeSkipped
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result reports how a single file fared.
type Result struct {
	Input    string
	Output   string
	Title    string
	Outcome  Outcome
	Reason   string
	Duration ffprobe.MediaDuration
	Elapsed  time.Duration
}

// ProgressSink receives live progress for the running file. Implementations
// render it (progress bar, log lines); the invariants live in the tracker.
type ProgressSink interface {
	Begin(title string, totalSeconds float64)
	Update(currentSeconds float64)
	End()
}

// Job runs transcode tasks with a fixed profile and encoding settings.
type Job struct {
	enc      config.Encoding
	profile  Profile
	logger   *slog.Logger
	progress ProgressSink
}

// NewJob constructs a Job. logger and progress may be nil.
func NewJob(enc config.Encoding, profile Profile, logger *slog.Logger, progress ProgressSink) *Job {
	return &Job{
		enc:      enc,
		profile:  profile,
		logger:   logging.NewComponentLogger(logger, "encoder"),
		progress: progress,
	}
}

// Run transcodes one input file into outputDir. Per-file problems are
// reported through the Result; a non-nil error is reserved for conditions
// that must stop the whole batch (context cancellation, encoder binary
// missing, unusable output directory).
func (j *Job) Run(ctx context.Context, inputPath, outputDir string) (Result, error) {
	started := time.Now()
	result := Result{
		Input: inputPath,
		Title: textutil.DeriveTitle(inputPath),
	}
	logger := j.logger.With(logging.String(logging.FieldFile, filepath.Base(inputPath)))

	duration, probeErr := probeDuration(ctx, j.enc.FFprobeBinary, inputPath)
	if ctx.Err() != nil {
		return result, ctx.Err()
	}
	result.Duration = duration
	if !duration.Known() {
		logger.Warn("skipping file: duration unknown", logging.Error(probeErr))
		result.Outcome = OutcomeSkipped
		result.Reason = "duration unknown"
		result.Elapsed = time.Since(started)
		return result, nil
	}

	if err := ensureDir(outputDir); err != nil {
		return result, services.Wrap(services.ErrInput, "encoder", "prepare output", err.Error(), nil)
	}
	result.Output = filepath.Join(outputDir, OutputName(inputPath, j.profile.Tag, j.enc.OutputExtension))

	if _, err := os.Stat(result.Output); err == nil {
		logger.Info("skipping file: output already exists",
			logging.String(logging.FieldOutput, filepath.Base(result.Output)))
		result.Outcome = OutcomeSkipped
		result.Reason = "already exists"
		result.Elapsed = time.Since(started)
		return result, nil
	}

	args := encodeArgs(inputPath, result.Output, j.profile, j.enc)
	logger.Info("starting transcode",
		logging.String(logging.FieldOutput, filepath.Base(result.Output)),
		logging.String(logging.FieldProfile, j.profile.Tag),
		logging.Float64("duration_seconds", duration.Seconds()),
	)

	transcript, runErr := j.runEncoder(ctx, args, result.Title, duration.Seconds())
	result.Elapsed = time.Since(started)
	if ctx.Err() != nil {
		return result, ctx.Err()
	}
	if runErr != nil {
		if services.IsFatal(runErr) {
			return result, runErr
		}
		result.Outcome = OutcomeFailed
		result.Reason = runErr.Error()
		// Batches must not silently lose failure context: record the full
		// command line and the entire stderr transcript for postmortems.
		logger.Error("transcode failed",
			logging.Error(runErr),
			logging.String("command", j.enc.FFmpegBinary+" "+strings.Join(args, " ")),
			logging.String("transcript", transcript),
		)
		return result, nil
	}

	result.Outcome = OutcomeSuccess
	logger.Info("transcode complete",
		logging.String(logging.FieldOutput, filepath.Base(result.Output)),
		logging.Duration("elapsed", result.Elapsed),
		logging.String("size_change", sizeChange(inputPath, result.Output)),
	)
	return result, nil
}

// runEncoder launches ffmpeg and drains its stderr through the progress
// tracker until end of stream, then reaps the process. The stream is always
// fully consumed before the exit status is read.
func (j *Job) runEncoder(ctx context.Context, args []string, title string, totalSeconds float64) (string, error) {
	cmd := exec.CommandContext(ctx, j.enc.FFmpegBinary, args...)
	cmd.Stdout = io.Discard
	// Give ffmpeg a moment to flush and exit after a kill before Wait
	// forcibly closes the pipes.
	cmd.WaitDelay = 5 * time.Second

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "encoder", "open stderr", "", err)
	}

	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", services.Wrap(services.ErrConfiguration, "encoder", "launch",
				fmt.Sprintf("encoder binary %q not found", j.enc.FFmpegBinary), err)
		}
		return "", services.Wrap(services.ErrConfiguration, "encoder", "launch", "", err)
	}

	tracker := NewProgressTracker(totalSeconds)
	if j.progress != nil {
		j.progress.Begin(title, totalSeconds)
	}

	var transcript strings.Builder
	scanner := bufio.NewScanner(stderr)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	scanner.Split(scanProgressLines)
	for scanner.Scan() {
		line := scanner.Text()
		transcript.WriteString(line)
		transcript.WriteByte('\n')
		if current, ok := tracker.Consume(line); ok && j.progress != nil {
			j.progress.Update(current)
		}
	}

	waitErr := cmd.Wait()
	if j.progress != nil {
		j.progress.End()
	}
	if waitErr != nil {
		exitCode := -1
		if cmd.ProcessState != nil {
			exitCode = cmd.ProcessState.ExitCode()
		}
		return transcript.String(), services.Wrap(services.ErrExternalTool, "encoder", "wait",
			fmt.Sprintf("exit status %d", exitCode), waitErr)
	}
	return transcript.String(), nil
}

// scanProgressLines splits on \n or \r so ffmpeg's carriage-return stats
// updates surface as individual lines instead of one giant token.
func scanProgressLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

func sizeChange(inputPath, outputPath string) string {
	inputInfo, err := os.Stat(inputPath)
	if err != nil || inputInfo.Size() == 0 {
		return "unknown"
	}
	outputInfo, err := os.Stat(outputPath)
	if err != nil {
		return "unknown"
	}
	ratio := float64(outputInfo.Size()) / float64(inputInfo.Size()) * 100
	return fmt.Sprintf("%.1f%% of original", ratio)
}
