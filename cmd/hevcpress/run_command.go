package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"hevcpress/internal/batch"
	"hevcpress/internal/config"
	"hevcpress/internal/encoding"
	"hevcpress/internal/journal"
	"hevcpress/internal/logging"
	"hevcpress/internal/preflight"
)

const lockFileName = ".hevcpress.lock"

func newRunCommand(ctx *commandContext) *cobra.Command {
	var inputPath string
	var outputPath string
	var useGPU bool
	var workers int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Transcode every video file under a directory to H.265",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, ctx, inputPath, outputPath, useGPU, workers)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input_path", "i", "", "Directory containing source videos")
	cmd.Flags().StringVarP(&outputPath, "output_path", "o", "", "Destination directory (default: sibling <input>_encoded)")
	cmd.Flags().BoolVar(&useGPU, "gpu", false, "Encode with the NVENC hardware encoder")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent encodes (default from config)")
	_ = cmd.MarkFlagRequired("input_path")

	return cmd
}

func runBatch(cmd *cobra.Command, cmdCtx *commandContext, inputPath, outputPath string, useGPU bool, workers int) error {
	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := cmdCtx.ensureLogger()
	if err != nil {
		return err
	}

	input, output, err := resolveRunPaths(inputPath, outputPath)
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checks, err := preflight.RunChecks(cfg.Encoding, input, output)
	for _, check := range checks {
		if check.Passed {
			logger.Debug("preflight check passed", logging.String("check", check.Name))
			continue
		}
		logger.Error("preflight check failed",
			logging.String("check", check.Name),
			logging.String("detail", check.Detail),
		)
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(output, 0o755); err != nil {
		return fmt.Errorf("create output directory %s: %w", output, err)
	}
	lock := flock.New(filepath.Join(output, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another hevcpress run is already writing to %s", output)
	}
	defer func() { _ = lock.Unlock() }()

	store, storeErr := journal.Open(cfg.JournalPath())
	if storeErr != nil {
		logger.Warn("run journal disabled", logging.Error(storeErr))
		store = nil
	} else {
		defer store.Close()
	}

	profile := encoding.SelectProfile(cfg.Encoding, useGPU, logger)
	job := encoding.NewJob(cfg.Encoding, profile, logger, newProgressSink(logger))
	if workers <= 0 {
		workers = cfg.Encoding.Workers
	}
	controller := batch.NewController(job, store, logger, workers)

	logger.Info("batch starting",
		logging.String("input_dir", input),
		logging.String("output_dir", output),
		logging.String(logging.FieldProfile, profile.Tag),
		logging.Int("workers", workers),
	)

	summary, runErr := controller.Run(runCtx, input, output, cfg.Encoding.InputExtensions, profile.Tag)
	printSummary(cmd.OutOrStdout(), summary)
	if runErr != nil {
		return runErr
	}

	_, _, failed := summary.Counts()
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed; see the log for encoder transcripts", failed)
	}
	return nil
}

// resolveRunPaths expands and absolutizes the input directory and derives
// the default output directory (a sibling named <input>_encoded) when none
// was given.
func resolveRunPaths(inputPath, outputPath string) (string, string, error) {
	input, err := config.ExpandPath(strings.TrimSpace(inputPath))
	if err != nil {
		return "", "", fmt.Errorf("resolve input path: %w", err)
	}
	input, err = filepath.Abs(input)
	if err != nil {
		return "", "", fmt.Errorf("resolve input path: %w", err)
	}

	output := strings.TrimSpace(outputPath)
	if output == "" {
		output = filepath.Join(filepath.Dir(input), filepath.Base(input)+"_encoded")
	} else {
		output, err = config.ExpandPath(output)
		if err != nil {
			return "", "", fmt.Errorf("resolve output path: %w", err)
		}
		output, err = filepath.Abs(output)
		if err != nil {
			return "", "", fmt.Errorf("resolve output path: %w", err)
		}
	}
	return input, output, nil
}

func printSummary(out io.Writer, summary *batch.Summary) {
	results := summary.Results()
	sort.Slice(results, func(i, j int) bool { return results[i].Input < results[j].Input })

	if len(results) > 0 {
		rows := make([][]string, 0, len(results))
		for _, result := range results {
			rows = append(rows, []string{
				result.Title,
				result.Outcome.String(),
				result.Reason,
				formatElapsed(result.Elapsed),
			})
		}
		fmt.Fprintln(out, renderTable([]string{"Title", "Outcome", "Reason", "Elapsed"}, rows, 4))
	}

	succeeded, skipped, failed := summary.Counts()
	fmt.Fprintf(out, "Succeeded: %d  Skipped: %d  Failed: %d  (total %s)\n",
		succeeded, skipped, failed, summary.Elapsed().Round(time.Second))
}

func formatElapsed(elapsed time.Duration) string {
	if elapsed <= 0 {
		return "-"
	}
	return elapsed.Round(time.Second).String()
}
