package preflight

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"hevcpress/internal/config"
	"hevcpress/internal/deps"
	"hevcpress/internal/services"
)

// Result reports the outcome of a single check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// CheckInputDirectory verifies that the input path is an existing, readable
// directory.
func CheckInputDirectory(path string) Result {
	const name = "Input directory"
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{Name: name, Detail: fmt.Sprintf("%s does not exist", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s: stat: %v", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s is not a directory", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s: insufficient permissions: %v", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: path}
}

// CheckOutputDirectory verifies the output directory is writable, or that its
// nearest existing ancestor allows creating it.
func CheckOutputDirectory(path string) Result {
	const name = "Output directory"
	probe := path
	for {
		info, err := os.Stat(probe)
		if err == nil {
			if !info.IsDir() {
				return Result{Name: name, Detail: fmt.Sprintf("%s is not a directory", probe)}
			}
			if err := unix.Access(probe, unix.W_OK|unix.X_OK); err != nil {
				return Result{Name: name, Detail: fmt.Sprintf("%s: insufficient permissions: %v", probe, err)}
			}
			return Result{Name: name, Passed: true, Detail: path}
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return Result{Name: name, Detail: fmt.Sprintf("%s: stat: %v", probe, err)}
		}
		parent := filepath.Dir(probe)
		if parent == probe {
			return Result{Name: name, Detail: fmt.Sprintf("%s: no existing ancestor", path)}
		}
		probe = parent
	}
}

// CheckBinaries reports the availability of every required external binary.
func CheckBinaries(enc config.Encoding) []Result {
	statuses := deps.CheckBinaries(deps.Required(enc))
	results := make([]Result, 0, len(statuses))
	for _, status := range statuses {
		detail := status.Command
		if !status.Available {
			detail = status.Detail
		}
		results = append(results, Result{Name: status.Name, Passed: status.Available, Detail: detail})
	}
	return results
}

// RunChecks evaluates every check for a batch. The returned error is nil only
// when all checks pass; it is tagged so callers can distinguish configuration
// problems from input problems.
func RunChecks(enc config.Encoding, inputDir, outputDir string) ([]Result, error) {
	results := CheckBinaries(enc)
	var firstErr error
	for _, result := range results {
		if !result.Passed && firstErr == nil {
			firstErr = services.Wrap(services.ErrConfiguration, "preflight", "check binaries", result.Detail, nil)
		}
	}

	input := CheckInputDirectory(inputDir)
	results = append(results, input)
	if !input.Passed && firstErr == nil {
		firstErr = services.Wrap(services.ErrInput, "preflight", "check input", input.Detail, nil)
	}

	output := CheckOutputDirectory(outputDir)
	results = append(results, output)
	if !output.Passed && firstErr == nil {
		firstErr = services.Wrap(services.ErrInput, "preflight", "check output", output.Detail, nil)
	}

	return results, firstErr
}
