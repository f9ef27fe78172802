package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"hevcpress/internal/config"
	"hevcpress/internal/services"
)

// Requirement defines an external dependency hevcpress relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Required returns the requirements for a transcode run.
func Required(enc config.Encoding) []Requirement {
	return []Requirement{
		{Name: "FFmpeg", Command: enc.FFmpegBinary, Description: "Encodes video to H.265/HEVC"},
		{Name: "FFprobe", Command: enc.FFprobeBinary, Description: "Reports media duration"},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if resolved, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		} else {
			status.Command = resolved
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// VerifyRequired checks every required binary and returns a configuration
// error naming the first one that cannot be resolved.
func VerifyRequired(enc config.Encoding) error {
	for _, status := range CheckBinaries(Required(enc)) {
		if status.Optional || status.Available {
			continue
		}
		return services.Wrap(services.ErrConfiguration, "deps", "check binaries", status.Detail, nil)
	}
	return nil
}
