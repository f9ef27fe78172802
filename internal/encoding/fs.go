package encoding

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OutputName derives the deterministic output filename for an input file and
// profile tag: "<stem>_<tag><ext>". Determinism is what makes re-runs
// idempotent, so no randomness is allowed here.
func OutputName(inputPath, tag, outputExt string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem + "_" + tag + outputExt
}

// ensureDir creates the output directory if absent. Creation is idempotent
// so concurrent workers can race on it safely.
func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure output directory %s: %w", dir, err)
	}
	return nil
}
