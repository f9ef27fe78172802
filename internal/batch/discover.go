package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"hevcpress/internal/services"
)

// Discover recursively enumerates regular files under root whose extension
// matches the allow-list (case-insensitive). Traversal order follows the
// filesystem walk and is not guaranteed.
func Discover(root string, extensions []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, services.Wrap(services.ErrInput, "batch", "discover",
			fmt.Sprintf("input path %s is not accessible", root), err)
	}
	if !info.IsDir() {
		return nil, services.Wrap(services.ErrInput, "batch", "discover",
			fmt.Sprintf("input path %s is not a directory", root), nil)
	}

	allowed := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(ext)] = struct{}{}
	}

	var matches []string
	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := allowed[ext]; !ok {
			return nil
		}
		matches = append(matches, path)
		return nil
	})
	if err != nil {
		return nil, services.Wrap(services.ErrInput, "batch", "discover", "walk input tree", err)
	}
	return matches, nil
}
