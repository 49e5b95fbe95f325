package utils

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
)

// RemoveDirRecursive walks dir bottom-up and attempts to delete every entry,
// accumulating individual failures instead of aborting. A missing directory
// is not an error.
func RemoveDirRecursive(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}

	var paths []string
	walkErr := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		paths = append(paths, path)
		return nil
	})

	// Deepest entries first so files go before their parent directories.
	sort.Sort(sort.Reverse(sort.StringSlice(paths)))

	var failures []string
	for _, path := range paths {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			failures = append(failures, path)
		}
	}
	if walkErr != nil {
		return errors.Wrap(walkErr, "walk directory")
	}
	if len(failures) > 0 {
		return errors.Errorf("failed to remove %d entries under %s", len(failures), dir)
	}
	return nil
}

// RemoveFileIfExists deletes a single file, treating absence as success.
func RemoveFileIfExists(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "remove %s", path)
	}
	return nil
}
