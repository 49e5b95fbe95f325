package utils

import (
	"os"
	"path/filepath"
	"strings"
)

const DefaultVideoFilename = "video.mp4"

// ResolvePath normalizes an absolute path as-is and resolves a relative path
// against the working directory. Applied identically at upload, processing
// and deletion time so all three agree on artifact locations.
func ResolvePath(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return filepath.Clean(path)
	}
	return filepath.Join(wd, path)
}

// SanitizeFilename strips any directory component from a client-supplied
// filename, falling back to video.mp4.
func SanitizeFilename(name string) string {
	if strings.TrimSpace(name) == "" {
		return DefaultVideoFilename
	}
	// Uploads may carry either separator regardless of the server platform.
	name = strings.ReplaceAll(name, "\\", "/")
	base := filepath.Base(filepath.FromSlash(name))
	if base == "." || base == string(filepath.Separator) || strings.TrimSpace(base) == "" {
		return DefaultVideoFilename
	}
	return base
}

// HasMP4Signature reports whether header carries the ISO base media file
// format box signature: ASCII "ftyp" at byte offset 4.
func HasMP4Signature(header []byte) bool {
	if len(header) < 12 {
		return false
	}
	return header[4] == 'f' && header[5] == 't' && header[6] == 'y' && header[7] == 'p'
}
