// =============================================================================
// DATANORM-AZ Processor - File Utilities
// =============================================================================
//
// Small helpers around export file placement: resolving user-supplied
// output paths against the configured output folder, creating directories
// on demand, and generating collision-free default file names.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// EnsureDir creates the directory (and parents) if it does not exist.
func EnsureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// ResolveOutputPath places a relative export path inside the output folder
// and makes sure the target directory exists. Absolute paths are honored
// as given.
func ResolveOutputPath(outputFolder, path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(outputFolder, path)
	}
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return "", err
	}
	return path, nil
}

// ExportFileName generates a unique default export name of the form
// {prefix}_{timestamp}_{uuid}{ext}.
func ExportFileName(prefix, ext string) string {
	return fmt.Sprintf("%s_%s_%s%s",
		prefix,
		time.Now().Format("20060102_150405"),
		uuid.NewString()[:8],
		ext,
	)
}
