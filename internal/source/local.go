package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"compcat/internal/logging"
	"compcat/pkg/fileops"
)

// LocalSource is a catalog directory used in place. No network access.
type LocalSource struct {
	// Path is absolute or home-relative (~/...).
	Path string
}

// NewLocalSource creates a LocalSource for path.
func NewLocalSource(path string) LocalSource {
	return LocalSource{Path: path}
}

// Prepare validates the directory and returns its absolute path.
//
// Validation performed:
//   - Non-empty path
//   - Expand "~/" to the user's home directory
//   - fileops.ValidateStoragePath (traversal, reserved directories, parent exists)
//   - Directory must exist and be a directory
//
// The directory is never created.
func (ls LocalSource) Prepare(ctx context.Context, logger *logging.AppLogger) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if logger != nil {
		logger.Debug("Preparing local catalog source", "path", ls.Path)
	}

	trimmed := strings.TrimSpace(ls.Path)
	if trimmed == "" {
		return "", fmt.Errorf("local source path cannot be empty")
	}

	clean := filepath.Clean(fileops.ExpandPath(trimmed))
	if !filepath.IsAbs(clean) {
		abs, err := filepath.Abs(clean)
		if err != nil {
			return "", fmt.Errorf("cannot resolve absolute path: %w", err)
		}
		clean = abs
	}

	if err := fileops.ValidateStoragePath(clean); err != nil {
		return "", fmt.Errorf("invalid local source path: %w", err)
	}

	info, err := os.Stat(clean)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("local source directory does not exist: %s: %w", clean, os.ErrNotExist)
		}
		return "", fmt.Errorf("cannot access local source directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("local source path is not a directory: %s", clean)
	}

	if logger != nil {
		logger.Debug("Local catalog source validated", "resolved_path", clean)
	}
	return clean, nil
}

// String returns a representation for logging.
func (ls LocalSource) String() string {
	return fmt.Sprintf("LocalSource{Path: %s}", ls.Path)
}
