package fileops

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ListOptions configures ListDir.
type ListOptions struct {
	// DirsOnly keeps only directories (including symlinks to directories).
	DirsOnly bool

	// FilesOnly keeps only regular files (including symlinks to files).
	FilesOnly bool

	// IncludeHidden keeps entries whose name starts with '.'.
	IncludeHidden bool

	// Extensions, when non-empty, keeps only files with one of these
	// extensions (compared case-insensitively, with the leading dot).
	Extensions []string
}

// Entry is one listed directory entry.
type Entry struct {
	// Name is the base name.
	Name string

	// Path is the absolute path.
	Path string

	IsDir bool
	Size  int64
}

// ListDir returns the entries of dir (non-recursive) sorted by name.
//
// Symlinked entries are followed only when they resolve inside dir; links
// escaping it are skipped together with broken links and entries that
// cannot be stat'ed. A missing dir returns an error wrapping os.ErrNotExist.
func ListDir(dir string, opts *ListOptions) ([]Entry, error) {
	if opts == nil {
		opts = &ListOptions{}
	}

	absDir, err := filepath.Abs(ExpandPath(dir))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve directory: %w", err)
	}

	info, err := os.Stat(absDir)
	if err != nil {
		return nil, fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", absDir)
	}

	dirEntries, err := os.ReadDir(absDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", absDir, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		name := de.Name()
		if !opts.IncludeHidden && strings.HasPrefix(name, ".") {
			continue
		}

		fullPath := filepath.Join(absDir, name)
		if de.Type()&os.ModeSymlink != 0 {
			if err := ValidateSymlinkSecurity(fullPath, []string{absDir}); err != nil {
				continue
			}
		}

		fi, err := os.Stat(fullPath)
		if err != nil {
			continue
		}

		isDir := fi.IsDir()
		if opts.DirsOnly && !isDir {
			continue
		}
		if opts.FilesOnly && (isDir || !fi.Mode().IsRegular()) {
			continue
		}
		if !isDir && !hasExtension(name, opts.Extensions) {
			continue
		}

		entries = append(entries, Entry{
			Name:  name,
			Path:  fullPath,
			IsDir: isDir,
			Size:  fi.Size(),
		})
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Name, b.Name)
	})
	return entries, nil
}

func hasExtension(name string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range extensions {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}

// ReadFile reads filePath after checking that it stays inside baseDir and
// is no larger than maxSize bytes. A missing file returns an error wrapping
// os.ErrNotExist.
func ReadFile(filePath, baseDir string, maxSize int64) ([]byte, error) {
	rel, err := filepath.Rel(baseDir, filePath)
	if err != nil {
		return nil, fmt.Errorf("cannot determine relative path: %w", err)
	}
	if err := ValidatePathSecurity(rel); err != nil {
		return nil, fmt.Errorf("%s: %w", rel, err)
	}
	if err := ValidateFileInDirectory(filePath, baseDir); err != nil {
		return nil, err
	}
	if err := ValidateFileSizeLimit(filePath, maxSize); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(filePath), err)
	}
	return data, nil
}

// IsDirEmpty reports whether dir has no entries at all, hidden ones included.
func IsDirEmpty(dir string) (bool, error) {
	f, err := os.Open(dir)
	if err != nil {
		return false, err
	}
	defer f.Close()

	names, err := f.Readdirnames(1)
	if len(names) > 0 {
		return false, nil
	}
	if err != nil && err != io.EOF {
		return false, err
	}
	return true, nil
}
