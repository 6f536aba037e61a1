package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ValidatePathSecurity rejects empty paths and paths containing ".."
// sequences, before or after cleaning. It does not touch the filesystem.
//
// Usage example:
//
//	if err := fileops.ValidatePathSecurity(manifest.Files.Component); err != nil {
//	    return fmt.Errorf("component file: %w", err)
//	}
func ValidatePathSecurity(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path cannot be empty")
	}

	if strings.Contains(path, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	cleanPath := filepath.Clean(path)
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	return nil
}

// ValidateFileInDirectory validates that filePath is a regular file inside
// baseDir. When filePath is a symlink, its resolved target must also be
// inside baseDir.
//
// Usage example:
//
//	err := fileops.ValidateFileInDirectory("/catalog/button/types.ts", "/catalog/button")
//	if err != nil {
//	    return fmt.Errorf("file validation failed: %w", err)
//	}
func ValidateFileInDirectory(filePath, baseDir string) error {
	absFilePath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("cannot resolve file path: %w", err)
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return fmt.Errorf("cannot resolve base directory: %w", err)
	}

	if !isWithin(absBaseDir, absFilePath) {
		return fmt.Errorf("file is not within base directory")
	}

	linkInfo, err := os.Lstat(absFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s: %w", filepath.Base(filePath), os.ErrNotExist)
		}
		return fmt.Errorf("cannot access file: %w", err)
	}

	if linkInfo.Mode()&os.ModeSymlink != 0 {
		if err := ValidateSymlinkSecurity(absFilePath, []string{absBaseDir}); err != nil {
			return fmt.Errorf("symlink resolves outside base directory: %w", err)
		}
	}

	info, err := os.Stat(absFilePath)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file")
	}

	return nil
}

// ValidateFileSizeLimit checks that filePath is a file no larger than maxSize bytes.
func ValidateFileSizeLimit(filePath string, maxSize int64) error {
	if maxSize <= 0 {
		return fmt.Errorf("invalid size limit: %d", maxSize)
	}

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s: %w", filepath.Base(filePath), os.ErrNotExist)
		}
		return fmt.Errorf("cannot access file: %w", err)
	}

	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	if fileInfo.Size() > maxSize {
		return fmt.Errorf("file size %d bytes exceeds limit %d bytes", fileInfo.Size(), maxSize)
	}

	return nil
}

// ExpandPath expands a leading "~/" to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// EnsureDirectoryExists creates path and any parents with 0755 permissions.
func EnsureDirectoryExists(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// ValidateStoragePath validates a directory the application will write to.
// The path must be absolute (or start with "~/"), free of traversal
// sequences, outside reserved system directories, and its parent must exist.
//
// Usage example:
//
//	if err := fileops.ValidateStoragePath("~/.local/share/compcat/catalog"); err != nil {
//	    return fmt.Errorf("invalid clone path: %w", err)
//	}
func ValidateStoragePath(path string) error {
	trimmedPath := strings.TrimSpace(path)
	if trimmedPath == "" {
		return fmt.Errorf("storage directory cannot be empty")
	}

	if err := ValidatePathSecurity(trimmedPath); err != nil {
		return err
	}

	expandedPath := ExpandPath(trimmedPath)
	if !filepath.IsAbs(expandedPath) {
		return fmt.Errorf("path must be absolute or relative to home directory (~)")
	}

	if IsReservedDirectory(expandedPath) {
		return fmt.Errorf("cannot use system or reserved directories")
	}

	parentDir := filepath.Dir(expandedPath)
	if _, err := os.Stat(parentDir); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("parent directory does not exist: %s", parentDir)
		}
		return fmt.Errorf("cannot access parent directory: %w", err)
	}

	return nil
}

// IsReservedDirectory reports whether path is, or lies below, a system
// directory the application must never write into. Symlinks are resolved
// before comparison; user temp directories are always allowed.
func IsReservedDirectory(path string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return true
	}
	if resolved, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = resolved
	}
	absPath = filepath.Clean(absPath)

	if absPath == "/" || absPath == "\\" || absPath == "C:\\" {
		return true
	}

	if isUserTempDirectory(absPath) {
		return false
	}

	pathLower := strings.ToLower(absPath)
	for _, reserved := range getReservedDirectories() {
		for _, candidate := range []string{reserved, canonicalPath(reserved)} {
			candidate = strings.ToLower(filepath.Clean(candidate))
			if pathLower == candidate || strings.HasPrefix(pathLower, candidate+string(os.PathSeparator)) {
				return true
			}
		}
	}

	return false
}

// getReservedDirectories returns platform-specific reserved directories.
func getReservedDirectories() []string {
	var reservedDirs []string

	switch runtime.GOOS {
	case "windows":
		reservedDirs = []string{
			"C:\\Windows",
			"C:\\Program Files",
			"C:\\Program Files (x86)",
			"C:\\ProgramData\\Microsoft",
		}
	case "darwin":
		reservedDirs = []string{
			"/System",
			"/usr/bin",
			"/usr/sbin",
			"/bin",
			"/sbin",
			"/etc",
			"/var/log",
			"/var/db",
			"/Library/System",
			"/private/etc",
		}
	default:
		reservedDirs = []string{
			"/bin",
			"/sbin",
			"/usr/bin",
			"/usr/sbin",
			"/etc",
			"/boot",
			"/dev",
			"/proc",
			"/sys",
			"/var/log",
			"/var/lib",
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		reservedDirs = append(reservedDirs,
			filepath.Join(home, ".ssh"),
			filepath.Join(home, ".gnupg"),
		)
	}

	return reservedDirs
}

// isUserTempDirectory detects per-user temp directories.
func isUserTempDirectory(path string) bool {
	if runtime.GOOS == "darwin" && strings.Contains(path, "/var/folders/") {
		return true
	}
	if runtime.GOOS == "linux" && (path == "/tmp" || strings.HasPrefix(path, "/tmp/")) {
		return true
	}
	return isWithin(canonicalPath(os.TempDir()), path)
}
