package source

import (
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// DefaultStorageDir returns the directory that holds cloned catalogs:
//   - Linux: ~/.local/share/compcat
//   - macOS: ~/Library/Application Support/compcat
//   - Windows: %LOCALAPPDATA%\compcat
//
// It only returns the path; the directory is created on first clone.
func DefaultStorageDir() string {
	return filepath.Join(xdg.DataHome, "compcat")
}

// DefaultClonePath returns where a remote is cloned when no clone path is
// configured: <DefaultStorageDir>/<repo>. A URL that cannot be parsed falls
// back to its last path element.
func DefaultClonePath(remoteURL string) string {
	name := ""
	if info, err := ParseGitURL(remoteURL); err == nil {
		name = info.Repo
	} else {
		trimmed := strings.TrimRight(strings.TrimSpace(remoteURL), "/\\")
		name = strings.TrimSuffix(filepath.Base(filepath.FromSlash(trimmed)), ".git")
	}
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "catalog"
	}
	return filepath.Join(DefaultStorageDir(), name)
}
