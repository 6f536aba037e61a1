package source

import (
	"context"
	"strings"

	"compcat/internal/logging"
)

// Source resolves a catalog root to a local directory.
type Source interface {
	// Prepare makes the catalog available locally and returns its absolute path.
	Prepare(ctx context.Context, logger *logging.AppLogger) (string, error)
}

// GitOptions describes a git-hosted catalog.
type GitOptions struct {
	RemoteURL string `yaml:"remote_url"`
	Branch    string `yaml:"branch,omitempty"`
	// ClonePath defaults to DefaultClonePath(RemoteURL).
	ClonePath string `yaml:"clone_path,omitempty"`
	// Subdir is the catalog root inside the repository.
	Subdir string `yaml:"subdir,omitempty"`
}

// Enabled reports whether a remote is configured.
func (o GitOptions) Enabled() bool {
	return strings.TrimSpace(o.RemoteURL) != ""
}

// New returns a GitSource when a remote is configured and a LocalSource for
// dir otherwise.
func New(dir string, git GitOptions) Source {
	if !git.Enabled() {
		return NewLocalSource(dir)
	}

	clonePath := git.ClonePath
	if strings.TrimSpace(clonePath) == "" {
		clonePath = DefaultClonePath(git.RemoteURL)
	}

	var branch *string
	if b := strings.TrimSpace(git.Branch); b != "" {
		branch = &b
	}

	gs := NewGitSource(git.RemoteURL, branch, clonePath)
	gs.Subdir = git.Subdir
	return gs
}
