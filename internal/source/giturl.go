package source

import (
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	sshURLPattern     = regexp.MustCompile(`^git@([^:]+):([^/]+)/(.+?)(?:\.git)?$`)
	sshComparePattern = regexp.MustCompile(`^git@([^:]+):(.+)$`)
)

// GitURLInfo contains the parsed components of a hosted repository URL.
type GitURLInfo struct {
	Host  string // Host (e.g., "github.com")
	Owner string // Repository owner/organization
	Repo  string // Repository name (without .git suffix)
}

// ParseGitURL parses an SSH (git@host:owner/repo.git) or HTTPS
// (https://host/owner/repo.git) URL.
//
//	info, err := source.ParseGitURL("https://github.com/acme/components.git")
//	// info.Host = "github.com", info.Owner = "acme", info.Repo = "components"
func ParseGitURL(gitURL string) (GitURLInfo, error) {
	gitURL = strings.TrimSpace(gitURL)

	if matches := sshURLPattern.FindStringSubmatch(gitURL); matches != nil {
		return GitURLInfo{
			Host:  matches[1],
			Owner: matches[2],
			Repo:  matches[3],
		}, nil
	}

	parsedURL, err := url.Parse(gitURL)
	if err != nil {
		return GitURLInfo{}, fmt.Errorf("invalid URL format: %w", err)
	}

	if parsedURL.Host == "" {
		return GitURLInfo{}, fmt.Errorf("URL missing host component")
	}

	pathParts := strings.Split(strings.Trim(parsedURL.Path, "/"), "/")
	if len(pathParts) < 2 {
		return GitURLInfo{}, fmt.Errorf("URL path should contain owner/repo: %s", parsedURL.Path)
	}

	owner := pathParts[0]
	repo := strings.TrimSuffix(pathParts[1], ".git")
	if owner == "" || repo == "" {
		return GitURLInfo{}, fmt.Errorf("could not extract owner/repo from URL path: %s", parsedURL.Path)
	}

	return GitURLInfo{
		Host:  parsedURL.Host,
		Owner: owner,
		Repo:  repo,
	}, nil
}

// isLocalRemote reports whether gitURL names a repository on this machine.
func isLocalRemote(gitURL string) bool {
	gitURL = strings.TrimSpace(gitURL)
	if strings.HasPrefix(gitURL, "file://") {
		return true
	}
	return filepath.IsAbs(gitURL) || strings.HasPrefix(gitURL, "~/")
}

// normalizeGitURL reduces SSH and HTTP(S) forms of the same repository to
// one comparable string: git@github.com:owner/repo -> github.com/owner/repo.
func normalizeGitURL(gitURL string) string {
	gitURL = strings.TrimSpace(gitURL)
	gitURL = strings.TrimSuffix(gitURL, ".git")

	if matches := sshComparePattern.FindStringSubmatch(gitURL); matches != nil {
		return matches[1] + "/" + matches[2]
	}

	for _, scheme := range []string{"https://", "http://"} {
		if after, found := strings.CutPrefix(gitURL, scheme); found {
			return after
		}
	}

	return gitURL
}
