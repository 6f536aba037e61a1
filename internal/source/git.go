package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"compcat/internal/logging"
	"compcat/pkg/fileops"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/transport/http"
)

// DirectoryStatus is the state of a clone directory before Prepare touches it.
type DirectoryStatus int

const (
	// DirectoryStatusEmpty: missing or empty, safe to clone
	DirectoryStatusEmpty DirectoryStatus = iota
	// DirectoryStatusSameRepo: already a clone of the remote, safe to fetch
	DirectoryStatusSameRepo
	// DirectoryStatusDifferentRepo: a clone of some other remote
	DirectoryStatusDifferentRepo
	// DirectoryStatusConflict: holds non-git content
	DirectoryStatusConflict
	// DirectoryStatusError: could not be inspected
	DirectoryStatusError
)

func (ds DirectoryStatus) String() string {
	switch ds {
	case DirectoryStatusEmpty:
		return "empty or doesn't exist"
	case DirectoryStatusSameRepo:
		return "same git repository"
	case DirectoryStatusDifferentRepo:
		return "different git repository"
	case DirectoryStatusConflict:
		return "contains non-git content"
	case DirectoryStatusError:
		return "validation error"
	default:
		return "unknown status"
	}
}

// GitSource is a catalog kept in a git repository and cached in a local clone.
type GitSource struct {
	RemoteURL string  // HTTPS, SSH (rewritten to HTTPS), or a local path
	Branch    *string // nil follows the remote's HEAD
	Path      string  // local clone directory
	Subdir    string  // catalog root inside the repository, optional

	// Credentials defaults to NewCredentialManager().
	Credentials *CredentialManager
}

// NewGitSource creates a GitSource. Validation is deferred to Prepare.
func NewGitSource(remoteURL string, branch *string, localPath string) GitSource {
	return GitSource{
		RemoteURL: remoteURL,
		Branch:    branch,
		Path:      localPath,
	}
}

// Prepare clones the remote on first use, or fetches and fast-forwards an
// existing clone, and returns the absolute catalog root.
//
// A clone with uncommitted changes is used as it is. A clone directory that
// holds other content is never overwritten; Prepare returns an error asking
// the operator to move it.
func (gs GitSource) Prepare(ctx context.Context, logger *logging.AppLogger) (string, error) {
	if logger != nil {
		logger.Info("Preparing git catalog source",
			"remoteURL", gs.RemoteURL,
			"branch", gs.Branch,
			"localPath", gs.Path)
	}

	if err := gs.validateInputs(); err != nil {
		return "", err
	}

	remoteURL, err := gs.normalizeRemoteURL()
	if err != nil {
		return "", fmt.Errorf("invalid remote URL: %w", err)
	}

	cleanPath, err := gs.validateLocalPath()
	if err != nil {
		return "", err
	}

	dirStatus, err := gs.validateCloneDirectory(cleanPath, remoteURL)
	if dirStatus == DirectoryStatusConflict || dirStatus == DirectoryStatusDifferentRepo {
		return "", fmt.Errorf("directory conflict at %s (%s): please remove or relocate the existing directory", cleanPath, dirStatus)
	}
	if err != nil {
		return "", err
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch dirStatus {
	case DirectoryStatusEmpty:
		err = gs.performCloneWithAuth(cleanPath, remoteURL, logger)
	case DirectoryStatusSameRepo:
		err = gs.performFetchWithAuth(cleanPath, remoteURL, logger)
	default:
		err = fmt.Errorf("unexpected directory status: %s", dirStatus)
	}
	if err != nil {
		return "", err
	}

	root, err := gs.catalogRoot(cleanPath)
	if err != nil {
		return "", err
	}

	if logger != nil {
		logger.Info("Git catalog source prepared", "localPath", root)
	}
	return root, nil
}

func (gs GitSource) validateInputs() error {
	if strings.TrimSpace(gs.RemoteURL) == "" {
		return fmt.Errorf("remote URL cannot be empty")
	}
	if strings.TrimSpace(gs.Path) == "" {
		return fmt.Errorf("local path cannot be empty")
	}
	if sub := strings.TrimSpace(gs.Subdir); sub != "" {
		if err := fileops.ValidatePathSecurity(sub); err != nil {
			return fmt.Errorf("invalid subdir: %w", err)
		}
		if filepath.IsAbs(sub) {
			return fmt.Errorf("invalid subdir: must be relative to the repository root")
		}
	}
	return nil
}

// normalizeRemoteURL rewrites hosted URLs to https://host/owner/repo.git.
// Local paths and file:// URLs are kept.
func (gs GitSource) normalizeRemoteURL() (string, error) {
	raw := strings.TrimSpace(gs.RemoteURL)
	if isLocalRemote(raw) {
		if strings.HasPrefix(raw, "file://") {
			return raw, nil
		}
		return filepath.Clean(fileops.ExpandPath(raw)), nil
	}

	info, err := ParseGitURL(raw)
	if err != nil {
		return "", fmt.Errorf("invalid Git URL format: %w", err)
	}
	return fmt.Sprintf("https://%s/%s/%s.git", info.Host, info.Owner, info.Repo), nil
}

func (gs GitSource) validateLocalPath() (string, error) {
	raw := strings.TrimSpace(gs.Path)
	if err := fileops.ValidatePathSecurity(raw); err != nil {
		return "", fmt.Errorf("invalid local path: %w", err)
	}
	clean := filepath.Clean(fileops.ExpandPath(raw))

	abs, err := filepath.Abs(clean)
	if err != nil {
		return "", fmt.Errorf("cannot resolve absolute path: %w", err)
	}

	if fileops.IsReservedDirectory(abs) {
		return "", fmt.Errorf("invalid local path: cannot use system or reserved directories")
	}
	return abs, nil
}

// catalogRoot applies Subdir to the clone path.
func (gs GitSource) catalogRoot(clonePath string) (string, error) {
	sub := strings.TrimSpace(gs.Subdir)
	if sub == "" {
		return clonePath, nil
	}

	root := filepath.Join(clonePath, filepath.FromSlash(sub))
	info, err := os.Stat(root)
	if err != nil {
		return "", fmt.Errorf("catalog subdirectory %q not found in repository: %w", sub, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("catalog subdirectory %q is not a directory", sub)
	}
	return root, nil
}

func (gs GitSource) credentials() *CredentialManager {
	if gs.Credentials != nil {
		return gs.Credentials
	}
	return NewCredentialManager()
}

// getAuthentication returns token auth, or nil when no token is stored.
func (gs GitSource) getAuthentication(logger *logging.AppLogger) (*http.BasicAuth, error) {
	credMgr := gs.credentials()
	if !credMgr.HasToken() {
		return nil, nil
	}

	token, err := credMgr.GetToken()
	if err != nil {
		return nil, err
	}

	if logger != nil {
		logger.Debug("Using stored git token for authentication")
	}

	// Token auth for GitHub uses "token" as the username.
	return &http.BasicAuth{
		Username: "token",
		Password: token,
	}, nil
}

// performCloneWithAuth clones anonymously first and retries with the stored
// token only when the remote asks for authentication.
func (gs GitSource) performCloneWithAuth(localPath, remoteURL string, logger *logging.AppLogger) error {
	err := gs.performClone(localPath, remoteURL, nil, logger)
	if err == nil || !isAuthenticationError(err) || isLocalRemote(remoteURL) {
		return err
	}

	if logger != nil {
		logger.Debug("Anonymous clone failed, trying with authentication")
	}

	auth, authErr := gs.getAuthentication(logger)
	if authErr != nil {
		return fmt.Errorf("git authentication failed: %w", authErr)
	}
	if auth == nil {
		return fmt.Errorf("git authentication required - store a token with 'compcat auth set-token'")
	}

	// A failed clone can leave a partial directory behind.
	if err := os.RemoveAll(localPath); err != nil {
		return fmt.Errorf("failed to clean up partial clone: %w", err)
	}
	return gs.performClone(localPath, remoteURL, auth, logger)
}

func (gs GitSource) performClone(localPath, remoteURL string, auth *http.BasicAuth, logger *logging.AppLogger) error {
	if logger != nil {
		logger.Info("Cloning catalog repository", "remoteURL", remoteURL, "localPath", localPath)
	}

	if err := fileops.EnsureDirectoryExists(filepath.Dir(localPath)); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	cloneOpts := &git.CloneOptions{URL: remoteURL}
	if auth != nil {
		cloneOpts.Auth = auth
	}
	if gs.Branch != nil && *gs.Branch != "" {
		cloneOpts.ReferenceName = plumbing.NewBranchReferenceName(*gs.Branch)
		cloneOpts.SingleBranch = true
	}

	if _, err := git.PlainClone(localPath, cloneOpts); err != nil {
		return gs.translateCloneError(err)
	}

	if logger != nil {
		logger.Info("Catalog repository cloned", "localPath", localPath)
	}
	return nil
}

func (gs GitSource) performFetchWithAuth(localPath, remoteURL string, logger *logging.AppLogger) error {
	err := gs.performFetch(localPath, nil, logger)
	if err == nil || !isAuthenticationError(err) || isLocalRemote(remoteURL) {
		return err
	}

	if logger != nil {
		logger.Debug("Anonymous fetch failed, trying with authentication")
	}

	auth, authErr := gs.getAuthentication(logger)
	if authErr != nil {
		return fmt.Errorf("git authentication failed: %w", authErr)
	}
	if auth == nil {
		return fmt.Errorf("git authentication required - store a token with 'compcat auth set-token'")
	}
	return gs.performFetch(localPath, auth, logger)
}

// performFetch fetches origin and hard-resets the checked out branch to
// its remote counterpart. A dirty working tree is left untouched.
func (gs GitSource) performFetch(localPath string, auth *http.BasicAuth, logger *logging.AppLogger) error {
	if logger != nil {
		logger.Info("Fetching catalog updates", "localPath", localPath)
	}

	repo, err := git.PlainOpen(localPath)
	if err != nil {
		return fmt.Errorf("failed to open existing repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get working tree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return fmt.Errorf("failed to get working tree status: %w", err)
	}
	if !status.IsClean() {
		if logger != nil {
			logger.Warn("Catalog clone has uncommitted changes, skipping sync", "path", localPath)
		}
		return nil
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		return fmt.Errorf("failed to get origin remote: %w", err)
	}

	fetchOpts := &git.FetchOptions{Force: true}
	if auth != nil {
		fetchOpts.Auth = auth
	}
	err = remote.Fetch(fetchOpts)
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return gs.translateFetchError(err)
	}
	if logger != nil {
		if err != nil {
			logger.Debug("Catalog repository already up to date")
		} else {
			logger.Info("Catalog repository fetched")
		}
	}

	// Checkout and reset failures leave the previous revision in place.
	branch := ""
	if gs.Branch != nil {
		branch = *gs.Branch
	}
	if branch != "" {
		if err := gs.checkoutBranch(repo, worktree, branch, logger); err != nil {
			if logger != nil {
				logger.Warn("Failed to checkout configured branch", "branch", branch, "error", err)
			}
			return nil
		}
	}
	if err := resetToRemote(repo, worktree, logger); err != nil && logger != nil {
		logger.Warn("Failed to update working tree, using cached revision", "error", err)
	}
	return nil
}

// resetToRemote moves the current branch to origin/<branch>.
func resetToRemote(repo *git.Repository, worktree *git.Worktree, logger *logging.AppLogger) error {
	head, err := repo.Head()
	if err != nil {
		return fmt.Errorf("failed to get current branch: %w", err)
	}
	if !head.Name().IsBranch() {
		return fmt.Errorf("HEAD is detached")
	}

	remoteRef, err := repo.Reference(plumbing.NewRemoteReferenceName("origin", head.Name().Short()), true)
	if err != nil {
		return fmt.Errorf("no remote branch for %s: %w", head.Name().Short(), err)
	}
	if remoteRef.Hash() == head.Hash() {
		return nil
	}

	if err := worktree.Reset(&git.ResetOptions{Commit: remoteRef.Hash(), Mode: git.HardReset}); err != nil {
		return fmt.Errorf("failed to reset to %s: %w", remoteRef.Name().Short(), err)
	}
	if logger != nil {
		logger.Info("Catalog updated", "branch", head.Name().Short(), "commit", remoteRef.Hash().String())
	}
	return nil
}

func (gs GitSource) translateCloneError(err error) error {
	errStr := strings.ToLower(err.Error())

	if containsAuthErrorPatterns(errStr) {
		if strings.Contains(errStr, "403") || strings.Contains(errStr, "forbidden") {
			return fmt.Errorf("git token lacks required permissions - ensure it can read %s: %w", gs.RemoteURL, err)
		}
		return fmt.Errorf("git authentication failed - update your token with 'compcat auth set-token': %w", err)
	}

	if strings.Contains(errStr, "404") || strings.Contains(errStr, "not found") {
		return fmt.Errorf("repository not found - check the URL or ensure you have access: %s: %w", gs.RemoteURL, err)
	}

	if strings.Contains(errStr, "network") || strings.Contains(errStr, "connection") || strings.Contains(errStr, "timeout") {
		return fmt.Errorf("network error during clone - check your connection and try again: %w", err)
	}

	return fmt.Errorf("failed to clone repository: %w", err)
}

func (gs GitSource) translateFetchError(err error) error {
	errStr := strings.ToLower(err.Error())

	if containsAuthErrorPatterns(errStr) {
		return fmt.Errorf("git token has expired or is invalid - update it with 'compcat auth set-token': %w", err)
	}

	if strings.Contains(errStr, "network") || strings.Contains(errStr, "connection") || strings.Contains(errStr, "timeout") {
		return fmt.Errorf("network error during fetch: %w", err)
	}

	return fmt.Errorf("failed to fetch repository updates: %w", err)
}

func isAuthenticationError(err error) bool {
	if err == nil {
		return false
	}
	return containsAuthErrorPatterns(strings.ToLower(err.Error()))
}

func containsAuthErrorPatterns(errStr string) bool {
	for _, pattern := range []string{"authentication required", "authorization failed", "401", "unauthorized", "403", "forbidden"} {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}

// validateCloneDirectory decides whether clonePath can hold a clone of
// expectedRemoteURL:
//   - missing or empty: clone
//   - clone of the same remote (SSH and HTTPS forms match): fetch
//   - clone of another remote, or non-git content: conflict
func (gs GitSource) validateCloneDirectory(clonePath, expectedRemoteURL string) (DirectoryStatus, error) {
	info, err := os.Stat(clonePath)
	if os.IsNotExist(err) {
		return DirectoryStatusEmpty, nil
	}
	if err != nil {
		return DirectoryStatusError, fmt.Errorf("cannot access directory %s: %w", clonePath, err)
	}
	if !info.IsDir() {
		return DirectoryStatusError, fmt.Errorf("path exists but is not a directory: %s", clonePath)
	}

	isEmpty, err := fileops.IsDirEmpty(clonePath)
	if err != nil {
		return DirectoryStatusError, fmt.Errorf("cannot check if directory is empty: %w", err)
	}
	if isEmpty {
		return DirectoryStatusEmpty, nil
	}

	currentRemote, err := getGitRemoteURL(clonePath)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return DirectoryStatusConflict, fmt.Errorf("directory contains non-git content: %s", clonePath)
		}
		return DirectoryStatusError, fmt.Errorf("cannot get current git remote URL: %w", err)
	}

	if normalizeGitURL(currentRemote) == normalizeGitURL(expectedRemoteURL) {
		return DirectoryStatusSameRepo, nil
	}

	return DirectoryStatusDifferentRepo, fmt.Errorf("directory contains different git repository (current: %s, expected: %s)", currentRemote, expectedRemoteURL)
}

// getGitRemoteURL returns the first URL of the origin remote. A path that
// is not a repository yields an error wrapping git.ErrRepositoryNotExists.
func getGitRemoteURL(repoPath string) (string, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", fmt.Errorf("directory is not a git repository: %s: %w", repoPath, err)
		}
		return "", fmt.Errorf("cannot open git repository: %w", err)
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		return "", fmt.Errorf("cannot get origin remote: %w", err)
	}

	config := remote.Config()
	if config == nil || len(config.URLs) == 0 {
		return "", fmt.Errorf("no URLs configured for origin remote")
	}
	return config.URLs[0], nil
}

// checkoutBranch switches the worktree to branchName, creating the local
// branch from origin/<branchName> when needed.
func (gs GitSource) checkoutBranch(repo *git.Repository, worktree *git.Worktree, branchName string, logger *logging.AppLogger) error {
	head, err := repo.Head()
	if err != nil && !errors.Is(err, plumbing.ErrReferenceNotFound) {
		return fmt.Errorf("failed to get current branch: %w", err)
	}
	if head != nil && head.Name().Short() == branchName {
		return nil
	}

	if logger != nil {
		logger.Debug("Checking out branch", "branch", branchName)
	}

	localBranchRef := plumbing.NewBranchReferenceName(branchName)
	remoteBranchRef := plumbing.NewRemoteReferenceName("origin", branchName)

	remoteRef, err := repo.Reference(remoteBranchRef, true)
	if err != nil {
		return fmt.Errorf("branch '%s' does not exist on remote 'origin'", branchName)
	}

	_, err = repo.Reference(localBranchRef, true)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		newRef := plumbing.NewHashReference(localBranchRef, remoteRef.Hash())
		if err := repo.Storer.SetReference(newRef); err != nil {
			return fmt.Errorf("failed to create local branch: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to get local branch reference: %w", err)
	}

	if err := worktree.Checkout(&git.CheckoutOptions{Branch: localBranchRef}); err != nil {
		return fmt.Errorf("failed to checkout branch: %w", err)
	}

	if logger != nil {
		logger.Info("Checked out branch", "branch", branchName)
	}
	return nil
}
