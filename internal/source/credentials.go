package source

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// Service name for the OS credential store
	credentialService = "compcat"
	// Key for the git access token
	gitTokenKey = "git_token"
)

// ErrNoToken is returned by GetToken when nothing is stored.
var ErrNoToken = errors.New("no git token found - run 'compcat auth set-token'")

// CredentialManager keeps the access token used for private git catalogs in
// the OS credential store (Keychain, Secret Service, Credential Manager).
type CredentialManager struct {
	service string
}

// NewCredentialManager creates a credential manager for the compcat service.
func NewCredentialManager() *CredentialManager {
	return &CredentialManager{service: credentialService}
}

// StoreToken validates and stores token, replacing any previous one.
func (cm *CredentialManager) StoreToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}

	if err := validateTokenFormat(token); err != nil {
		return fmt.Errorf("invalid token format: %w", err)
	}

	if err := keyring.Set(cm.service, gitTokenKey, token); err != nil {
		return fmt.Errorf("failed to store token in credential store: %w", err)
	}
	return nil
}

// GetToken returns the stored token or an error wrapping ErrNoToken.
func (cm *CredentialManager) GetToken() (string, error) {
	token, err := keyring.Get(cm.service, gitTokenKey)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("failed to retrieve token from credential store: %w", err)
	}

	if strings.TrimSpace(token) == "" {
		return "", fmt.Errorf("stored token is empty: %w", ErrNoToken)
	}
	return token, nil
}

// DeleteToken removes the stored token. Deleting a missing token is not an error.
func (cm *CredentialManager) DeleteToken() error {
	err := keyring.Delete(cm.service, gitTokenKey)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete token from credential store: %w", err)
	}
	return nil
}

// HasToken reports whether a token is stored without returning it.
func (cm *CredentialManager) HasToken() bool {
	_, err := keyring.Get(cm.service, gitTokenKey)
	return err == nil
}

// validateTokenFormat checks the token against the known GitHub token shapes:
//   - Classic PATs: ghp_*
//   - Fine-grained PATs: github_pat_*
//   - OAuth tokens: gho_*
//   - User-to-server tokens: ghu_*
//   - Server-to-server tokens: ghs_*
func validateTokenFormat(token string) error {
	if len(token) < 20 {
		return fmt.Errorf("token too short (minimum 20 characters)")
	}

	validPrefixes := []string{"ghp_", "github_pat_", "gho_", "ghu_", "ghs_"}
	for _, prefix := range validPrefixes {
		if strings.HasPrefix(token, prefix) {
			return nil
		}
	}

	return fmt.Errorf("token does not match expected GitHub token format (should start with ghp_ or github_pat_)")
}
