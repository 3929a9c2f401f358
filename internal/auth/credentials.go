// Package auth implements the GitHub OAuth device flow and local credential
// storage.
package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Credentials is the token+username pair the core consumes as an opaque
// credential handle.
type Credentials struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// CredentialStore persists credentials as a 0600 JSON file.
type CredentialStore struct {
	path string
}

// NewCredentialStore creates a store at path.
func NewCredentialStore(path string) *CredentialStore {
	return &CredentialStore{path: path}
}

// Load returns the stored credentials; ok is false when none are stored.
func (s *CredentialStore) Load() (Credentials, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Credentials{}, false, nil
		}
		return Credentials{}, false, fmt.Errorf("read credentials: %w", err)
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, false, fmt.Errorf("parse credentials: %w", err)
	}
	if creds.Token == "" || creds.Username == "" {
		return Credentials{}, false, nil
	}
	return creds, true, nil
}

// Save writes credentials, creating the parent directory if needed.
func (s *CredentialStore) Save(creds Credentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace credentials: %w", err)
	}
	return nil
}

// Clear deletes the stored credentials. Missing file is not an error.
func (s *CredentialStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}
