// Package watchlist persists the user-curated list of PR URLs that populate
// the pending-reviews queue across restarts.
package watchlist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Storage is the durable store for watchlist URLs.
type Storage interface {
	Load() ([]string, error)
	Save(urls []string) error
}

// FileStore keeps the watchlist as a JSON array in a single file, written
// atomically via tmp+rename.
type FileStore struct {
	path string
}

// NewFileStore creates a store at path. Parent directories are created on
// first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns the persisted URLs. A missing file is an empty list.
func (s *FileStore) Load() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read watchlist: %w", err)
	}
	var urls []string
	if err := json.Unmarshal(data, &urls); err != nil {
		return nil, fmt.Errorf("parse watchlist: %w", err)
	}
	return urls, nil
}

// Save writes the full URL list.
func (s *FileStore) Save(urls []string) error {
	data, err := json.MarshalIndent(urls, "", "  ")
	if err != nil {
		return fmt.Errorf("encode watchlist: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create watchlist dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write watchlist: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace watchlist: %w", err)
	}
	return nil
}

// Add appends url to storage unless already present. Keys are exact URL
// strings after whitespace trim, order is preserved. Returns whether the
// list changed.
func Add(s Storage, url string) (bool, error) {
	url = strings.TrimSpace(url)
	urls, err := s.Load()
	if err != nil {
		return false, err
	}
	for _, existing := range urls {
		if existing == url {
			return false, nil
		}
	}
	if err := s.Save(append(urls, url)); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes url from storage if present. Returns whether the list
// changed.
func Remove(s Storage, url string) (bool, error) {
	url = strings.TrimSpace(url)
	urls, err := s.Load()
	if err != nil {
		return false, err
	}
	kept := urls[:0]
	for _, existing := range urls {
		if existing != url {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(urls) {
		return false, nil
	}
	if err := s.Save(kept); err != nil {
		return false, err
	}
	return true, nil
}
