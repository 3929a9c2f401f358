package watchlist

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "prneko", "watchlist.json"))
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s := newTestStore(t)
	urls, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(urls) != 0 {
		t.Fatalf("urls = %v, want empty", urls)
	}
}

func TestAddRemoveRoundTrip(t *testing.T) {
	s := newTestStore(t)
	url := "https://github.com/acme/backend/pull/123"

	changed, err := Add(s, url)
	if err != nil || !changed {
		t.Fatalf("Add = %v, %v", changed, err)
	}

	// Set semantics: adding the same URL again is a no-op.
	changed, err = Add(s, " "+url+" ")
	if err != nil {
		t.Fatalf("Add duplicate: %v", err)
	}
	if changed {
		t.Fatal("duplicate add reported change")
	}

	urls, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(urls, []string{url}) {
		t.Fatalf("urls = %v, want [%s]", urls, url)
	}

	changed, err = Remove(s, url)
	if err != nil || !changed {
		t.Fatalf("Remove = %v, %v", changed, err)
	}
	urls, err = s.Load()
	if err != nil {
		t.Fatalf("Load after remove: %v", err)
	}
	if len(urls) != 0 {
		t.Fatalf("urls = %v, want empty", urls)
	}

	changed, err = Remove(s, url)
	if err != nil {
		t.Fatalf("Remove absent: %v", err)
	}
	if changed {
		t.Fatal("removing absent URL reported change")
	}
}

func TestAddPreservesOrder(t *testing.T) {
	s := newTestStore(t)
	want := []string{
		"https://github.com/acme/backend/pull/1",
		"https://github.com/acme/frontend/pull/2",
		"https://github.com/acme/infra/pull/3",
	}
	for _, u := range want {
		if _, err := Add(s, u); err != nil {
			t.Fatalf("Add %s: %v", u, err)
		}
	}
	urls, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(urls, want) {
		t.Fatalf("urls = %v, want %v", urls, want)
	}
}

func TestLoadRejectsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "watchlist.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewFileStore(path).Load(); err == nil {
		t.Fatal("expected error for corrupt file")
	}
}
