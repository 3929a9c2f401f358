package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestCredentialStoreRoundTrip(t *testing.T) {
	store := NewCredentialStore(filepath.Join(t.TempDir(), "prneko", "credentials.json"))

	if _, ok, err := store.Load(); err != nil || ok {
		t.Fatalf("Load empty = ok=%v err=%v, want none", ok, err)
	}

	want := Credentials{Token: "gho_testtoken", Username: "octocat"}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, ok, err := store.Load()
	if err != nil || !ok {
		t.Fatalf("Load = ok=%v err=%v", ok, err)
	}
	if got != want {
		t.Fatalf("Load = %+v, want %+v", got, want)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok, _ := store.Load(); ok {
		t.Fatal("credentials survived Clear")
	}
	// Clearing twice is fine.
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}

func TestCredentialStoreFileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	store := NewCredentialStore(path)
	if err := store.Save(Credentials{Token: "t", Username: "u"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if mode := info.Mode().Perm(); mode != 0o600 {
		t.Fatalf("mode = %o, want 600", mode)
	}
}

func TestWaitForTokenSuccess(t *testing.T) {
	var polls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := polls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		if n < 3 {
			json.NewEncoder(w).Encode(map[string]string{"error": "authorization_pending"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "gho_granted"})
	}))
	defer srv.Close()

	f := NewFlow("client-id", srv.Client())
	f.SetEndpoints(srv.URL, srv.URL, srv.URL)

	// Interval 0 polls immediately.
	code := &DeviceCode{DeviceCode: "dc", UserCode: "ABCD-1234", Interval: 0}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	token, err := f.WaitForToken(ctx, code)
	if err != nil {
		t.Fatalf("WaitForToken: %v", err)
	}
	if token != "gho_granted" {
		t.Fatalf("token = %q", token)
	}
	if polls.Load() != 3 {
		t.Fatalf("polls = %d, want 3", polls.Load())
	}
}

func TestWaitForTokenCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"error": "authorization_pending"})
	}))
	defer srv.Close()

	f := NewFlow("client-id", srv.Client())
	f.SetEndpoints(srv.URL, srv.URL, srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.WaitForToken(ctx, &DeviceCode{DeviceCode: "dc", Interval: 1})
	if err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestWaitForTokenDenied(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"error": "access_denied"})
	}))
	defer srv.Close()

	f := NewFlow("client-id", srv.Client())
	f.SetEndpoints(srv.URL, srv.URL, srv.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := f.WaitForToken(ctx, &DeviceCode{DeviceCode: "dc", Interval: 0}); err == nil {
		t.Fatal("expected error for access_denied")
	}
}

func TestRequestCodeDefaultsInterval(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if r.PostForm.Get("client_id") != "client-id" {
			t.Errorf("client_id = %q", r.PostForm.Get("client_id"))
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"device_code":      "dc",
			"user_code":        "ABCD-1234",
			"verification_uri": "https://github.com/login/device",
			"expires_in":       900,
		})
	}))
	defer srv.Close()

	f := NewFlow("client-id", srv.Client())
	f.SetEndpoints(srv.URL, srv.URL, srv.URL)

	code, err := f.RequestCode(context.Background())
	if err != nil {
		t.Fatalf("RequestCode: %v", err)
	}
	if code.Interval != 5 {
		t.Fatalf("interval = %d, want default 5", code.Interval)
	}
}

func TestFetchUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer gho_tok" {
			t.Errorf("authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"login": "octocat", "id": 1})
	}))
	defer srv.Close()

	f := NewFlow("client-id", srv.Client())
	f.SetEndpoints(srv.URL, srv.URL, srv.URL)

	user, err := f.FetchUser(context.Background(), "gho_tok")
	if err != nil {
		t.Fatalf("FetchUser: %v", err)
	}
	if user.Login != "octocat" {
		t.Fatalf("login = %q", user.Login)
	}
}
