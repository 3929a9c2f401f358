// Package app coordinates fetching, classification, and queue state. It is
// the single logical owner of all queue mutations.
package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/SusanLiu63/PRNeko/internal/auth"
	"github.com/SusanLiu63/PRNeko/internal/classify"
	"github.com/SusanLiu63/PRNeko/internal/github"
	"github.com/SusanLiu63/PRNeko/internal/model"
	"github.com/SusanLiu63/PRNeko/internal/queue"
	"github.com/SusanLiu63/PRNeko/internal/watchlist"
)

// Source is the PR data source collaborator.
type Source interface {
	FetchAuthoredPRs(ctx context.Context, token, username string) ([]github.PullRequest, error)
	FetchPR(ctx context.Context, token, url string) (*github.PullRequest, error)
}

// App owns the queue store and serializes all mutations to it.
type App struct {
	queues    *queue.Store
	source    Source
	watchlist watchlist.Storage
	logger    *log.Logger

	mu         sync.Mutex
	isFetching bool
	lastError  string
	creds      auth.Credentials
	loggedIn   bool
	pollStop   chan struct{}
	pollDone   chan struct{}
}

// New creates an App. A nil logger discards log output.
func New(source Source, storage watchlist.Storage, logger *log.Logger) *App {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &App{
		queues:    queue.NewStore(),
		source:    source,
		watchlist: storage,
		logger:    logger,
	}
}

// Queues exposes the queue store for observers.
func (a *App) Queues() *queue.Store { return a.queues }

// Snapshot returns the current queue contents.
func (a *App) Snapshot() queue.Snapshot { return a.queues.Snapshot() }

// Mood derives the current mascot mood.
func (a *App) Mood() model.Mood { return a.queues.Mood() }

// IsFetching reports whether an authored-PR refresh is in flight.
func (a *App) IsFetching() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.isFetching
}

// LastError returns the most recent user-visible fetch error, empty when the
// last operation succeeded.
func (a *App) LastError() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastError
}

// SetCredentials marks the app as logged in with the given identity.
func (a *App) SetCredentials(creds auth.Credentials) {
	a.mu.Lock()
	a.creds = creds
	a.loggedIn = true
	a.mu.Unlock()
}

// Credentials returns the active identity; ok is false when logged out.
func (a *App) Credentials() (auth.Credentials, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.creds, a.loggedIn
}

// Logout stops polling, drops the identity, and clears all queues. The
// persisted watchlist is kept for the next login.
func (a *App) Logout() {
	a.StopPolling()
	a.mu.Lock()
	a.creds = auth.Credentials{}
	a.loggedIn = false
	a.lastError = ""
	a.mu.Unlock()
	a.queues.ClearAll()
}

// RefreshAuthored fetches the identity's authored PRs, classifies them, and
// atomically replaces the three classifier-driven queues. A call that
// arrives while another refresh is in flight returns immediately with no
// side effects: single-flight by design, skip rather than queue.
func (a *App) RefreshAuthored(ctx context.Context) error {
	a.mu.Lock()
	if a.isFetching {
		a.mu.Unlock()
		return nil
	}
	if !a.loggedIn {
		a.mu.Unlock()
		return fmt.Errorf("not logged in")
	}
	a.isFetching = true
	a.lastError = ""
	creds := a.creds
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.isFetching = false
		a.mu.Unlock()
	}()

	raws, err := a.source.FetchAuthoredPRs(ctx, creds.Token, creds.Username)
	if err != nil {
		// Stale-but-present beats blank: queues keep their last-known-good
		// contents.
		a.recordError(err)
		return err
	}

	var waiting, ready, blocked []model.Item
	for _, raw := range raws {
		item, q, ok := classify.Authored(raw)
		if !ok {
			continue
		}
		switch q {
		case model.QueueWaitingForReview:
			waiting = append(waiting, item)
		case model.QueueMergeReady:
			ready = append(ready, item)
		case model.QueueBlocked:
			blocked = append(blocked, item)
		}
	}

	a.queues.ReplaceClassified(waiting, ready, blocked)
	a.logger.Printf("refresh: %d waiting, %d ready, %d blocked, mood=%s",
		len(waiting), len(ready), len(blocked), a.queues.Mood())
	return nil
}

// AddPendingByURL adds a PR to the pending-reviews queue by its web URL. The
// URL is validated first, then persisted before the fetch so a crash
// mid-fetch does not lose the user's intent. A URL already on the watchlist
// is re-fetched without being re-persisted. Fetch failures never remove the
// persisted URL.
func (a *App) AddPendingByURL(ctx context.Context, rawURL string) error {
	url := strings.TrimSpace(rawURL)
	if _, _, _, err := github.ParsePRURL(url); err != nil {
		a.recordError(err)
		return err
	}

	creds, ok := a.Credentials()
	if !ok {
		return fmt.Errorf("not logged in")
	}

	if _, err := watchlist.Add(a.watchlist, url); err != nil {
		a.recordError(err)
		return err
	}

	return a.fetchPending(ctx, creds, url)
}

// fetchPending fetches a single PR and appends it to pendingReviews,
// deduplicated by id.
func (a *App) fetchPending(ctx context.Context, creds auth.Credentials, url string) error {
	raw, err := a.source.FetchPR(ctx, creds.Token, url)
	if err != nil {
		a.recordError(err)
		return err
	}
	item := classify.ToItem(*raw)
	if a.queues.AppendPending(item) {
		a.logger.Printf("watchlist: added %s (%s)", item.Repo, item.ID)
	}
	a.clearError()
	return nil
}

// RemovePending drops the item from pendingReviews and unpersists its URL.
func (a *App) RemovePending(id string) error {
	item, ok := a.queues.RemovePending(id)
	if !ok {
		return nil
	}
	if _, err := watchlist.Remove(a.watchlist, item.URL); err != nil {
		a.recordError(err)
		return err
	}
	return nil
}

// LoadWatchlist repopulates pendingReviews from the persisted URL list,
// fetching each PR sequentially. A URL that fails to fetch (merged, deleted,
// transient error) is reported but does not block loading the rest, and
// stays persisted for retry on the next load.
func (a *App) LoadWatchlist(ctx context.Context) error {
	creds, ok := a.Credentials()
	if !ok {
		return fmt.Errorf("not logged in")
	}

	urls, err := a.watchlist.Load()
	if err != nil {
		a.recordError(err)
		return err
	}

	var failed []string
	for _, url := range urls {
		if err := a.fetchPending(ctx, creds, url); err != nil {
			a.logger.Printf("watchlist: %s: %v", url, err)
			failed = append(failed, fmt.Sprintf("%s: %v", url, err))
		}
	}
	if len(failed) > 0 {
		msg := strings.Join(failed, "; ")
		a.mu.Lock()
		a.lastError = msg
		a.mu.Unlock()
		return fmt.Errorf("watchlist load: %s", msg)
	}
	return nil
}

// ClearBlocked empties the blocked queue.
func (a *App) ClearBlocked() { a.queues.ClearBlocked() }

// ClearAll empties every queue.
func (a *App) ClearAll() { a.queues.ClearAll() }

func (a *App) recordError(err error) {
	a.mu.Lock()
	a.lastError = err.Error()
	a.mu.Unlock()
	a.logger.Printf("error: %v", err)
}

func (a *App) clearError() {
	a.mu.Lock()
	a.lastError = ""
	a.mu.Unlock()
}
