package app

import (
	"time"

	"github.com/SusanLiu63/PRNeko/internal/model"
)

// LoadMockData seeds the queues with demo items. Enabled with --mock or
// PRNEKO_MOCK=1 for development without a GitHub account.
func (a *App) LoadMockData() {
	now := time.Now()

	a.queues.ClearAll()
	a.queues.AppendPending(model.Item{
		ID:        "pr-1",
		Title:     "Fix authentication bug in login flow",
		Repo:      "acme/backend",
		Status:    model.StatusPassing,
		CreatedAt: now.Add(-2 * time.Hour),
		URL:       "https://github.com/acme/backend/pull/123",
	})
	a.queues.AppendPending(model.Item{
		ID:        "pr-2",
		Title:     "Add unit tests for user service",
		Repo:      "acme/backend",
		Status:    model.StatusPending,
		CreatedAt: now.Add(-24 * time.Hour),
		URL:       "https://github.com/acme/backend/pull/124",
	})
	a.queues.ReplaceClassified(
		[]model.Item{{
			ID:        "pr-5",
			Title:     "Add user profile page with avatar upload",
			Repo:      "acme/frontend",
			Status:    model.StatusPassing,
			CreatedAt: now.Add(-6 * time.Hour),
			URL:       "https://github.com/acme/frontend/pull/789",
		}},
		[]model.Item{{
			ID:        "pr-3",
			Title:     "Implement dark mode toggle",
			Repo:      "acme/frontend",
			Status:    model.StatusPassing,
			CreatedAt: now.Add(-3 * time.Hour),
			URL:       "https://github.com/acme/frontend/pull/456",
		}},
		[]model.Item{{
			ID:        "pr-4",
			Title:     "Refactor API error handling",
			Repo:      "acme/backend",
			Status:    model.StatusFailing,
			CreatedAt: now.Add(-5 * time.Hour),
			URL:       "https://github.com/acme/backend/pull/125",
		}},
	)
}
