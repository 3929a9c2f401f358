// Package classify buckets raw pull requests into actionable queues. It is
// pure: no I/O, no shared state.
package classify

import (
	"time"

	"github.com/SusanLiu63/PRNeko/internal/github"
	"github.com/SusanLiu63/PRNeko/internal/model"
)

// Authored classifies an authored PR into one of the three classifier-driven
// queues. ok is false for PRs that should not be shown at all (drafts).
//
// Rules are evaluated in strict priority order, first match wins:
// draft → excluded; blocked; merge-ready; waiting for review; fallback
// waiting for review. An indeterminate PR is never silently dropped.
func Authored(pr github.PullRequest) (item model.Item, queue model.Queue, ok bool) {
	if pr.IsDraft {
		return model.Item{}, "", false
	}

	item = ToItem(pr)

	if isBlocked(pr) {
		return item, model.QueueBlocked, true
	}
	if isMergeReady(pr) {
		return item, model.QueueMergeReady, true
	}
	if isWaitingForReview(pr) {
		return item, model.QueueWaitingForReview, true
	}

	// Indeterminate (e.g. checks still pending with a review decision we do
	// not recognize). Defaults to waiting since the PR is not actively
	// blocked. Unreachable with the currently enumerated review decisions,
	// kept as the safety default for future schema additions.
	return item, model.QueueWaitingForReview, true
}

// ToItem normalizes a raw PR without assigning a queue. Manually-added
// pending-review PRs go through this path and land in pendingReviews
// regardless of their check or review state.
func ToItem(pr github.PullRequest) model.Item {
	return model.Item{
		ID:        pr.ID,
		Title:     pr.Title,
		Repo:      pr.Repository.NameWithOwner,
		Status:    mapCheckStatus(pr),
		CreatedAt: parseTimestamp(pr.CreatedAt),
		URL:       pr.URL,
	}
}

// isBlocked reports failing checks, merge conflicts, or an active
// changes-requested verdict.
func isBlocked(pr github.PullRequest) bool {
	if rollup := pr.Rollup(); rollup != nil {
		if rollup.State == github.CheckFailure || rollup.State == github.CheckError {
			return true
		}
	}
	if pr.Mergeable != nil && *pr.Mergeable == github.MergeableConflicting {
		return true
	}
	if pr.ReviewDecision != nil && *pr.ReviewDecision == github.ReviewChangesRequested {
		return true
	}
	return false
}

// isMergeReady requires passing (or absent) checks, no conflicts, and an
// approved (or absent) review decision. An absent decision means no branch
// protection rule requires reviews.
func isMergeReady(pr github.PullRequest) bool {
	if pr.IsDraft {
		return false
	}
	if rollup := pr.Rollup(); rollup != nil && rollup.State != github.CheckSuccess {
		return false
	}
	if pr.Mergeable != nil && *pr.Mergeable == github.MergeableConflicting {
		return false
	}
	if pr.ReviewDecision != nil && *pr.ReviewDecision != github.ReviewApproved {
		return false
	}
	return true
}

func isWaitingForReview(pr github.PullRequest) bool {
	return pr.ReviewDecision == nil || *pr.ReviewDecision == github.ReviewRequired
}

// mapCheckStatus maps the check rollup to a display status. No rollup means
// no checks configured, which is nothing blocking, so passing.
func mapCheckStatus(pr github.PullRequest) model.Status {
	rollup := pr.Rollup()
	if rollup == nil {
		return model.StatusPassing
	}
	switch rollup.State {
	case github.CheckSuccess:
		return model.StatusPassing
	case github.CheckFailure, github.CheckError:
		return model.StatusFailing
	default:
		return model.StatusPending
	}
}

// parseTimestamp parses an ISO8601 timestamp, with and without fractional
// seconds. A malformed timestamp fails closed to now: a data-quality defect
// must not abort classification of an otherwise-valid PR.
func parseTimestamp(s string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Now()
}
