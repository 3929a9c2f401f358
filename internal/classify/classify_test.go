package classify

import (
	"testing"
	"time"

	"github.com/SusanLiu63/PRNeko/internal/github"
	"github.com/SusanLiu63/PRNeko/internal/model"
)

func rawPR(draft bool, rollup *github.CheckState, mergeable *github.MergeableState, decision *github.ReviewDecision) github.PullRequest {
	pr := github.PullRequest{
		ID:         "PR_abc123",
		Number:     42,
		Title:      "Refactor API error handling",
		URL:        "https://github.com/acme/backend/pull/42",
		CreatedAt:  "2025-11-03T10:15:00Z",
		IsDraft:    draft,
		Repository: github.Repository{NameWithOwner: "acme/backend"},
		Mergeable:  mergeable,
	}
	pr.ReviewDecision = decision
	if rollup != nil {
		pr.Commits = &github.CommitConnection{
			Nodes: []github.CommitNode{{Commit: github.Commit{
				StatusCheckRollup: &github.StatusCheckRollup{State: *rollup},
			}}},
		}
	}
	return pr
}

func checkp(s github.CheckState) *github.CheckState          { return &s }
func mergep(s github.MergeableState) *github.MergeableState  { return &s }
func decisionp(d github.ReviewDecision) *github.ReviewDecision { return &d }

func TestAuthored(t *testing.T) {
	tests := []struct {
		name       string
		pr         github.PullRequest
		wantQueue  model.Queue
		wantStatus model.Status
		excluded   bool
	}{
		{
			name:     "draft excluded",
			pr:       rawPR(true, checkp(github.CheckSuccess), mergep(github.MergeableMergeable), decisionp(github.ReviewApproved)),
			excluded: true,
		},
		{
			name:       "failing checks blocked",
			pr:         rawPR(false, checkp(github.CheckFailure), mergep(github.MergeableMergeable), nil),
			wantQueue:  model.QueueBlocked,
			wantStatus: model.StatusFailing,
		},
		{
			name:       "errored checks blocked",
			pr:         rawPR(false, checkp(github.CheckError), mergep(github.MergeableMergeable), decisionp(github.ReviewApproved)),
			wantQueue:  model.QueueBlocked,
			wantStatus: model.StatusFailing,
		},
		{
			name:       "conflicts blocked even with passing checks",
			pr:         rawPR(false, checkp(github.CheckSuccess), mergep(github.MergeableConflicting), decisionp(github.ReviewApproved)),
			wantQueue:  model.QueueBlocked,
			wantStatus: model.StatusPassing,
		},
		{
			name:       "changes requested blocked",
			pr:         rawPR(false, checkp(github.CheckSuccess), mergep(github.MergeableMergeable), decisionp(github.ReviewChangesRequested)),
			wantQueue:  model.QueueBlocked,
			wantStatus: model.StatusPassing,
		},
		{
			name:       "approved and green is merge-ready",
			pr:         rawPR(false, checkp(github.CheckSuccess), mergep(github.MergeableMergeable), decisionp(github.ReviewApproved)),
			wantQueue:  model.QueueMergeReady,
			wantStatus: model.StatusPassing,
		},
		{
			name:       "no checks and no review requirement is merge-ready",
			pr:         rawPR(false, nil, mergep(github.MergeableMergeable), nil),
			wantQueue:  model.QueueMergeReady,
			wantStatus: model.StatusPassing,
		},
		{
			name:       "review required waits",
			pr:         rawPR(false, checkp(github.CheckSuccess), mergep(github.MergeableMergeable), decisionp(github.ReviewRequired)),
			wantQueue:  model.QueueWaitingForReview,
			wantStatus: model.StatusPassing,
		},
		{
			name:       "pending checks with no decision waits",
			pr:         rawPR(false, checkp(github.CheckPending), mergep(github.MergeableMergeable), nil),
			wantQueue:  model.QueueWaitingForReview,
			wantStatus: model.StatusPending,
		},
		{
			name:       "unknown mergeable with nothing else waits",
			pr:         rawPR(false, nil, mergep(github.MergeableUnknown), decisionp(github.ReviewRequired)),
			wantQueue:  model.QueueWaitingForReview,
			wantStatus: model.StatusPassing,
		},
		{
			name:       "expected checks with approval falls back to waiting",
			pr:         rawPR(false, checkp(github.CheckExpected), mergep(github.MergeableMergeable), decisionp(github.ReviewApproved)),
			wantQueue:  model.QueueWaitingForReview,
			wantStatus: model.StatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, queue, ok := Authored(tt.pr)
			if tt.excluded {
				if ok {
					t.Fatalf("Authored() = %v queue=%s, want excluded", item, queue)
				}
				return
			}
			if !ok {
				t.Fatal("Authored() excluded, want classified")
			}
			if queue != tt.wantQueue {
				t.Errorf("queue = %s, want %s", queue, tt.wantQueue)
			}
			if item.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", item.Status, tt.wantStatus)
			}
		})
	}
}

func TestToItemNormalizes(t *testing.T) {
	pr := rawPR(false, checkp(github.CheckFailure), nil, nil)
	item := ToItem(pr)

	if item.ID != "PR_abc123" || item.Repo != "acme/backend" {
		t.Fatalf("unexpected item: %+v", item)
	}
	if item.Status != model.StatusFailing {
		t.Errorf("status = %s, want failing", item.Status)
	}
	want := time.Date(2025, 11, 3, 10, 15, 0, 0, time.UTC)
	if !item.CreatedAt.Equal(want) {
		t.Errorf("createdAt = %v, want %v", item.CreatedAt, want)
	}
}

func TestToItemFractionalSeconds(t *testing.T) {
	pr := rawPR(false, nil, nil, nil)
	pr.CreatedAt = "2025-11-03T10:15:00.123Z"
	item := ToItem(pr)
	if item.CreatedAt.Year() != 2025 || item.CreatedAt.Nanosecond() != 123000000 {
		t.Fatalf("createdAt = %v", item.CreatedAt)
	}
}

func TestToItemBadTimestampFailsClosed(t *testing.T) {
	pr := rawPR(false, nil, nil, nil)
	pr.CreatedAt = "not-a-timestamp"

	before := time.Now()
	item := ToItem(pr)
	after := time.Now()

	if item.CreatedAt.Before(before) || item.CreatedAt.After(after) {
		t.Fatalf("createdAt = %v, want between %v and %v", item.CreatedAt, before, after)
	}
}
