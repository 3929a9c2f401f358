package queue

import (
	"testing"

	"github.com/SusanLiu63/PRNeko/internal/model"
)

func item(id string) model.Item {
	return model.Item{ID: id, Title: "title " + id, Repo: "acme/backend", Status: model.StatusPassing}
}

func TestReplaceClassifiedLeavesPendingAlone(t *testing.T) {
	s := NewStore()
	s.AppendPending(item("p1"))

	s.ReplaceClassified([]model.Item{item("w1")}, []model.Item{item("r1")}, nil)

	snap := s.Snapshot()
	if len(snap.PendingReviews) != 1 || snap.PendingReviews[0].ID != "p1" {
		t.Fatalf("pending = %+v, want [p1]", snap.PendingReviews)
	}
	if len(snap.WaitingForReview) != 1 || len(snap.MergeReady) != 1 || len(snap.Blocked) != 0 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}

	// Second replace fully supersedes the first.
	s.ReplaceClassified(nil, nil, []model.Item{item("b1")})
	snap = s.Snapshot()
	if len(snap.WaitingForReview) != 0 || len(snap.MergeReady) != 0 || len(snap.Blocked) != 1 {
		t.Fatalf("replace not wholesale: %+v", snap)
	}
}

func TestAppendPendingIdempotent(t *testing.T) {
	s := NewStore()
	if !s.AppendPending(item("p1")) {
		t.Fatal("first append rejected")
	}
	if s.AppendPending(item("p1")) {
		t.Fatal("duplicate append accepted")
	}
	if got := len(s.Snapshot().PendingReviews); got != 1 {
		t.Fatalf("pending length = %d, want 1", got)
	}
}

func TestRemovePending(t *testing.T) {
	s := NewStore()
	s.AppendPending(item("p1"))
	s.AppendPending(item("p2"))

	removed, ok := s.RemovePending("p1")
	if !ok || removed.ID != "p1" {
		t.Fatalf("RemovePending = %+v, %v", removed, ok)
	}
	if _, ok := s.RemovePending("missing"); ok {
		t.Fatal("removing absent id reported ok")
	}
	if got := len(s.Snapshot().PendingReviews); got != 1 {
		t.Fatalf("pending length = %d, want 1", got)
	}
}

func TestMoodPrecedence(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		want model.Mood
	}{
		{"blocked wins over merge-ready", Snapshot{Blocked: []model.Item{item("b")}, MergeReady: []model.Item{item("r")}}, model.MoodAnxious},
		{"merge-ready wins over pending", Snapshot{MergeReady: []model.Item{item("r")}, PendingReviews: []model.Item{item("p")}}, model.MoodExcited},
		{"pending reviews alone", Snapshot{PendingReviews: []model.Item{item("p")}}, model.MoodHungry},
		{"waiting does not affect mood", Snapshot{WaitingForReview: []model.Item{item("w")}}, model.MoodIdle},
		{"empty is idle", Snapshot{}, model.MoodIdle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mood(tt.snap); got != tt.want {
				t.Fatalf("Mood() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClearBlockedRecomputesMood(t *testing.T) {
	s := NewStore()
	s.ReplaceClassified(nil, nil, []model.Item{item("b1")})
	if got := s.Mood(); got != model.MoodAnxious {
		t.Fatalf("mood = %s, want anxious", got)
	}

	s.ClearBlocked()
	if got := s.Mood(); got != model.MoodIdle {
		t.Fatalf("mood after clear = %s, want idle", got)
	}
}

func TestTotalCountsAllQueues(t *testing.T) {
	s := NewStore()
	s.AppendPending(item("p1"))
	s.ReplaceClassified([]model.Item{item("w1"), item("w2")}, []model.Item{item("r1")}, []model.Item{item("b1")})
	if got := s.Total(); got != 5 {
		t.Fatalf("Total() = %d, want 5", got)
	}
}

func TestSubscribersNotifiedOnMutation(t *testing.T) {
	s := NewStore()
	var calls int
	var last Snapshot
	s.Subscribe(func(snap Snapshot) {
		calls++
		last = snap
	})

	s.AppendPending(item("p1"))
	s.ReplaceClassified(nil, nil, []model.Item{item("b1")})
	s.ClearAll()

	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
	if last.Total() != 0 {
		t.Fatalf("final snapshot total = %d, want 0", last.Total())
	}
}
