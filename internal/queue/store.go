// Package queue holds the in-memory queue state and derives the mascot mood
// from it.
package queue

import (
	"sync"

	"github.com/SusanLiu63/PRNeko/internal/model"
)

// Snapshot is a point-in-time copy of all four queues.
type Snapshot struct {
	PendingReviews   []model.Item
	WaitingForReview []model.Item
	MergeReady       []model.Item
	Blocked          []model.Item
}

// Items returns the snapshot's items for the named queue.
func (s Snapshot) Items(q model.Queue) []model.Item {
	switch q {
	case model.QueuePendingReviews:
		return s.PendingReviews
	case model.QueueWaitingForReview:
		return s.WaitingForReview
	case model.QueueMergeReady:
		return s.MergeReady
	case model.QueueBlocked:
		return s.Blocked
	default:
		return nil
	}
}

// Total is the sum of all four queue lengths. Drives the badge count.
func (s Snapshot) Total() int {
	return len(s.PendingReviews) + len(s.WaitingForReview) + len(s.MergeReady) + len(s.Blocked)
}

// Mood derives the mascot mood from queue contents. Evaluated in fixed
// precedence order, first match wins: blocked, merge-ready, pending reviews,
// idle.
func Mood(s Snapshot) model.Mood {
	if len(s.Blocked) > 0 {
		return model.MoodAnxious
	}
	if len(s.MergeReady) > 0 {
		return model.MoodExcited
	}
	if len(s.PendingReviews) > 0 {
		return model.MoodHungry
	}
	return model.MoodIdle
}

// Store owns the four queues. Items keep fetch order; the store never
// re-sorts. Subscribers are notified after every mutation.
type Store struct {
	mu          sync.Mutex
	pending     []model.Item
	waiting     []model.Item
	ready       []model.Item
	blocked     []model.Item
	subscribers []func(Snapshot)
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Subscribe registers a callback invoked after every mutation with the new
// snapshot. Callbacks run on the mutating goroutine.
func (s *Store) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

// Snapshot returns a copy of all queues.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		PendingReviews:   append([]model.Item(nil), s.pending...),
		WaitingForReview: append([]model.Item(nil), s.waiting...),
		MergeReady:       append([]model.Item(nil), s.ready...),
		Blocked:          append([]model.Item(nil), s.blocked...),
	}
}

// Mood derives the current mood.
func (s *Store) Mood() model.Mood {
	return Mood(s.Snapshot())
}

// Total is the aggregate item count across all queues.
func (s *Store) Total() int {
	return s.Snapshot().Total()
}

// ReplaceClassified atomically replaces the three classifier-driven queues.
// pendingReviews is untouched: the authored-PR pass never writes it.
func (s *Store) ReplaceClassified(waiting, ready, blocked []model.Item) {
	s.mu.Lock()
	s.waiting = append([]model.Item(nil), waiting...)
	s.ready = append([]model.Item(nil), ready...)
	s.blocked = append([]model.Item(nil), blocked...)
	s.notifyLocked()
}

// AppendPending inserts into pendingReviews unless an item with the same id
// is already present. Idempotent under retry. Returns whether the item was
// added.
func (s *Store) AppendPending(item model.Item) bool {
	s.mu.Lock()
	for _, existing := range s.pending {
		if existing.ID == item.ID {
			s.mu.Unlock()
			return false
		}
	}
	s.pending = append(s.pending, item)
	s.notifyLocked()
	return true
}

// RemovePending removes the pendingReviews item with the given id. Returns
// the removed item; ok is false when no such item exists.
func (s *Store) RemovePending(id string) (model.Item, bool) {
	s.mu.Lock()
	for i, item := range s.pending {
		if item.ID == id {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			s.notifyLocked()
			return item, true
		}
	}
	s.mu.Unlock()
	return model.Item{}, false
}

// ClearBlocked empties the blocked queue.
func (s *Store) ClearBlocked() {
	s.mu.Lock()
	s.blocked = nil
	s.notifyLocked()
}

// ClearAll empties every queue. Used on logout and explicit reset.
func (s *Store) ClearAll() {
	s.mu.Lock()
	s.pending = nil
	s.waiting = nil
	s.ready = nil
	s.blocked = nil
	s.notifyLocked()
}

// notifyLocked snapshots state, releases the lock, and runs subscribers.
func (s *Store) notifyLocked() {
	snap := s.snapshotLocked()
	subs := append([](func(Snapshot))(nil), s.subscribers...)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}
}
