package model

// Queue names one of the four actionable buckets. PendingReviews is populated
// only by manual adds; the other three only by the authored-PR classification
// pass.
type Queue string

const (
	QueuePendingReviews   Queue = "pendingReviews"
	QueueWaitingForReview Queue = "waitingForReview"
	QueueMergeReady       Queue = "mergeReady"
	QueueBlocked          Queue = "blocked"
)

// Queues lists all queues in display order.
var Queues = []Queue{QueuePendingReviews, QueueWaitingForReview, QueueMergeReady, QueueBlocked}

// Title returns the human-readable queue heading.
func (q Queue) Title() string {
	switch q {
	case QueuePendingReviews:
		return "Pending Reviews"
	case QueueWaitingForReview:
		return "Waiting for Review"
	case QueueMergeReady:
		return "Merge-ready"
	case QueueBlocked:
		return "Blocked"
	default:
		return string(q)
	}
}
