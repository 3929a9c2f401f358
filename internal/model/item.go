package model

import (
	"fmt"
	"time"
)

// Status is the CI state shown next to a pull request, derived from the
// check rollup of its latest commit.
type Status string

const (
	StatusPassing Status = "passing"
	StatusFailing Status = "failing"
	StatusPending Status = "pending"
)

// Glyph returns the single-character indicator used in list rows.
func (s Status) Glyph() string {
	switch s {
	case StatusPassing:
		return "✓"
	case StatusFailing:
		return "✗"
	case StatusPending:
		return "●"
	default:
		return "?"
	}
}

// Item is a normalized pull request as stored in the queues. Items are value
// objects: replaced wholesale on refresh, never mutated in place.
type Item struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Repo      string    `json:"repo"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	URL       string    `json:"url"`
}

// Age renders CreatedAt relative to now ("2h", "3d").
func (i Item) Age() string {
	return RelativeAge(i.CreatedAt, time.Now())
}

// RelativeAge formats the duration between then and now in the largest
// sensible unit.
func RelativeAge(then, now time.Time) string {
	d := now.Sub(then)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return fmt.Sprintf("%dw", int(d.Hours()/(24*7)))
	}
}
