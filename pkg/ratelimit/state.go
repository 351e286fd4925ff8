// Package ratelimit implements Spotify rate limit tracking and request gating.
// It watches for 429 Too Many Requests responses and honors their Retry-After
// header by refusing further requests until the window has passed.
package ratelimit

import (
	"time"
)

// DefaultRetryAfter is the block applied to a 429 response that carries no
// usable Retry-After header.
const DefaultRetryAfter = 1 * time.Second

// State represents the current rate limit state of one tracker.
type State struct {
	// BlockedUntil is the time before which requests are refused.
	// Zero when no 429 has been seen.
	BlockedUntil time.Time `json:"blocked_until"`

	// LastStatus is the HTTP status of the last observed response.
	LastStatus int `json:"last_status"`

	// LastUpdate is when the state was last updated.
	LastUpdate time.Time `json:"last_update"`
}

// IsBlocked returns true if requests must not be sent right now.
func (s State) IsBlocked() bool {
	return time.Now().Before(s.BlockedUntil)
}

// TimeUntilUnblock returns the duration until requests are allowed again.
// Returns 0 if the block has already passed.
func (s State) TimeUntilUnblock() time.Duration {
	duration := time.Until(s.BlockedUntil)
	if duration < 0 {
		return 0
	}
	return duration
}
