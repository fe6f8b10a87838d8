// Package ratelimit tracks the Sentry API quota advertised in the
// x-sentry-rate-limit-* response headers and decides how long a client
// must wait before issuing its next request.
package ratelimit

import (
	"time"
)

// Default quota assumed before the first response has been observed.
// Optimistic: no request waits until the service says otherwise.
const (
	DefaultRemaining = 100
	DefaultLimit     = 100
)

// State is the most recently observed quota window.
// It is owned by exactly one Tracker (and therefore one client instance);
// callers that want a shared quota view must share the client.
type State struct {
	// Remaining is the number of calls left in the current window,
	// from the x-sentry-rate-limit-remaining header.
	Remaining int

	// Limit is the window capacity, from the x-sentry-rate-limit-limit header.
	Limit int

	// ResetAt is when the window resets, from the
	// x-sentry-rate-limit-reset header (epoch seconds).
	// The zero value means "never observed".
	ResetAt time.Time
}

// NewState returns the optimistic initial state.
func NewState() State {
	return State{
		Remaining: DefaultRemaining,
		Limit:     DefaultLimit,
	}
}

// ShouldWait returns how long a caller must wait at instant now before
// issuing a request. The duration is positive exactly when the quota is
// exhausted and the window has not reset yet; in every other case,
// including a stale ResetAt in the past, it is zero.
func (s State) ShouldWait(now time.Time) time.Duration {
	if s.Remaining > 0 {
		return 0
	}
	if !now.Before(s.ResetAt) {
		return 0
	}
	return s.ResetAt.Sub(now)
}

// Exhausted reports whether the last observed window has no calls left.
func (s State) Exhausted() bool {
	return s.Remaining <= 0
}
