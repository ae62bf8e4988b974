// Package ratelimit implements the per-client sliding window limiter for the
// signup endpoint. Windows live in process memory only: a restart resets every
// counter and horizontally scaled replicas each count on their own. That is a
// known property of the single-process deployment target, not a bug.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter decides whether a client may make another request at instant now
// the seam exists so a shared-store implementation can replace the in-memory
// one without touching the orchestrator
type Limiter interface {
	Allow(clientID string, now time.Time) bool
}

// SlidingWindow counts requests per client over a moving interval ending at now.
// The zero value is not usable; construct with NewSlidingWindow.
type SlidingWindow struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	clients map[string][]time.Time
}

// NewSlidingWindow builds a limiter allowing limit requests per window per client
func NewSlidingWindow(limit int, window time.Duration) *SlidingWindow {
	if limit <= 0 {
		limit = 5
	}
	if window <= 0 {
		window = time.Minute
	}
	return &SlidingWindow{
		limit:   limit,
		window:  window,
		clients: make(map[string][]time.Time),
	}
}

// Allow reports whether the client may proceed and records the request if so.
// The read-prune-append sequence runs under one lock so parallel requests for
// the same client cannot interleave past the limit. Never returns an error;
// the limiter has no failure mode beyond saying no.
func (s *SlidingWindow) Allow(clientID string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := now.Add(-s.window)
	stamps := s.clients[clientID]

	// prune lazily on access
	kept := stamps[:0]
	for _, ts := range stamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= s.limit {
		s.clients[clientID] = kept
		return false
	}

	s.clients[clientID] = append(kept, now)
	return true
}

// Len reports how many requests are currently counted for the client
// pruning happens on Allow, so this is a point-in-time view for tests and stats
func (s *SlidingWindow) Len(clientID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients[clientID])
}
