package ratelimit_test

import (
	"sync"
	"testing"
	"time"

	"joinlist/internal/core/ratelimit"
)

func TestBoundary(t *testing.T) {
	lim := ratelimit.NewSlidingWindow(5, time.Minute)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		if !lim.Allow("c1", now) {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	// the 6th request inside the window is rejected
	if lim.Allow("c1", now.Add(time.Second)) {
		t.Fatalf("6th request within window must be rejected")
	}
	// rejection must not append, so the count stays at the limit
	if got := lim.Len("c1"); got != 5 {
		t.Fatalf("rejected request must not be recorded, have %d", got)
	}
}

func TestWindowSlides(t *testing.T) {
	lim := ratelimit.NewSlidingWindow(5, time.Minute)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		lim.Allow("c1", now.Add(time.Duration(i)*time.Second))
	}
	if lim.Allow("c1", now.Add(30*time.Second)) {
		t.Fatalf("still inside window, must reject")
	}
	// just past the oldest stamp's expiry a slot frees up
	if !lim.Allow("c1", now.Add(61*time.Second)) {
		t.Fatalf("after the window passes a new request must be allowed")
	}
}

func TestClientsAreIndependent(t *testing.T) {
	lim := ratelimit.NewSlidingWindow(1, time.Minute)
	now := time.Now()

	if !lim.Allow("a", now) {
		t.Fatalf("first request for a")
	}
	if lim.Allow("a", now) {
		t.Fatalf("a is at its limit")
	}
	if !lim.Allow("b", now) {
		t.Fatalf("b must not be affected by a's window")
	}
}

func TestDefaultsApplied(t *testing.T) {
	lim := ratelimit.NewSlidingWindow(0, 0)
	now := time.Now()
	allowed := 0
	for i := 0; i < 10; i++ {
		if lim.Allow("c", now) {
			allowed++
		}
	}
	if allowed != 5 {
		t.Fatalf("default limit should be 5, allowed %d", allowed)
	}
}

func TestParallelSameClientCannotExceedLimit(t *testing.T) {
	lim := ratelimit.NewSlidingWindow(5, time.Minute)
	now := time.Now()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if lim.Allow("burst", now) {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if allowed != 5 {
		t.Fatalf("parallel requests exceeded the limit: %d", allowed)
	}
}
