package testutil

import (
	"sync"
	"time"
)

// FixedClock returns a clock function that starts at start and
// advances by step on every call.
//
// Deterministic timestamps let the same scenario produce identical
// rows and golden traces on every run.
//
// Thread-safety: the returned function is safe for concurrent use via
// internal mutex.
func FixedClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	next := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := next
		next = next.Add(step)
		return t
	}
}

// Epoch is a fixed, timezone-free instant for deterministic tests.
var Epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
