// Package clock provides the wall-clock source used by the engines and the
// single external scheduler that drives every periodic refresh.
package clock

import (
	"sync"
	"time"
)

// Clock reports the current local wall-clock time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

// Real returns a Clock backed by time.Now.
func Real() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

// Mock is a manually driven Clock for tests.
type Mock struct {
	mu  sync.Mutex
	now time.Time
}

// NewMock creates a mock clock starting at start.
func NewMock(start time.Time) *Mock {
	return &Mock{now: start}
}

// Now returns the mock time.
func (mock *Mock) Now() time.Time {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	return mock.now
}

// Advance moves the mock time forward by delta and returns the new time.
// A negative delta moves it backward.
func (mock *Mock) Advance(delta time.Duration) time.Time {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	mock.now = mock.now.Add(delta)
	return mock.now
}

// Set jumps the mock time to value.
func (mock *Mock) Set(value time.Time) {
	mock.mu.Lock()
	mock.now = value
	mock.mu.Unlock()
}
