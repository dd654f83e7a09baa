package engine

import (
	"sync"
	"time"
)

// Clock abstracts wall-clock access so tick cost measurement is testable
type Clock interface {
	Now() time.Time
}

// MonotonicClock is the production clock
type MonotonicClock struct{}

// NewMonotonicClock creates a real-time clock with monotonic readings
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{}
}

// Now returns the current time with monotonic clock reading
func (c *MonotonicClock) Now() time.Time {
	return time.Now()
}

// MockClock provides a controllable time source for testing
// An optional step advances the clock on every Now call, simulating a
// fixed per-observation cost
type MockClock struct {
	mu          sync.RWMutex
	currentTime time.Time
	step        time.Duration
}

// NewMockClock creates a mock clock at the given start time
func NewMockClock(startTime time.Time) *MockClock {
	return &MockClock{
		currentTime: startTime,
	}
}

// Now returns the current mocked time, advancing it by the configured step
func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(m.step)
	return m.currentTime
}

// SetStep sets the duration added to the clock on each Now call
func (m *MockClock) SetStep(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.step = d
}

// Advance advances the current time by the given duration
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}
