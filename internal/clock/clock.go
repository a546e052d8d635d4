package clock

import (
	"sync"
	"time"
)

// Clock supplies the current time in whole seconds since the unix epoch.
type Clock interface {
	Now() int64
}

// Real reads the system wall clock.
type Real struct{}

// NewReal creates a wall-clock Clock
func NewReal() Real {
	return Real{}
}

// Now returns the current unix time in seconds
func (Real) Now() int64 {
	return time.Now().Unix()
}

// Mock is a manually driven Clock for tests and local simulation.
type Mock struct {
	mu  sync.RWMutex
	now int64
}

// NewMock creates a Mock clock starting at the given unix second
func NewMock(start int64) *Mock {
	return &Mock{now: start}
}

// Now returns the mock's current time
func (m *Mock) Now() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Set jumps the clock to t. Going backwards is allowed.
func (m *Mock) Set(t int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// Advance moves the clock forward by d seconds and returns the new time
func (m *Mock) Advance(d int64) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now += d
	return m.now
}

// Time converts a Clock reading to time.Time in UTC
func Time(c Clock) time.Time {
	return time.Unix(c.Now(), 0).UTC()
}
