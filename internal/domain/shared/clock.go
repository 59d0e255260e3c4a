package shared

import "time"

// Clock is an abstraction for time operations, allowing search deadlines to be
// exercised in tests without waiting
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the actual system time
type RealClock struct{}

// Now returns the current system time in UTC
func (r *RealClock) Now() time.Time {
	return time.Now().UTC()
}

// MockClock implements Clock with a controllable time for testing.
// Step, when non-zero, is added after every Now call so a search observes time
// passing between node expansions.
type MockClock struct {
	CurrentTime time.Time
	Step        time.Duration
}

// Now returns the mock's current time
func (m *MockClock) Now() time.Time {
	now := m.CurrentTime
	m.CurrentTime = m.CurrentTime.Add(m.Step)
	return now
}

// Advance moves the mock clock forward by the given duration
func (m *MockClock) Advance(d time.Duration) {
	m.CurrentTime = m.CurrentTime.Add(d)
}

// SetTime sets the mock clock to a specific time
func (m *MockClock) SetTime(t time.Time) {
	m.CurrentTime = t
}

// NewMockClock creates a MockClock starting at the given time
// If zero time is provided, starts at current time
func NewMockClock(startTime time.Time) *MockClock {
	if startTime.IsZero() {
		startTime = time.Now()
	}
	return &MockClock{CurrentTime: startTime}
}

// NewRealClock creates a RealClock instance
func NewRealClock() Clock {
	return &RealClock{}
}
