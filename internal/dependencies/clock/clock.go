package clock

import "time"

// Clock provides time operations that can be mocked for testing
type Clock interface {
	// Now returns the current time
	Now() time.Time
}

// SystemClock implements Clock using the system time
type SystemClock struct{}

// New creates a new SystemClock
func New() *SystemClock {
	return &SystemClock{}
}

// Now returns the current system time
func (c *SystemClock) Now() time.Time {
	return time.Now()
}
