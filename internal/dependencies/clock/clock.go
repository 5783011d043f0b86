package clock

import "time"

// Clock provides time operations that can be mocked for testing
type Clock interface {
	// Now returns the current time in UTC
	Now() time.Time
}

// SystemClock reads the system clock
type SystemClock struct{}

// New creates a new SystemClock
func New() *SystemClock {
	return &SystemClock{}
}

// Now returns the current time in UTC, without the monotonic reading, so
// stored session timestamps compare equal after a JSON round trip
func (c *SystemClock) Now() time.Time {
	return time.Now().UTC().Round(0)
}
