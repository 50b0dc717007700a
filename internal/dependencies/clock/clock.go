// Package clock abstracts wall-clock reads so lifecycle logic that ages
// player records can run against a mock in tests.
package clock

import "time"

// Clock is the time source injected into anything that timestamps players.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

func New() *RealClock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}
