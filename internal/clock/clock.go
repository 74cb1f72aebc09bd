// Package clock abstracts the time source for the session lifecycle.
//
// Session records are dense with timestamps: creation, last activity, task
// start and finish, wave completion, grant issue and expiry. The lifecycle
// manager stamps all of them through a Clock so tests can pin a fixed
// instant and assert stored timestamps and grant TTL math exactly.
package clock

import "time"

// Clock supplies the current time for session mutations.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock is the production Clock backed by the system time.
type RealClock struct{}

// Now returns the system time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Ensure RealClock implements Clock.
var _ Clock = RealClock{}
