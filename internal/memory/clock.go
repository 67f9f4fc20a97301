package memory

import "time"

// Timer is a pending delayed call.
type Timer interface {
	// Stop cancels the call. It reports false if the call already ran
	// or was already stopped.
	Stop() bool
}

// Clock abstracts wall time and delayed calls so the controller can be
// driven by a manual clock in tests.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemClock is the real clock backed by the time package.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// AfterFunc wraps time.AfterFunc.
func (SystemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
