// Package clock abstracts the two time operations the list controller
// needs, reading the wall clock and scheduling a callback, so debounce
// timers and date presets can be driven deterministically in tests.
//
// Production code uses Real(). Tests use Fake(t0) and call Advance to
// fire pending callbacks synchronously, in deadline order.
package clock

import "time"

// Clock is the injectable time source
type Clock interface {
	// Now returns the current time
	Now() time.Time

	// AfterFunc calls f once d has elapsed. The returned Timer cancels it.
	AfterFunc(d time.Duration, f func()) *Timer
}

// Timer is a scheduled callback
type Timer struct {
	stopFunc func() bool
}

// Stop prevents the callback from running. Returns false if it already
// ran or was stopped.
func (t *Timer) Stop() bool { return t.stopFunc() }

type realClock struct{}

// Real returns the standard library clock
func Real() Clock { return realClock{} }

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) *Timer {
	t := time.AfterFunc(d, f)
	return &Timer{stopFunc: t.Stop}
}
