package onboarding

import "time"

// Clock abstracts timer creation so overlay completion can be driven
// deterministically in tests.
type Clock interface {
	// AfterFunc schedules f to run after d and returns a handle to stop it.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a cancellable scheduled callback.
type Timer interface {
	// Stop prevents the callback from firing. Returns false if it already
	// fired or was stopped.
	Stop() bool
}

// realClock implements Clock with the runtime's timers.
type realClock struct{}

// NewClock returns a Clock backed by time.AfterFunc.
func NewClock() Clock { return realClock{} }

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return realTimer{t: time.AfterFunc(d, f)}
}

type realTimer struct {
	t *time.Timer
}

func (rt realTimer) Stop() bool { return rt.t.Stop() }
