// Package clock abstracts wall time and timer scheduling so the game engine
// can run against real time in production and a manually advanced clock in
// tests.
package clock

import (
	"sync"
	"time"
)

// Timer is a handle to a scheduled callback.
// Stop reports whether the call stopped the timer (false if it had already
// fired, for one-shot timers, or was already stopped).
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks. Callbacks run on goroutines owned by the
// clock; callers are responsible for serialising them with their own state.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
	Every(d time.Duration, f func()) Timer
}

// Real is the wall clock.
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

func (Real) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Every runs f every d until the returned timer is stopped.
func (Real) Every(d time.Duration, f func()) Timer {
	t := &ticker{t: time.NewTicker(d), done: make(chan struct{})}
	go t.loop(f)
	return t
}

type ticker struct {
	t    *time.Ticker
	done chan struct{}
	once sync.Once
}

func (t *ticker) loop(f func()) {
	for {
		select {
		case <-t.done:
			return
		case <-t.t.C:
			f()
		}
	}
}

func (t *ticker) Stop() bool {
	stopped := false
	t.once.Do(func() {
		t.t.Stop()
		close(t.done)
		stopped = true
	})
	return stopped
}
