package clock

import (
	"sync"
	"time"
)

// Loop serialises every callback scheduled through it, and every function
// passed to Do, onto a single logical thread. State owned by the loop needs
// no further locking.
//
// Callbacks must not call Do; that would deadlock.
type Loop struct {
	clock Clock
	mu    sync.Mutex
}

// NewLoop wraps c.
func NewLoop(c Clock) *Loop {
	return &Loop{clock: c}
}

func (l *Loop) Now() time.Time {
	return l.clock.Now()
}

func (l *Loop) AfterFunc(d time.Duration, f func()) Timer {
	return l.clock.AfterFunc(d, func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		f()
	})
}

// Do runs f on the loop.
func (l *Loop) Do(f func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	f()
}
