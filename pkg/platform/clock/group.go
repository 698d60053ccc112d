package clock

import (
	"sync"
	"time"
)

// Group owns a set of timers that are cancelled together. Once stopped, no
// callback scheduled through the group runs, even one whose underlying
// timer already fired and is waiting to be dispatched.
type Group struct {
	clock   Clock
	mu      sync.Mutex
	timers  map[uint64]Timer
	next    uint64
	stopped bool
}

// NewGroup returns an empty group scheduling on c.
func NewGroup(c Clock) *Group {
	return &Group{clock: c, timers: make(map[uint64]Timer)}
}

// After runs f once after d unless the group is stopped first.
func (g *Group) After(d time.Duration, f func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.stopped {
		return
	}
	key := g.next
	g.next++
	g.timers[key] = g.clock.AfterFunc(d, func() {
		g.mu.Lock()
		if g.stopped {
			g.mu.Unlock()
			return
		}
		delete(g.timers, key)
		g.mu.Unlock()
		f()
	})
}

// Every runs f each d until f returns false or the group is stopped.
func (g *Group) Every(d time.Duration, f func() bool) {
	var tick func()
	tick = func() {
		if f() {
			g.After(d, tick)
		}
	}
	g.After(d, tick)
}

// Stop cancels every pending timer. It is idempotent.
func (g *Group) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopped = true
	for key, t := range g.timers {
		t.Stop()
		delete(g.timers, key)
	}
}

// Stopped reports whether Stop has been called.
func (g *Group) Stopped() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stopped
}

// Active returns the number of pending timers.
func (g *Group) Active() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.timers)
}
