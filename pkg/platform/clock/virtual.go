package clock

import (
	"sync"
	"time"
)

// Virtual is a manually advanced clock. Callbacks run synchronously on the
// goroutine calling Advance, in due-time order (FIFO for equal times).
type Virtual struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers []*virtualTimer
}

type virtualTimer struct {
	v    *Virtual
	when time.Time
	seq  uint64
	fn   func()
	done bool
}

// NewVirtual returns a virtual clock starting at start.
func NewVirtual(start time.Time) *Virtual {
	return &Virtual{now: start}
}

func (v *Virtual) Now() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.now
}

func (v *Virtual) AfterFunc(d time.Duration, f func()) Timer {
	v.mu.Lock()
	defer v.mu.Unlock()
	if d < 0 {
		d = 0
	}
	t := &virtualTimer{v: v, when: v.now.Add(d), seq: v.seq, fn: f}
	v.seq++
	v.timers = append(v.timers, t)
	return t
}

// Advance moves time forward by d, firing every timer that falls due,
// including timers scheduled by callbacks within the window.
func (v *Virtual) Advance(d time.Duration) {
	v.mu.Lock()
	target := v.now.Add(d)
	v.mu.Unlock()

	for {
		v.mu.Lock()
		t := v.popDue(target)
		if t == nil {
			if v.now.Before(target) {
				v.now = target
			}
			v.mu.Unlock()
			return
		}
		if t.when.After(v.now) {
			v.now = t.when
		}
		v.mu.Unlock()
		t.fn()
	}
}

// Pending returns the number of scheduled, unfired, unstopped timers.
func (v *Virtual) Pending() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.timers)
}

// popDue removes and returns the earliest timer due at or before target.
// Caller holds v.mu.
func (v *Virtual) popDue(target time.Time) *virtualTimer {
	idx := -1
	for i, t := range v.timers {
		if t.when.After(target) {
			continue
		}
		if idx == -1 || t.when.Before(v.timers[idx].when) ||
			(t.when.Equal(v.timers[idx].when) && t.seq < v.timers[idx].seq) {
			idx = i
		}
	}
	if idx == -1 {
		return nil
	}
	t := v.timers[idx]
	v.timers = append(v.timers[:idx], v.timers[idx+1:]...)
	t.done = true
	return t
}

func (t *virtualTimer) Stop() bool {
	t.v.mu.Lock()
	defer t.v.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	for i, other := range t.v.timers {
		if other == t {
			t.v.timers = append(t.v.timers[:i], t.v.timers[i+1:]...)
			break
		}
	}
	return true
}
