// Package clock abstracts time so timer-driven code can run against the wall
// clock in production and a virtual clock in tests.
package clock

import "time"

// Clock schedules callbacks. Implementations must be safe for concurrent use.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending callback. Stop reports whether it prevented the call.
type Timer interface {
	Stop() bool
}

// Real is the wall clock.
type Real struct{}

func (Real) Now() time.Time {
	return time.Now()
}

func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type scaled struct {
	Clock
	speed float64
}

// Scale returns a clock whose delays run speed times faster than c.
// Non-positive or unit speeds return c unchanged.
func Scale(c Clock, speed float64) Clock {
	if speed <= 0 || speed == 1 {
		return c
	}
	return scaled{Clock: c, speed: speed}
}

func (s scaled) AfterFunc(d time.Duration, f func()) Timer {
	return s.Clock.AfterFunc(time.Duration(float64(d)/s.speed), f)
}
