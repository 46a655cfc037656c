package util

import "time"

// Clock is the only time source the engine consumes. The sweeper sleeps on
// After, which lets tests drive sweep cycles without real waits.
type Clock interface {
	After(d time.Duration) <-chan time.Time
	Now() time.Time
}

type RealClock struct{}

func (RealClock) After(d time.Duration) <-chan time.Time { return time.After(d) }
func (RealClock) Now() time.Time                         { return time.Now() }
