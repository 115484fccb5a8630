package clock

import "time"

// Clock is the logical-time oracle. Services read it exactly once per
// operation so penalty math inside a single transaction stays consistent.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns a Clock backed by the wall clock.
func System() Clock { return systemClock{} }
