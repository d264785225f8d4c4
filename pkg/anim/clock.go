package anim

import "time"

// Clock supplies the current time for animation arithmetic. The returned
// values must be monotonic; a clock that jumps backwards is an input
// contract violation and is not handled defensively.
type Clock interface {
	Now() time.Time
}

// SystemClock returns the wall clock. time.Time carries a monotonic
// reading on all supported platforms, so Sub is safe for elapsed-time math.
func SystemClock() Clock {
	return systemClock{}
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}
