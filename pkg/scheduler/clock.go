package scheduler

import "time"

// Clock provides time for deadline checks. Tests inject a fake clock to
// control deadlines deterministically.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return realClock{} }
