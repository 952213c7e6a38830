package session

import "time"

type TrackerOpt func(*Tracker)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) TrackerOpt {
	return func(t *Tracker) {
		t.now = now
	}
}
