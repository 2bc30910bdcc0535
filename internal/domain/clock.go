package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock stamps generated views. Tests freeze it via SetClock so rendered
// footers and published payloads are reproducible.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source used for GeneratedAt. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Now returns the current time from the package clock in UTC.
func Now() time.Time {
	return clock.Now().UTC()
}
