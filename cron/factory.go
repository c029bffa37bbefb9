package cron

import (
	"fmt"
	"time"
)

// FromTime returns a schedule firing once, at t rounded up to the next
// whole second. The schedule is expressed in t's location.
func FromTime(t time.Time) (*Schedule, error) {
	if t.Nanosecond() > 0 {
		t = t.Truncate(time.Second).Add(time.Second)
	}
	return Parse(fmt.Sprintf("%d %d %d %d %d * %d",
		t.Second(), t.Minute(), t.Hour(), t.Day(), int(t.Month()), t.Year()))
}

// After returns a schedule firing once, delay after now.
func After(now time.Time, delay time.Duration) (*Schedule, error) {
	return FromTime(now.Add(delay))
}
