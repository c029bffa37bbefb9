package cron

import "time"

// Serie walks the successive run times of a Schedule.
// A Serie is not safe for concurrent use, the Schedule it walks is.
type Serie struct {
	schedule *Schedule
	current  time.Time
	done     bool
}

// NewSerie returns a Serie positioned at from. The first call to Next
// returns the first run strictly after from.
func NewSerie(schedule *Schedule, from time.Time) *Serie {
	return &Serie{schedule: schedule, current: from}
}

// NewCronSerie parses expr and returns a Serie positioned at from.
// Returns an error if the expression is invalid.
func NewCronSerie(expr string, from time.Time) (*Serie, error) {
	s, err := Parse(expr)
	if err != nil {
		return nil, err
	}
	return NewSerie(s, from), nil
}

// Schedule returns the schedule being walked.
func (c *Serie) Schedule() *Schedule {
	return c.schedule
}

// Current returns the last run returned by Next, or the starting time if
// Next was never called.
func (c *Serie) Current() time.Time {
	return c.current
}

// Next advances to the next run and returns it. Once the schedule has no
// more runs it keeps returning false.
func (c *Serie) Next() (time.Time, bool) {
	if c.done {
		return time.Time{}, false
	}
	next, ok := c.schedule.Next(c.current)
	if !ok {
		c.done = true
		return time.Time{}, false
	}
	c.current = next
	return next, true
}

// Take returns up to n upcoming runs. Fewer are returned when the schedule
// runs out.
func (c *Serie) Take(n int) []time.Time {
	runs := make([]time.Time, 0, n)
	for len(runs) < n {
		next, ok := c.Next()
		if !ok {
			break
		}
		runs = append(runs, next)
	}
	return runs
}
