package cron

import (
	"errors"
	"strings"
	"time"
)

// Schedule is a parsed cron expression with seven fields:
//
//	second minute hour day-of-month month day-of-week [year]
//
// The year is optional and defaults to "*". The shorthand strings @yearly,
// @annually, @monthly, @weekly, @daily, @midnight, @hourly and @minutely
// are accepted in place of a whole expression. Month and day of week accept
// three letter English names in any case. Day of week runs from Monday (1)
// to Sunday (7), 0 is accepted as Sunday as well.
//
// Day of month and day of week must both match for the schedule to fire, a
// "?" in either of them lifts its constraint.
//
// A Schedule is immutable and safe for concurrent use.
type Schedule struct {
	atoms [fieldCount]*Atom
}

// Parse parses a cron expression. The returned error matches
// ErrMalformedExpression.
func Parse(expr string) (*Schedule, error) {
	raw, err := splitExpression(expr)
	if err != nil {
		return nil, err
	}
	s := &Schedule{}
	for i, text := range raw {
		a, err := ParseAtom(text, Field(i))
		if err != nil {
			var ee *ExpressionError
			if errors.As(err, &ee) {
				ee.Expression = expr
			}
			return nil, err
		}
		s.atoms[i] = a
	}
	return s, nil
}

// MustParse is like Parse but panics if the expression is malformed.
func MustParse(expr string) *Schedule {
	s, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return s
}

// IsValid reports whether expr can be parsed.
func IsValid(expr string) bool {
	_, err := Parse(expr)
	return err == nil
}

// Atom returns the parsed atom of the given field.
func (s *Schedule) Atom(f Field) *Atom {
	f.bounds()
	return s.atoms[f]
}

// String returns the seven atoms joined by a single space. Shorthand strings
// and names appear expanded.
func (s *Schedule) String() string {
	var b strings.Builder
	for i, a := range s.atoms {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(a.String())
	}
	return b.String()
}

// FirstRunAfter is an alias of Next.
func (s *Schedule) FirstRunAfter(t time.Time) (time.Time, bool) {
	return s.Next(t)
}

// FirstRunAfterMillis is Next for epoch milliseconds, evaluated in the
// local time zone.
func (s *Schedule) FirstRunAfterMillis(ms int64) (int64, bool) {
	next, ok := s.Next(time.UnixMilli(ms))
	if !ok {
		return 0, false
	}
	return next.UnixMilli(), true
}

// civil is a wall clock reading. Fields may overflow their range, the
// carry is resolved by Schedule.resolve.
type civil struct {
	year, month, day, hour, minute, second int
}

func civilOf(t time.Time) civil {
	return civil{t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second()}
}

func (c civil) in(loc *time.Location) time.Time {
	return time.Date(c.year, time.Month(c.month), c.day, c.hour, c.minute, c.second, 0, loc)
}

// Next returns the earliest time strictly after t at which the schedule
// fires, evaluated in t's location with a one second resolution. The boolean
// is false when the schedule never fires again.
func (s *Schedule) Next(t time.Time) (time.Time, bool) {
	loc := t.Location()
	base := civilOf(t.Truncate(time.Second).Add(time.Second))
	for {
		c, ok := s.resolve(base)
		if !ok {
			traceLogger().Debug("cron: no run left before the year ceiling",
				"schedule", s.String(), "after", t)
			return time.Time{}, false
		}
		next := c.in(loc)
		if !s.atoms[DayOfWeek].Contains(isoWeekday(next)) {
			traceLogger().Debug("cron: day of week rejected",
				"schedule", s.String(), "candidate", next)
			base = civil{year: c.year, month: c.month, day: c.day + 1}
			continue
		}
		if !next.After(t) {
			// Wall clock repeated by a daylight saving transition.
			c.second++
			base = c
			continue
		}
		return next, true
	}
}

// resolve finds the earliest wall clock reading not before base that
// matches every field except day of week. It carries overflow from the
// second up to the year and resets finer fields to their first accepted
// value whenever a coarser field moves forward.
func (s *Schedule) resolve(base civil) (civil, bool) {
	second, minute, hour := s.atoms[Second], s.atoms[Minute], s.atoms[Hour]
	dom, month, year := s.atoms[DayOfMonth], s.atoms[Month], s.atoms[Year]
	resetTime := func(c *civil) {
		c.hour, c.minute, c.second = hour.First(), minute.First(), second.First()
	}

	c := base
	var ok bool
	var prev int

	if c.second, ok = second.NextValue(c.second); !ok {
		c.second = second.First()
		c.minute++
	}

	prev = c.minute
	if c.minute, ok = minute.NextValue(c.minute); !ok {
		c.minute, c.second = minute.First(), second.First()
		c.hour++
	} else if c.minute > prev {
		c.second = second.First()
	}

	prev = c.hour
	if c.hour, ok = hour.NextValue(c.hour); !ok {
		resetTime(&c)
		c.day++
	} else if c.hour > prev {
		c.minute, c.second = minute.First(), second.First()
	}

	// Day of month, month and year are resolved together since the
	// length of a month depends on both.
	prev = c.day
	c.day, ok = dom.NextValue(c.day)
	for {
		if !ok {
			c.day = dom.First()
			resetTime(&c)
			c.month++
		} else if c.day > prev {
			resetTime(&c)
		}

		prev = c.month
		if c.month, ok = month.NextValue(c.month); !ok {
			c.month, c.day = month.First(), dom.First()
			resetTime(&c)
			c.year++
		} else if c.month > prev {
			c.day = dom.First()
			resetTime(&c)
		}

		prev = c.year
		if c.year, ok = year.NextValue(c.year); !ok {
			return c, false
		}
		if c.year > prev {
			c.month, c.day = month.First(), dom.First()
			resetTime(&c)
		}

		if c.day <= daysInMonth(c.year, time.Month(c.month)) {
			return c, true
		}
		traceLogger().Debug("cron: day of month does not exist, retrying",
			"year", c.year, "month", c.month, "day", c.day)
		ok = false
	}
}

// isoWeekday returns the day of week of t from Monday (1) to Sunday (7).
func isoWeekday(t time.Time) int {
	if wd := t.Weekday(); wd != time.Sunday {
		return int(wd)
	}
	return 7
}

// daysInMonth returns the number of days in a given month of a specific year.
func daysInMonth(year int, month time.Month) int {
	switch month {
	case 4, 6, 9, 11:
		return 30
	case 2:
		if isLeap(year) {
			return 29
		}
		return 28
	default:
		return 31
	}
}

// isLeap returns true if the given year is a leap year.
func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
