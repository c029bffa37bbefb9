package cron

import "fmt"

// Field identifies one of the seven positional fields of an expression.
type Field int

const (
	Second Field = iota
	Minute
	Hour
	DayOfMonth
	Month
	DayOfWeek
	Year
)

// fieldCount is the number of fields of a fully expanded expression.
const fieldCount = 7

// MaxYear is the largest year a schedule can resolve to. It bounds the
// next-run search for schedules that never fire again.
const MaxYear = 9999

type fieldBounds struct {
	name      string
	min, max  int
	lowest    int // smallest literal accepted, below min only for DayOfWeek
	omittable bool
}

var fields = [fieldCount]fieldBounds{
	Second:     {name: "second", min: 0, max: 59, lowest: 0},
	Minute:     {name: "minute", min: 0, max: 59, lowest: 0},
	Hour:       {name: "hour", min: 0, max: 23, lowest: 0},
	DayOfMonth: {name: "day of month", min: 1, max: 31, lowest: 1, omittable: true},
	Month:      {name: "month", min: 1, max: 12, lowest: 1},
	DayOfWeek:  {name: "day of week", min: 1, max: 7, lowest: 0, omittable: true},
	Year:       {name: "year", min: 0, max: MaxYear, lowest: 0},
}

func (f Field) bounds() fieldBounds {
	if f < Second || f > Year {
		panic(fmt.Sprintf("cron: unknown field %d", int(f)))
	}
	return fields[f]
}

// String returns the human readable name of the field.
func (f Field) String() string {
	if f < Second || f > Year {
		return fmt.Sprintf("field(%d)", int(f))
	}
	return fields[f].name
}

// Min returns the smallest value the field can take.
func (f Field) Min() int { return f.bounds().min }

// Max returns the largest value the field can take.
func (f Field) Max() int { return f.bounds().max }

// CanBeOmitted reports whether the field accepts "?".
func (f Field) CanBeOmitted() bool { return f.bounds().omittable }

// afterParse applies the field specific rewrite of a parsed value set.
// The input is sorted and holds unique values; so is the output.
func (f Field) afterParse(values []int) []int {
	switch f {
	case DayOfWeek:
		// 0 and 7 are both Sunday, keep 7.
		if len(values) > 0 && values[0] == 0 {
			values = values[1:]
			if len(values) == 0 || values[len(values)-1] != 7 {
				values = append(values, 7)
			}
		}
	}
	return values
}
