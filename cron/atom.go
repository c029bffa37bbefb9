package cron

import (
	"maps"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// Atom holds the values accepted by one field of an expression.
//
// Supported syntax:
//   - "?": the field is omitted, only for day of month and day of week.
//   - "*": every value of the field.
//   - "N": a single value.
//   - "A-B": every value from A to B inclusive.
//   - "*/S", "A-B/S": every S-th value of the range.
//   - "N/S": every S-th value starting at N up to the field maximum.
//   - "X,Y,Z": any combination of the above.
//
// An Atom is immutable once parsed.
type Atom struct {
	text    string
	field   Field
	values  []int // sorted and unique, nil when every or omitted is set
	every   bool
	omitted bool
}

// ParseAtom parses the text of a single field.
func ParseAtom(text string, field Field) (*Atom, error) {
	b := field.bounds()
	a := &Atom{text: text, field: field}
	switch text {
	case "?":
		if !b.omittable {
			return nil, fieldError(field, text, "? is not allowed in this field")
		}
		a.omitted = true
		return a, nil
	case "*":
		a.every = true
		return a, nil
	case "":
		return nil, fieldError(field, text, "empty field")
	}

	set := make(map[int]struct{})
	for _, part := range strings.Split(text, ",") {
		if err := parseSubAtom(part, field, set); err != nil {
			return nil, err
		}
	}
	a.values = field.afterParse(slices.Sorted(maps.Keys(set)))
	return a, nil
}

// parseSubAtom adds the values of one comma separated element to set.
func parseSubAtom(part string, field Field, set map[int]struct{}) error {
	b := field.bounds()
	step := 1
	stepped := false
	rangePart := part

	if i := strings.IndexByte(part, '/'); i >= 0 {
		s, err := strconv.Atoi(part[i+1:])
		if err != nil || s <= 0 {
			return fieldError(field, part, "invalid step %q", part[i+1:])
		}
		step, stepped, rangePart = s, true, part[:i]
	}

	var start, stop int
	switch {
	case rangePart == "*":
		start, stop = b.min, b.max
	case strings.Contains(rangePart, "-"):
		bounds := strings.SplitN(rangePart, "-", 2)
		var err1, err2 error
		start, err1 = strconv.Atoi(bounds[0])
		stop, err2 = strconv.Atoi(bounds[1])
		if err1 != nil || err2 != nil || start > stop {
			return fieldError(field, part, "invalid range %q", rangePart)
		}
	default:
		v, err := strconv.Atoi(rangePart)
		if err != nil {
			return fieldError(field, part, "invalid value %q", rangePart)
		}
		start, stop = v, v
		if stepped {
			stop = b.max
		}
	}
	if start < b.lowest || stop > b.max {
		return fieldError(field, part, "%q out of range %d-%d", rangePart, b.lowest, b.max)
	}

	for v := start; v <= stop; v += step {
		set[v] = struct{}{}
	}
	return nil
}

// NextValue returns the smallest accepted value greater than or equal to
// from. The boolean is false when there is no such value.
//
// An omitted atom constrains nothing and accepts every value of its field.
func (a *Atom) NextValue(from int) (int, bool) {
	if a.every || a.omitted {
		b := a.field.bounds()
		if from > b.max {
			return 0, false
		}
		return max(from, b.min), true
	}
	i := sort.SearchInts(a.values, from)
	if i == len(a.values) {
		return 0, false
	}
	return a.values[i], true
}

// Contains reports whether v is an accepted value.
func (a *Atom) Contains(v int) bool {
	next, ok := a.NextValue(v)
	return ok && next == v
}

// First returns the smallest accepted value.
func (a *Atom) First() int {
	if a.every || a.omitted {
		return a.field.bounds().min
	}
	return a.values[0]
}

// Last returns the largest accepted value.
func (a *Atom) Last() int {
	if a.every || a.omitted {
		return a.field.bounds().max
	}
	return a.values[len(a.values)-1]
}

// Field returns the field the atom was parsed for.
func (a *Atom) Field() Field { return a.field }

// Omitted reports whether the atom was written as "?".
func (a *Atom) Omitted() bool { return a.omitted }

// String returns the text the atom was parsed from.
func (a *Atom) String() string { return a.text }
