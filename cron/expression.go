package cron

import (
	"fmt"
	"regexp"
	"strings"
)

// shorthands maps the "@" strings to their six field expansion.
var shorthands = map[string]string{
	"@yearly":   "0 0 0 1 1 *",
	"@annually": "0 0 0 1 1 *",
	"@monthly":  "0 0 0 1 * *",
	"@weekly":   "0 0 0 * * 0",
	"@daily":    "0 0 0 * * *",
	"@midnight": "0 0 0 * * *",
	"@hourly":   "0 0 * * * *",
	"@minutely": "0 * * * * *",
}

var (
	monthNames = strings.NewReplacer(caseless(
		"jan", "1", "feb", "2", "mar", "3", "apr", "4", "may", "5", "jun", "6",
		"jul", "7", "aug", "8", "sep", "9", "oct", "10", "nov", "11", "dec", "12",
	)...)
	weekdayNames = strings.NewReplacer(caseless(
		"mon", "1", "tue", "2", "wed", "3", "thu", "4", "fri", "5", "sat", "6", "sun", "7",
	)...)
)

// Characters allowed per field. L, W and # pass the filter but no atom
// parses them.
var (
	numericChars    = regexp.MustCompile(`[0-9\-*,/]`)
	dayOfMonthChars = regexp.MustCompile(`[0-9\-*,/?LW]`)
	dayOfWeekChars  = regexp.MustCompile(`[0-9\-*,/?L#]`)
)

var whitespace = regexp.MustCompile(`\s+`)

// caseless expands old/new pairs so every upper/lower case spelling of the
// three letter names is replaced.
func caseless(pairs ...string) []string {
	var out []string
	for i := 0; i < len(pairs); i += 2 {
		name, repl := pairs[i], pairs[i+1]
		for mask := 0; mask < 1<<len(name); mask++ {
			b := []byte(name)
			for j := range b {
				if mask&(1<<j) != 0 {
					b[j] -= 'a' - 'A'
				}
			}
			out = append(out, string(b), repl)
		}
	}
	return out
}

// splitExpression validates expr and returns its seven raw fields, with the
// shorthand strings and month and weekday names already substituted.
func splitExpression(expr string) ([fieldCount]string, error) {
	var out [fieldCount]string
	if expr == "" {
		return out, expressionError(expr, "expression is empty")
	}
	if strings.TrimSpace(expr) != expr {
		return out, expressionError(expr, "expression has leading or trailing whitespace")
	}
	if expanded, ok := shorthands[expr]; ok {
		expr = expanded
	}

	parts := whitespace.Split(expr, -1)
	if len(parts) == fieldCount-1 {
		parts = append(parts, "*")
	}
	if len(parts) != fieldCount {
		return out, expressionError(expr, "expected 6 or 7 fields, got %d", len(parts))
	}

	for i, part := range parts {
		field := Field(i)
		var allowed *regexp.Regexp
		switch field {
		case Second, Minute, Hour, Year:
			allowed = numericChars
		case DayOfMonth:
			allowed = dayOfMonthChars
		case Month:
			part = monthNames.Replace(part)
			allowed = numericChars
		case DayOfWeek:
			part = weekdayNames.Replace(part)
			allowed = dayOfWeekChars
		default:
			panic(fmt.Sprintf("cron: unexpected field index %d", i))
		}
		if rest := allowed.ReplaceAllString(part, ""); rest != "" {
			return out, fieldError(field, expr, "unauthorized characters %q", rest)
		}
		out[i] = part
	}
	return out, nil
}
