package cron

import (
	"errors"
	"fmt"
)

// ErrMalformedExpression is matched by every error returned while parsing
// an expression.
var ErrMalformedExpression = errors.New("malformed cron expression")

// ExpressionError describes why an expression could not be parsed.
type ExpressionError struct {
	Expression string
	// Field is only meaningful when HasField is true.
	Field    Field
	HasField bool
	Reason   string
}

func (e *ExpressionError) Error() string {
	if e.HasField {
		return fmt.Sprintf("cron: %s: %s in %q", e.Field, e.Reason, e.Expression)
	}
	return fmt.Sprintf("cron: %s: %q", e.Reason, e.Expression)
}

func (e *ExpressionError) Unwrap() error {
	return ErrMalformedExpression
}

func expressionError(expr, format string, args ...any) error {
	return &ExpressionError{
		Expression: expr,
		Reason:     fmt.Sprintf(format, args...),
	}
}

func fieldError(field Field, text, format string, args ...any) error {
	return &ExpressionError{
		Expression: text,
		Field:      field,
		HasField:   true,
		Reason:     fmt.Sprintf(format, args...),
	}
}
