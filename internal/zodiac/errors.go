package zodiac

import (
	"errors"
	"fmt"
)

// ErrInvalidPosition indicates a raw reading whose longitude or house is out
// of domain.
var ErrInvalidPosition = errors.New("invalid planetary position")

// PositionError records which body and field failed normalization.
type PositionError struct {
	Body  Planet
	Field string // "longitude" or "house"
	Value float64
	Err   error
}

// Error returns a message naming the body, field, and offending value.
func (e *PositionError) Error() string {
	return fmt.Sprintf("%s: %s %g: %v", e.Body, e.Field, e.Value, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is/As.
func (e *PositionError) Unwrap() error {
	return e.Err
}
