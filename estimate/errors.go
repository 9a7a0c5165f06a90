package estimate

import (
	"errors"
	"fmt"
)

// ErrInvalidNumericInput matches any InvalidNumericInputError via errors.Is.
var ErrInvalidNumericInput = errors.New("invalid numeric input")

// InvalidNumericInputError reports a numeric field holding a value that
// cannot be read as a decimal, or one outside the accepted range.
type InvalidNumericInputError struct {
	ItemID string
	Field  string
	Value  any
	// Reason is set when the value parsed but was rejected.
	Reason string
}

func (e *InvalidNumericInputError) Error() string {
	msg := fmt.Sprintf("invalid numeric input: field %q has value %v", e.Field, e.Value)
	if e.ItemID != "" {
		msg = fmt.Sprintf("invalid numeric input: item %s field %q has value %v", e.ItemID, e.Field, e.Value)
	}
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg
}

func (e *InvalidNumericInputError) Is(target error) bool {
	return target == ErrInvalidNumericInput
}
