package minefield

import (
	"errors"
	"fmt"
)

// ErrGridComputed is returned when cell data is written to a grid whose
// adjacency counts have already been computed.
var ErrGridComputed = errors.New("grid hints already computed")

// FormatError describes input that cannot be turned into a field: malformed
// lines, characters outside the pattern alphabet, or patterns whose length
// does not match the declared dimensions.
type FormatError struct {
	// Line is the 1-based input line number, or 0 when not known.
	Line int
	Msg  string
	// Err is an optional underlying cause.
	Err error
}

func (e *FormatError) Error() string {
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Line > 0 {
		return fmt.Sprintf("invalid input on line %d: %s", e.Line, msg)
	}
	return "invalid input: " + msg
}

func (e *FormatError) Unwrap() error { return e.Err }

// Formatf returns a FormatError with a formatted message.
func Formatf(format string, args ...interface{}) *FormatError {
	return &FormatError{Msg: fmt.Sprintf(format, args...)}
}

// ClosedFieldError is returned when row data is offered to a field that has
// already been finalized.
type ClosedFieldError struct {
	ID string
}

func (e *ClosedFieldError) Error() string {
	return fmt.Sprintf("mine field #%s has been closed: no additional rows may be added", e.ID)
}

// IsInputError reports whether err is a FormatError or a ClosedFieldError,
// i.e. a problem with the data rather than with the environment.
func IsInputError(err error) bool {
	var fe *FormatError
	var ce *ClosedFieldError
	return errors.As(err, &fe) || errors.As(err, &ce)
}
