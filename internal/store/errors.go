package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an operation would violate a relational rule,
// such as deleting a cabinet that item locations still reference.
var ErrConflict = errors.New("conflict")

// ValidationError reports invalid input at the storage boundary. It is
// distinct from ErrNotFound so routes can map it to a 400 instead of a 404.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// invalidf builds a ValidationError with a formatted message.
func invalidf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
