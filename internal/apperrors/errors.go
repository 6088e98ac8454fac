package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// UnsupportedFormatError is returned by the statement parser when none of the
// known bank statement formats can be detected in the input.
type UnsupportedFormatError struct {
	Hint string // first bytes or filename, for diagnostics
}

func (e *UnsupportedFormatError) Error() string {
	if e.Hint == "" {
		return "unsupported bank statement format"
	}
	return fmt.Sprintf("unsupported bank statement format: %s", e.Hint)
}

// IsUnsupportedFormat reports whether err wraps an UnsupportedFormatError.
func IsUnsupportedFormat(err error) bool {
	var ufe *UnsupportedFormatError
	return errors.As(err, &ufe)
}
