package scan

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedField marks a recognized field whose value could not be converted.
	ErrMalformedField = errors.New("malformed field")
	// ErrNoFields is returned for a non-empty line that holds no key=value pair.
	ErrNoFields = errors.New("line has no key=value fields")
	// ErrAngleOutOfRange is returned when a point key falls outside [0, 180].
	ErrAngleOutOfRange = errors.New("angle key out of range")
)

// FieldError describes one dropped field of a sample line.
type FieldError struct {
	Key   string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s=%q: %v", e.Key, e.Value, e.Err)
}

func (e *FieldError) Unwrap() []error {
	return []error{ErrMalformedField, e.Err}
}
