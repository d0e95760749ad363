package gomap

import (
	"errors"
	"fmt"
)

var ErrNoValue = errors.New("no value produced")

// UnmarshalError represents a failed top-level mapping.
type UnmarshalError struct {
	FieldPath string // node path, e.g. "$.person.address"
	Message   string
	Err       error
}

func (e *UnmarshalError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("unmarshal error at %s: %s", e.FieldPath, e.Message)
	}
	return fmt.Sprintf("unmarshal error: %s", e.Message)
}

func (e *UnmarshalError) Unwrap() error {
	return e.Err
}
