package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSettings is matched by every settings validation failure.
	ErrInvalidSettings = errors.New("invalid settings")
	// ErrInvalidDays is returned when a run is asked for fewer than one day.
	ErrInvalidDays = errors.New("days must be at least 1")
)

// InvalidSettingsError names the offending settings field.
type InvalidSettingsError struct {
	Field  string
	Reason string
}

func (e *InvalidSettingsError) Error() string {
	return fmt.Sprintf("invalid settings: %s %s", e.Field, e.Reason)
}

func (e *InvalidSettingsError) Unwrap() error { return ErrInvalidSettings }

func invalid(field, reason string) error {
	return &InvalidSettingsError{Field: field, Reason: reason}
}
