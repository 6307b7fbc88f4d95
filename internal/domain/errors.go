package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed ids, missing or invalid fields and out-of-range values.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthenticated is returned when no caller identity is present.
	ErrUnauthenticated = errors.New("unauthorized access")
	// ErrForbidden is returned when the caller lacks ownership or the required role.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned when a well-formed id matches no record.
	ErrNotFound = errors.New("not found")

	// ErrWorkoutNotFound is returned when a workout cannot be located.
	ErrWorkoutNotFound = fmt.Errorf("workout %w", ErrNotFound)
	// ErrConsultationNotFound is returned when a consultation cannot be located.
	ErrConsultationNotFound = fmt.Errorf("consultation %w", ErrNotFound)
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func forbidden(reason string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, reason)
}
