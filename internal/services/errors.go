package services

import (
	"errors"
	"fmt"

	"github.com/Dias221467/Habit_Tracker/internal/repository"
)

var (
	ErrNotFound           = repository.ErrNotFound
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrAlreadyCheckedIn   = fmt.Errorf("%w: habit already checked in for this day", ErrConflict)
	ErrInsufficientPoints = fmt.Errorf("%w: not enough points", ErrConflict)
	ErrEmailInUse         = fmt.Errorf("%w: email already in use", ErrConflict)
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
