package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrSessionNotFound is returned when a count session does not exist
	ErrSessionNotFound = errors.New("cycle count session not found")

	// ErrTaskNotFound is returned when a count task does not exist
	ErrTaskNotFound = errors.New("cycle count task not found")

	// ErrTaskAlreadyCounted is returned on a second submit for the same task
	ErrTaskAlreadyCounted = errors.New("task already completed")

	// ErrNothingToCount is returned when no stocked bin matches the request
	ErrNothingToCount = errors.New("no inventory found to count")
)

// NewTaskNotFoundError creates a not found error carrying the task id
func NewTaskNotFoundError(id uuid.UUID) error {
	return fmt.Errorf("%w: id=%s", ErrTaskNotFound, id)
}

// IsNotFoundError checks if error is a session or task not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrSessionNotFound) || errors.Is(err, ErrTaskNotFound)
}

// IsAlreadyProcessedError checks if error is a duplicate submit
func IsAlreadyProcessedError(err error) bool {
	return errors.Is(err, ErrTaskAlreadyCounted)
}

// IsEmptyError checks if error is an empty candidate set
func IsEmptyError(err error) bool {
	return errors.Is(err, ErrNothingToCount)
}
