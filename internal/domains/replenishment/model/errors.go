package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrTaskNotFound is returned when a replenishment task does not exist
	ErrTaskNotFound = errors.New("replenishment task not found")

	// ErrAlreadyCompleted is returned on a second completion of the same task
	ErrAlreadyCompleted = errors.New("task already completed")

	// ErrInvalidRange is returned when min_qty is not below max_qty
	ErrInvalidRange = errors.New("min_qty must be below max_qty")
)

// NewTaskNotFoundError creates a not found error carrying the task id
func NewTaskNotFoundError(id uuid.UUID) error {
	return fmt.Errorf("%w: id=%s", ErrTaskNotFound, id)
}

// IsNotFoundError checks if error is a task lookup failure
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrTaskNotFound)
}

// IsAlreadyProcessedError checks if error is a duplicate completion
func IsAlreadyProcessedError(err error) bool {
	return errors.Is(err, ErrAlreadyCompleted)
}

// IsValidationError checks if error is a configuration validation failure
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRange)
}
