package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrRMANotFound is returned when a return authorization does not exist
	ErrRMANotFound = errors.New("RMA not found")

	// ErrAlreadyProcessed is returned on a second restock of the same RMA
	ErrAlreadyProcessed = errors.New("RMA already processed")
)

// NewRMANotFoundError creates a not found error carrying the RMA id
func NewRMANotFoundError(id uuid.UUID) error {
	return fmt.Errorf("%w: id=%s", ErrRMANotFound, id)
}

// IsNotFoundError checks if error is an RMA lookup failure
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrRMANotFound)
}

// IsAlreadyProcessedError checks if error is a duplicate restock
func IsAlreadyProcessedError(err error) bool {
	return errors.Is(err, ErrAlreadyProcessed)
}
