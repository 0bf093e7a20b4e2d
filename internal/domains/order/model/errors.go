package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrOrderNotFound is returned when an order does not exist
	ErrOrderNotFound = errors.New("order not found")

	// ErrBatchNotFound is returned when a pick batch does not exist
	ErrBatchNotFound = errors.New("batch not found")

	// ErrLineNotFound is returned when the SKU is not on the order
	ErrLineNotFound = errors.New("item not in this order")

	// ErrInvalidState is returned when the order status forbids the operation
	ErrInvalidState = errors.New("order status does not allow this operation")

	// ErrOverPick is returned when a pick would exceed the line's allocation
	ErrOverPick = errors.New("cannot pick more than allocated")

	// ErrAlreadyBatched is returned when an order is not ALLOCATED or already
	// belongs to a batch
	ErrAlreadyBatched = errors.New("order is not ALLOCATED or already in a batch")

	// ErrEmptyWave is returned when no order qualifies for the wave
	ErrEmptyWave = errors.New("no eligible ALLOCATED orders for this wave")

	// ErrSerialRequired is returned when a serialized item is picked without a scan
	ErrSerialRequired = errors.New("serial number scan required for this item")
)

// NewOrderNotFoundError creates a not found error carrying the order id
func NewOrderNotFoundError(id uuid.UUID) error {
	return fmt.Errorf("%w: id=%s", ErrOrderNotFound, id)
}

// NewInvalidStateError reports the status that blocked the operation
func NewInvalidStateError(status, op string) error {
	return fmt.Errorf("%w: order is %s, cannot %s", ErrInvalidState, status, op)
}

// IsNotFoundError checks if error is an order or batch not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrBatchNotFound) ||
		errors.Is(err, ErrLineNotFound)
}

// IsInvalidStateError checks if error is a status guard failure
func IsInvalidStateError(err error) bool {
	return errors.Is(err, ErrInvalidState) || errors.Is(err, ErrAlreadyBatched)
}

// IsOverPickError checks if error is an over-pick rejection
func IsOverPickError(err error) bool {
	return errors.Is(err, ErrOverPick)
}

// IsValidationError checks if error is a request validation failure
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyWave) || errors.Is(err, ErrSerialRequired)
}
