package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrInventoryNotFound is returned when a stock row does not exist
	ErrInventoryNotFound = errors.New("inventory not found")

	// ErrNoStock is returned when a pick or move asks for more than the row holds
	ErrNoStock = errors.New("insufficient stock")

	// ErrVersionConflict is returned when the optimistic path exhausts its retries
	ErrVersionConflict = errors.New("version conflict: inventory was modified by another transaction")

	// ErrInvalidStatus is returned for an unknown stock status
	ErrInvalidStatus = errors.New("invalid stock status, must be one of: AVAILABLE, QUARANTINE, DAMAGED")

	// ErrInvalidQuantity is returned when a quantity is not positive
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrSerialMismatch is returned when the serial list does not match the quantity
	// or a serial is already registered
	ErrSerialMismatch = errors.New("serial numbers do not match quantity or already exist")

	// ErrInvalidSerial is returned when a named serial is not IN_STOCK where expected
	ErrInvalidSerial = errors.New("serial not in stock at this location")

	// ErrSameLocation is returned when a move names the same source and destination
	ErrSameLocation = errors.New("source and destination must differ")
)

// NewInventoryNotFoundError creates a not found error carrying the row id
func NewInventoryNotFoundError(id uuid.UUID) error {
	return fmt.Errorf("%w: id=%s", ErrInventoryNotFound, id)
}

// NewNoStockError creates an error with the requested and held quantities
func NewNoStockError(requested, onHand int) error {
	return fmt.Errorf("%w: requested=%d, on_hand=%d", ErrNoStock, requested, onHand)
}

// IsNotFoundError checks if error is an inventory not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrInventoryNotFound)
}

// IsNoStockError checks if error is a stock shortage
func IsNoStockError(err error) bool {
	return errors.Is(err, ErrNoStock)
}

// IsConflictError checks if error is an optimistic lock conflict
func IsConflictError(err error) bool {
	return errors.Is(err, ErrVersionConflict)
}

// IsSerialError checks if error is serial related
func IsSerialError(err error) bool {
	return errors.Is(err, ErrSerialMismatch) || errors.Is(err, ErrInvalidSerial)
}

// IsValidationError checks if error is a request validation failure
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrSameLocation)
}
