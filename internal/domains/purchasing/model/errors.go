package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrSupplierNotFound is returned when a supplier does not exist
	ErrSupplierNotFound = errors.New("supplier not found")

	// ErrPONotFound is returned when a purchase order does not exist
	ErrPONotFound = errors.New("purchase order not found")

	// ErrItemNotInPO is returned when a receipt names a SKU the order lacks
	ErrItemNotInPO = errors.New("item not in this purchase order")

	// ErrNoLowStock is returned when auto replenishment finds nothing to order
	ErrNoLowStock = errors.New("no low stock items found")
)

// NewPONotFoundError creates a not found error carrying the order id
func NewPONotFoundError(id uuid.UUID) error {
	return fmt.Errorf("%w: id=%s", ErrPONotFound, id)
}

// IsNotFoundError checks if error is a supplier, order or line lookup failure
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrSupplierNotFound) ||
		errors.Is(err, ErrPONotFound) ||
		errors.Is(err, ErrItemNotInPO)
}

// IsEmptyError checks if error is an empty auto-replenish pass
func IsEmptyError(err error) bool {
	return errors.Is(err, ErrNoLowStock)
}
