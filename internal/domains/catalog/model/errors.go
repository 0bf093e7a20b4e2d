package model

import (
	"errors"
	"fmt"
)

var (
	// ErrItemNotFound is returned when a SKU is not registered
	ErrItemNotFound = errors.New("item not found")

	// ErrLocationNotFound is returned when a location code is not registered
	ErrLocationNotFound = errors.New("location not found")

	// ErrDuplicateSKU is returned when creating an item with an existing SKU
	ErrDuplicateSKU = errors.New("sku already exists")

	// ErrDuplicateLocation is returned when creating a location with an existing code
	ErrDuplicateLocation = errors.New("location code already exists")

	// ErrInvalidLocationType is returned for an unknown location type
	ErrInvalidLocationType = errors.New("invalid location type, must be one of: PICK, RESERVE, DOCK, STAGING")
)

// NewItemNotFoundError creates a not found error carrying the SKU
func NewItemNotFoundError(sku string) error {
	return fmt.Errorf("%w: sku=%s", ErrItemNotFound, sku)
}

// NewLocationNotFoundError creates a not found error carrying the code
func NewLocationNotFoundError(code string) error {
	return fmt.Errorf("%w: code=%s", ErrLocationNotFound, code)
}

// IsNotFoundError checks if error is a catalog not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrItemNotFound) || errors.Is(err, ErrLocationNotFound)
}

// IsDuplicateError checks if error is a uniqueness violation
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicateSKU) || errors.Is(err, ErrDuplicateLocation)
}
