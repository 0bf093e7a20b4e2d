package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Attributes holds free-form item metadata (dimensions, hazmat class, ...)
// stored as JSONB.
type Attributes map[string]interface{}

// Value implements driver.Valuer for JSONB storage.
func (a Attributes) Value() (driver.Value, error) {
	if a == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner for JSONB retrieval.
func (a *Attributes) Scan(value interface{}) error {
	if value == nil {
		*a = Attributes{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for Attributes: %T", value)
	}

	return json.Unmarshal(data, a)
}

// ABC velocity classes. A is the fastest-moving tier.
const (
	ABCClassA = "A"
	ABCClassB = "B"
	ABCClassC = "C"
)

// Item is a stock-keeping unit. SKU is the external identifier used on
// every operation; the UUID is internal.
type Item struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	SKU          string     `db:"sku" json:"sku"`
	Name         string     `db:"name" json:"name"`
	Attributes   Attributes `db:"attributes" json:"attributes"`
	IsSerialized bool       `db:"is_serialized" json:"is_serialized"`
	ABCClass     string     `db:"abc_class" json:"abc_class"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// Location types within the warehouse.
const (
	LocationTypePick    = "PICK"
	LocationTypeReserve = "RESERVE"
	LocationTypeDock    = "DOCK"
	LocationTypeStaging = "STAGING"
)

var validLocationTypes = map[string]bool{
	LocationTypePick:    true,
	LocationTypeReserve: true,
	LocationTypeDock:    true,
	LocationTypeStaging: true,
}

// IsValidLocationType reports whether t is a known location type.
func IsValidLocationType(t string) bool {
	return validLocationTypes[t]
}

// Location is a physical slot in the warehouse. X and Y are walk-path grid
// coordinates used to sequence pick routes.
type Location struct {
	ID           uuid.UUID `db:"id" json:"id"`
	LocationCode string    `db:"location_code" json:"location_code"`
	LocationType string    `db:"location_type" json:"location_type"`
	Zone         string    `db:"zone" json:"zone"`
	X            int       `db:"x" json:"x"`
	Y            int       `db:"y" json:"y"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// CreateItemRequest is the payload for registering a SKU.
type CreateItemRequest struct {
	SKU          string     `json:"sku" binding:"required,max=50"`
	Name         string     `json:"name" binding:"required,max=200"`
	Attributes   Attributes `json:"attributes"`
	IsSerialized bool       `json:"is_serialized"`
}

// CreateLocationRequest is the payload for registering a slot.
type CreateLocationRequest struct {
	LocationCode string `json:"location_code" binding:"required,max=20"`
	LocationType string `json:"location_type" binding:"required"`
	Zone         string `json:"zone" binding:"required,max=20"`
	X            int    `json:"x"`
	Y            int    `json:"y"`
}
