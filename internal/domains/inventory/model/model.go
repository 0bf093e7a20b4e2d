package model

import (
	"time"

	"github.com/google/uuid"
)

// Stock statuses. Only AVAILABLE rows participate in allocation.
const (
	StatusAvailable  = "AVAILABLE"
	StatusQuarantine = "QUARANTINE"
	StatusDamaged    = "DAMAGED"
)

var validStatuses = map[string]bool{
	StatusAvailable:  true,
	StatusQuarantine: true,
	StatusDamaged:    true,
}

// IsValidStatus reports whether s is a known stock status.
func IsValidStatus(s string) bool {
	return validStatuses[s]
}

// Inventory is one stock row, keyed by (item, location_code, lot_number,
// status). lot_number may be null. The version column is the optimistic
// concurrency token and strictly increases on every update.
type Inventory struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	ItemID       uuid.UUID  `db:"item_id" json:"item_id"`
	SKU          string     `db:"sku" json:"sku"`
	LocationCode string     `db:"location_code" json:"location_code"`
	LotNumber    *string    `db:"lot_number" json:"lot_number,omitempty"`
	Status       string     `db:"status" json:"status"`
	ExpiryDate   *time.Time `db:"expiry_date" json:"expiry_date,omitempty"`

	Quantity         int `db:"quantity" json:"quantity"`
	ReservedQuantity int `db:"reserved_quantity" json:"reserved_quantity"`

	Version   int       `db:"version" json:"version"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// AvailableQuantity is what allocation may still reserve on this row.
func (i *Inventory) AvailableQuantity() int {
	return i.Quantity - i.ReservedQuantity
}

// Serial number lifecycle.
const (
	SerialInStock  = "IN_STOCK"
	SerialPacked   = "PACKED"
	SerialShipped  = "SHIPPED"
	SerialReturned = "RETURNED"
)

// SerialNumber tracks a single physical unit of a serialized item.
type SerialNumber struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Serial       string     `db:"serial" json:"serial"`
	ItemID       uuid.UUID  `db:"item_id" json:"item_id"`
	LocationCode string     `db:"location_code" json:"location_code"`
	InventoryID  uuid.UUID  `db:"inventory_id" json:"inventory_id"`
	OrderLineID  *uuid.UUID `db:"order_line_id" json:"order_line_id,omitempty"`
	Status       string     `db:"status" json:"status"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// Journal actions.
const (
	ActionReceive = "RECEIVE"
	ActionPick    = "PICK"
	ActionAdjust  = "ADJUST"
	ActionPack    = "PACK"
	ActionShip    = "SHIP"
	ActionMove    = "MOVE"
)

// JournalEntry is one append-only audit record. For MOVE the location
// snapshot takes the literal form "src > dst".
type JournalEntry struct {
	ID               uuid.UUID `db:"id" json:"id"`
	Timestamp        time.Time `db:"timestamp" json:"timestamp"`
	Action           string    `db:"action" json:"action"`
	SKUSnapshot      string    `db:"sku_snapshot" json:"sku_snapshot"`
	LocationSnapshot string    `db:"location_snapshot" json:"location_snapshot"`
	QuantityChange   int       `db:"quantity_change" json:"quantity_change"`
	LotSnapshot      *string   `db:"lot_snapshot" json:"lot_snapshot,omitempty"`
	Actor            *string   `db:"actor" json:"actor,omitempty"`
}

// ReceiveRequest books stock in at a location.
type ReceiveRequest struct {
	SKU          string     `json:"sku" binding:"required"`
	LocationCode string     `json:"location_code" binding:"required"`
	Quantity     int        `json:"quantity" binding:"required,gt=0"`
	LotNumber    *string    `json:"lot_number"`
	ExpiryDate   *time.Time `json:"expiry_date"`
	Status       string     `json:"status"`
	Serials      []string   `json:"serials"`
}

// PickRequest is the blind pick against a known inventory row. It runs on
// the optimistic path, not under a held row lock.
type PickRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// MoveRequest relocates stock between two locations.
type MoveRequest struct {
	SKU      string `json:"sku" binding:"required"`
	Source   string `json:"source" binding:"required"`
	Dest     string `json:"dest" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

// AdjustRequest overwrites a row's quantity after a physical recount.
type AdjustRequest struct {
	NewQuantity int    `json:"new_quantity" binding:"min=0"`
	Reason      string `json:"reason"`
}

// AssignLotRequest re-lots a row, merging into an existing row when the
// target lot already exists at the same location and status.
type AssignLotRequest struct {
	LotNumber  string     `json:"lot_number" binding:"required"`
	ExpiryDate *time.Time `json:"expiry_date"`
}

// ListFilter narrows inventory listings.
type ListFilter struct {
	SKU          string
	LocationCode string
	Status       string
	Offset       int
	Limit        int
}

// JournalFilter narrows journal listings.
type JournalFilter struct {
	SKU    string
	Action string
	Since  *time.Time
	Offset int
	Limit  int
}
