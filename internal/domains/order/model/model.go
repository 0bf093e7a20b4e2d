package model

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses. An order walks the pipeline left to right; short picks
// may send it back to PENDING for re-allocation.
const (
	StatusPending   = "PENDING"
	StatusAllocated = "ALLOCATED"
	StatusPicked    = "PICKED"
	StatusPacked    = "PACKED"
	StatusShipped   = "SHIPPED"
)

// validTransitions is the forward pipeline plus the short-pick revert.
var validTransitions = map[string][]string{
	StatusPending:   {StatusAllocated},
	StatusAllocated: {StatusPicked, StatusPending},
	StatusPicked:    {StatusPacked, StatusShipped, StatusPending},
	StatusPacked:    {StatusShipped, StatusPending},
	StatusShipped:   {},
}

// CanTransitionTo reports whether an order may move from one status to another.
func CanTransitionTo(from, to string) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsValidStatus reports whether s is a known order status.
func IsValidStatus(s string) bool {
	_, ok := validTransitions[s]
	return ok
}

// EnsureAllocatable rejects allocation once the order has left PENDING, so
// re-running allocate cannot double-reserve stock.
func EnsureAllocatable(status string) error {
	if status == StatusPending {
		return nil
	}
	return NewInvalidStateError(status, "allocate")
}

// EnsurePickable accepts pick scans only while the order is in the picking
// phase. PICKED stays pickable for multi-line orders.
func EnsurePickable(status string) error {
	if status == StatusPicked || CanTransitionTo(status, StatusPicked) {
		return nil
	}
	return NewInvalidStateError(status, "pick")
}

// EnsureShortPickable allows a short pick only while the order can still
// revert to PENDING. SHIPPED is terminal.
func EnsureShortPickable(status string) error {
	if CanTransitionTo(status, StatusPending) {
		return nil
	}
	return NewInvalidStateError(status, "short_pick")
}

// CapShortage limits a reported shortage to what was actually reserved for
// the line. Over-reported shortages release only the real reservation.
func CapShortage(qtyAllocated, qtyMissing int) int {
	return min(qtyAllocated, qtyMissing)
}

// Order is an outbound customer order. Customer fields are snapshots taken
// at creation so shipping paperwork survives catalog edits.
type Order struct {
	ID          uuid.UUID `json:"id" db:"id"`
	OrderNumber string    `json:"order_number" db:"order_number"`
	Status      string    `json:"status" db:"status"`

	// Higher priority orders are released into waves first.
	Priority int  `json:"priority" db:"priority"`
	IsOnHold bool `json:"is_on_hold" db:"is_on_hold"`

	// BatchID links the order into a cluster-pick batch.
	BatchID *uuid.UUID `json:"batch_id,omitempty" db:"batch_id"`

	CustomerName    string `json:"customer_name" db:"customer_name"`
	CustomerAddress string `json:"customer_address" db:"customer_address"`
	CustomerCity    string `json:"customer_city" db:"customer_city"`
	CustomerState   string `json:"customer_state" db:"customer_state"`
	CustomerZip     string `json:"customer_zip" db:"customer_zip"`

	TrackingNumber *string `json:"tracking_number,omitempty" db:"tracking_number"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	Lines []OrderLine `json:"lines,omitempty"`
}

// OrderLine tracks one SKU through the pick lifecycle. SKU is joined from
// the catalog for display and journal snapshots.
type OrderLine struct {
	ID      uuid.UUID `json:"id" db:"id"`
	OrderID uuid.UUID `json:"order_id" db:"order_id"`
	ItemID  uuid.UUID `json:"item_id" db:"item_id"`
	SKU     string    `json:"sku" db:"sku"`

	QtyOrdered   int `json:"qty_ordered" db:"qty_ordered"`
	QtyAllocated int `json:"qty_allocated" db:"qty_allocated"`
	QtyPicked    int `json:"qty_picked" db:"qty_picked"`
}

// Remaining is the quantity still to pick against this line's reservation.
func (l OrderLine) Remaining() int {
	return l.QtyAllocated - l.QtyPicked
}

// PickBatch groups ALLOCATED orders for a single cluster-pick walk.
type PickBatch struct {
	ID          uuid.UUID `json:"id" db:"id"`
	BatchNumber string    `json:"batch_number" db:"batch_number"`
	Picker      string    `json:"picker" db:"picker"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
