package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Purchase order statuses. Status is derived from receipt progress, never
// set directly.
const (
	StatusDraft    = "DRAFT"
	StatusOrdered  = "ORDERED"
	StatusReceived = "RECEIVED"
)

// Supplier is a vendor purchase orders are raised against.
type Supplier struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	ContactEmail string    `json:"contact_email" db:"contact_email"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// POLine is one SKU on a purchase order. Lines live as a JSONB document on
// the order row; receipts mutate Received in place.
type POLine struct {
	SKU      string `json:"sku"`
	Qty      int    `json:"qty"`
	Received int    `json:"received"`
}

// POLines is the JSONB lines column.
type POLines []POLine

// Value implements driver.Valuer for JSONB
func (l POLines) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal(POLines{})
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB
func (l *POLines) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("invalid purchase order lines format")
	}
	return json.Unmarshal(bytes, l)
}

// TotalOrdered sums the ordered quantity across lines.
func (l POLines) TotalOrdered() int {
	total := 0
	for _, line := range l {
		total += line.Qty
	}
	return total
}

// TotalReceived sums the received quantity across lines.
func (l POLines) TotalReceived() int {
	total := 0
	for _, line := range l {
		total += line.Received
	}
	return total
}

// DeriveStatus computes the order status from receipt progress. Over-receipt
// counts toward completion; a fully received order stays RECEIVED.
func (l POLines) DeriveStatus(current string) string {
	received := l.TotalReceived()
	switch {
	case received >= l.TotalOrdered():
		return StatusReceived
	case received > 0:
		return StatusOrdered
	default:
		return current
	}
}

// PurchaseOrder is an inbound replenishment order.
type PurchaseOrder struct {
	ID           uuid.UUID `json:"id" db:"id"`
	SupplierID   uuid.UUID `json:"supplier_id" db:"supplier_id"`
	SupplierName string    `json:"supplier_name" db:"supplier_name"`
	PONumber     string    `json:"po_number" db:"po_number"`
	Status       string    `json:"status" db:"status"`
	Lines        POLines   `json:"lines" db:"lines"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// CreateSupplierRequest registers a vendor.
type CreateSupplierRequest struct {
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
}

func (r CreateSupplierRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.ContactEmail, validation.Required, is.Email),
	)
}

// CreatePOLine is one requested SKU on a new purchase order.
type CreatePOLine struct {
	SKU string `json:"sku"`
	Qty int    `json:"qty"`
}

func (l CreatePOLine) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.SKU, validation.Required),
		validation.Field(&l.Qty, validation.Required, validation.Min(1)),
	)
}

// CreatePORequest raises a DRAFT purchase order.
type CreatePORequest struct {
	SupplierID uuid.UUID      `json:"supplier_id"`
	Lines      []CreatePOLine `json:"lines"`
}

func (r CreatePORequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SupplierID, validation.Required),
		validation.Field(&r.Lines, validation.Required, validation.Length(1, 0)),
	)
}

// ReceivePOItemRequest books a delivery against one PO line.
type ReceivePOItemRequest struct {
	SKU          string     `json:"sku"`
	LocationCode string     `json:"location_code"`
	Quantity     int        `json:"quantity"`
	LotNumber    *string    `json:"lot_number,omitempty"`
	ExpiryDate   *time.Time `json:"expiry_date,omitempty"`
}

func (r ReceivePOItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SKU, validation.Required),
		validation.Field(&r.LocationCode, validation.Required),
		validation.Field(&r.Quantity, validation.Required, validation.Min(1)),
	)
}

// ReceivePOItemResult reports per-line and whole-order progress.
type ReceivePOItemResult struct {
	POStatus     string `json:"po_status"`
	LineProgress string `json:"line_progress"`
}

// AutoReplenishResult names the purchase order raised for low stock.
type AutoReplenishResult struct {
	PONumber string    `json:"po_number"`
	POID     uuid.UUID `json:"po_id"`
	Lines    int       `json:"lines"`
}
