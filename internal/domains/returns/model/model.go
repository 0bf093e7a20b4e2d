package model

import (
	"time"

	"github.com/google/uuid"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// RMA statuses
const (
	StatusRequested = "REQUESTED"
	StatusApproved  = "APPROVED"
	StatusReceived  = "RECEIVED"
	StatusRejected  = "REJECTED"
)

// RMA is a return merchandise authorization against a shipped order.
// Restocked goods land in QUARANTINE until inspected.
type RMA struct {
	ID          uuid.UUID `json:"id" db:"id"`
	OrderID     uuid.UUID `json:"order_id" db:"order_id"`
	OrderNumber string    `json:"order_number" db:"order_number"`
	RMANumber   string    `json:"rma_number" db:"rma_number"`
	Status      string    `json:"status" db:"status"`
	Reason      string    `json:"reason" db:"reason"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	Lines []RMALine `json:"lines,omitempty"`
}

// RMALine is one SKU coming back.
type RMALine struct {
	ID          uuid.UUID `json:"id" db:"id"`
	RMAID       uuid.UUID `json:"rma_id" db:"rma_id"`
	ItemID      uuid.UUID `json:"item_id" db:"item_id"`
	SKU         string    `json:"sku" db:"sku"`
	QtyToReturn int       `json:"qty_to_return" db:"qty_to_return"`
	QtyReceived int       `json:"qty_received" db:"qty_received"`
}

// CreateRMALine is one requested return line.
type CreateRMALine struct {
	SKU string `json:"sku"`
	Qty int    `json:"qty"`
}

func (l CreateRMALine) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.SKU, validation.Required),
		validation.Field(&l.Qty, validation.Required, validation.Min(1)),
	)
}

// CreateRMARequest opens a return against an order.
type CreateRMARequest struct {
	OrderID uuid.UUID       `json:"order_id"`
	Reason  string          `json:"reason"`
	Lines   []CreateRMALine `json:"lines"`
}

func (r CreateRMARequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OrderID, validation.Required),
		validation.Field(&r.Lines, validation.Required, validation.Length(1, 0)),
	)
}

// ProcessReceiptRequest restocks the return, defaulting to the returns dock.
type ProcessReceiptRequest struct {
	LocationCode string `json:"location_code"`
}
