package model

import (
	"time"

	"github.com/google/uuid"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Task statuses
const (
	TaskPending   = "PENDING"
	TaskCompleted = "COMPLETED"
)

// LocationConfiguration declares a pick face: a forward bin kept between
// min and max for one item, topped up from reserve stock.
type LocationConfiguration struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	LocationCode string     `json:"location_code" db:"location_code"`
	IsPickFace   bool       `json:"is_pick_face" db:"is_pick_face"`
	ItemID       *uuid.UUID `json:"item_id,omitempty" db:"item_id"`
	SKU          *string    `json:"item_sku,omitempty" db:"sku"`
	MinQty       int        `json:"min_qty" db:"min_qty"`
	MaxQty       int        `json:"max_qty" db:"max_qty"`
}

// ReplenishmentTask moves stock from reserve into a pick face.
type ReplenishmentTask struct {
	ID             uuid.UUID `json:"id" db:"id"`
	ItemID         uuid.UUID `json:"item_id" db:"item_id"`
	SKU            string    `json:"sku" db:"sku"`
	SourceLocation string    `json:"source_location" db:"source_location"`
	DestLocation   string    `json:"dest_location" db:"dest_location"`
	QtyToMove      int       `json:"qty_to_move" db:"qty_to_move"`
	Status         string    `json:"status" db:"status"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// UpsertConfigRequest creates or updates a pick-face configuration.
type UpsertConfigRequest struct {
	LocationCode string  `json:"location_code"`
	IsPickFace   bool    `json:"is_pick_face"`
	SKU          *string `json:"sku,omitempty"`
	MinQty       int     `json:"min_qty"`
	MaxQty       int     `json:"max_qty"`
}

func (r UpsertConfigRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.LocationCode, validation.Required),
		validation.Field(&r.MinQty, validation.Min(0)),
		validation.Field(&r.MaxQty, validation.Required, validation.Min(1)),
	)
}

// GenerateResult reports one generation pass.
type GenerateResult struct {
	TasksCreated int `json:"tasks_created"`
}
