package model

import (
	"time"

	"github.com/google/uuid"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Session statuses
const (
	SessionInProgress = "IN_PROGRESS"
	SessionCompleted  = "COMPLETED"
)

// Task statuses
const (
	TaskPending = "PENDING"
	TaskCounted = "COUNTED"
)

// Device identifiers recorded on sessions. Scanner-created sessions carry
// the device's own id instead.
const (
	DeviceManualTrigger = "MANUAL_TRIGGER"
	DeviceSystemAuto    = "SYSTEM_AUTO"
)

// CycleCountSession groups count tasks issued together. The session
// completes when no task is left PENDING.
type CycleCountSession struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Reference string    `json:"reference" db:"reference"`
	Status    string    `json:"status" db:"status"`
	DeviceID  *string   `json:"device_id,omitempty" db:"device_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Tasks []CycleCountTask `json:"tasks,omitempty"`
}

// CycleCountTask asks a counter to verify one stock row. ExpectedQty is a
// snapshot from creation time; variance is computed against the live
// quantity under lock at submit time.
type CycleCountTask struct {
	ID          uuid.UUID `json:"id" db:"id"`
	SessionID   uuid.UUID `json:"session_id" db:"session_id"`
	InventoryID uuid.UUID `json:"inventory_id" db:"inventory_id"`

	SKU          string `json:"sku" db:"sku"`
	LocationCode string `json:"location_code" db:"location_code"`

	ExpectedQty int    `json:"expected_qty" db:"expected_qty"`
	CountedQty  *int   `json:"counted_qty,omitempty" db:"counted_qty"`
	Variance    *int   `json:"variance,omitempty" db:"variance"`
	Status      string `json:"status" db:"status"`
}

// CreateRandomCountRequest samples bins for a spot check.
type CreateRandomCountRequest struct {
	AislePrefix string `json:"aisle_prefix"`
	Limit       int    `json:"limit"`
}

// CreateLocationCountRequest counts everything in one bin.
type CreateLocationCountRequest struct {
	LocationCode string `json:"location_code"`
}

func (r CreateLocationCountRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.LocationCode, validation.Required),
	)
}

// SubmitCountRequest reports the physical count for a task. Zero is a
// legitimate count, so the field is a pointer.
type SubmitCountRequest struct {
	CountedQty *int `json:"counted_qty"`
}

func (r SubmitCountRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CountedQty, validation.NotNil, validation.Min(0)),
	)
}

// SubmitCountResult reports the variance found by a count.
type SubmitCountResult struct {
	Variance      int    `json:"variance"`
	Message       string `json:"message"`
	SessionStatus string `json:"session_status"`
}

// ReconcileCount measures a physical count against the live quantity and
// returns the corrected reservation alongside the variance. Reservations
// can never exceed what is actually on the shelf.
func ReconcileCount(liveQty, reservedQty, countedQty int) (variance, correctedReserved int) {
	return countedQty - liveQty, min(reservedQty, countedQty)
}
