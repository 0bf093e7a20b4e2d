package model

import (
	"github.com/google/uuid"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateOrderLine is one requested SKU on a new order.
type CreateOrderLine struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

func (l CreateOrderLine) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.SKU, validation.Required, validation.Length(1, 64)),
		validation.Field(&l.Quantity, validation.Required, validation.Min(1)),
	)
}

// CreateOrderRequest creates a PENDING order with customer snapshot data.
type CreateOrderRequest struct {
	CustomerName    string `json:"customer_name"`
	CustomerAddress string `json:"customer_address"`
	CustomerCity    string `json:"customer_city"`
	CustomerState   string `json:"customer_state"`
	CustomerZip     string `json:"customer_zip"`
	Priority        int    `json:"priority"`

	Lines []CreateOrderLine `json:"lines"`
}

func (r CreateOrderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CustomerName, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.CustomerAddress, validation.Required),
		validation.Field(&r.Priority, validation.Min(0), validation.Max(100)),
		validation.Field(&r.Lines, validation.Required, validation.Length(1, 0)),
	)
}

// PickItemRequest confirms a scan against an order line. Serial is required
// when the item is serialized; LotNumber narrows the bin choice.
type PickItemRequest struct {
	SKU          string  `json:"sku"`
	LocationCode string  `json:"location_code"`
	Quantity     int     `json:"quantity"`
	LotNumber    *string `json:"lot_number,omitempty"`
	Serial       *string `json:"serial,omitempty"`
}

func (r PickItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SKU, validation.Required),
		validation.Field(&r.LocationCode, validation.Required),
		validation.Field(&r.Quantity, validation.Required, validation.Min(1)),
	)
}

// ShortPickRequest reports stock missing from the bin a picker was sent to.
type ShortPickRequest struct {
	SKU          string `json:"sku"`
	LocationCode string `json:"location_code"`
	QtyMissing   int    `json:"qty_missing"`
}

func (r ShortPickRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SKU, validation.Required),
		validation.Field(&r.LocationCode, validation.Required),
		validation.Field(&r.QtyMissing, validation.Required, validation.Min(1)),
	)
}

// HoldRequest toggles wave eligibility.
type HoldRequest struct {
	OnHold bool `json:"on_hold"`
}

// AllocationLine reports per-line allocation progress.
type AllocationLine struct {
	SKU       string `json:"sku"`
	Ordered   int    `json:"ordered"`
	Allocated int    `json:"allocated"`
}

// AllocateResult is the outcome of a soft allocation pass.
type AllocateResult struct {
	Status string           `json:"status"`
	Lines  []AllocationLine `json:"lines"`
}

// ShortPickResult reports the revert outcome and the audit count opened
// against the suspect bin.
type ShortPickResult struct {
	NewOrderStatus string `json:"new_order_status"`
	CountReference string `json:"count_reference"`
	Shortage       int    `json:"shortage"`
}

// WavePlanRequest names the orders to release as one wave.
type WavePlanRequest struct {
	OrderIDs []uuid.UUID `json:"order_ids"`
}

// WaveLine is the aggregated pick for one SKU across a wave, placed at the
// first available bin's coordinates for walk ordering.
type WaveLine struct {
	SKU      string      `json:"sku"`
	TotalQty int         `json:"total_qty"`
	Orders   []string    `json:"orders"`
	OrderIDs []uuid.UUID `json:"order_ids"`
	Location string      `json:"location"`
	X        int         `json:"x"`
	Y        int         `json:"y"`
}

// WavePlan is a released wave: one aggregated pick list sorted by coordinates.
type WavePlan struct {
	WaveID     string     `json:"wave_id"`
	PickList   []WaveLine `json:"pick_list"`
	OrderCount int        `json:"order_count"`
}

// CreateBatchRequest builds a cluster-pick batch from ALLOCATED orders.
type CreateBatchRequest struct {
	OrderIDs []uuid.UUID `json:"order_ids"`
}

// ClusterAllocation tells the picker how much of a grab goes into which tote.
type ClusterAllocation struct {
	OrderNumber string    `json:"order_number"`
	Qty         int       `json:"qty"`
	LineID      uuid.UUID `json:"line_id"`
}

// ClusterTask is one stop on the cluster-pick walk: grab TotalQty of SKU at
// Location, then split it across DistributeTo.
type ClusterTask struct {
	Location     string              `json:"location"`
	SKU          string              `json:"sku"`
	TotalQty     int                 `json:"total_qty_to_pick"`
	DistributeTo []ClusterAllocation `json:"distribute_to"`
}

// ListFilter narrows order listings.
type ListFilter struct {
	Status string
	OnHold *bool
	Offset int
	Limit  int
}
