package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"nexwms-backend/internal/domains/inventory/model"
)

// ReceiveParams books stock in. The service resolves SKU and location
// before calling; the repository owns the transactional upsert.
type ReceiveParams struct {
	ItemID       uuid.UUID
	SKU          string
	LocationCode string
	Quantity     int
	LotNumber    *string
	ExpiryDate   *time.Time
	Status       string
	Serials      []string
	Actor        string
}

// MoveParams relocates stock, preserving lot, status and expiry.
type MoveParams struct {
	ItemID uuid.UUID
	SKU    string
	Source string
	Dest   string
	Qty    int
	Actor  string
}

// Repository is the persistence port for stock rows, serials and the
// journal. Mutating methods each run one full transaction: lock, mutate,
// journal, commit.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Inventory, error)
	List(ctx context.Context, filter model.ListFilter) ([]model.Inventory, int, error)

	Receive(ctx context.Context, p ReceiveParams) (*model.Inventory, error)
	PickBlind(ctx context.Context, id uuid.UUID, qty int, actor string) (*model.Inventory, error)
	Move(ctx context.Context, p MoveParams) error
	Adjust(ctx context.Context, id uuid.UUID, newQty int, actor string) (*model.Inventory, int, error)
	AssignLot(ctx context.Context, id uuid.UUID, lot string, expiry *time.Time, actor string) (*model.Inventory, bool, error)

	SuggestPutaway(ctx context.Context, itemID uuid.UUID, sku string) (string, error)

	ListJournal(ctx context.Context, filter model.JournalFilter) ([]model.JournalEntry, int, error)

	GetSerial(ctx context.Context, serial string) (*model.SerialNumber, error)
	ListSerialsByInventory(ctx context.Context, inventoryID uuid.UUID) ([]model.SerialNumber, error)
}
