package service

import (
	"context"

	"github.com/google/uuid"

	"nexwms-backend/internal/domains/inventory/model"
)

type Service interface {
	Receive(ctx context.Context, req model.ReceiveRequest, actor string) (*model.Inventory, error)
	PickBlind(ctx context.Context, id uuid.UUID, qty int, actor string) (*model.Inventory, error)
	Move(ctx context.Context, req model.MoveRequest, actor string) error
	Adjust(ctx context.Context, id uuid.UUID, req model.AdjustRequest, actor string) (*model.Inventory, int, error)
	AssignLot(ctx context.Context, id uuid.UUID, req model.AssignLotRequest, actor string) (*model.Inventory, bool, error)

	GetByID(ctx context.Context, id uuid.UUID) (*model.Inventory, error)
	List(ctx context.Context, filter model.ListFilter) ([]model.Inventory, int, error)
	ListJournal(ctx context.Context, filter model.JournalFilter) ([]model.JournalEntry, int, error)

	SuggestPutaway(ctx context.Context, sku string) (string, error)

	// ItemLabel renders the printable ZPL label for a stock row.
	ItemLabel(ctx context.Context, id uuid.UUID) ([]byte, error)
}
