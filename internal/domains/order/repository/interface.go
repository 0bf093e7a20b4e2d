package repository

import (
	"context"

	"github.com/google/uuid"

	"nexwms-backend/internal/domains/order/model"
)

// Repository is the persistence port for orders, lines and pick batches.
// Pipeline methods each run one full transaction, locking the order row
// first and inventory rows in ascending id order.
type Repository interface {
	Create(ctx context.Context, order *model.Order, lines []model.OrderLine) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	List(ctx context.Context, filter model.ListFilter) ([]model.Order, int, error)
	SetHold(ctx context.Context, id uuid.UUID, onHold bool) (*model.Order, error)

	Allocate(ctx context.Context, id uuid.UUID, actor string) (*model.AllocateResult, error)
	PickItem(ctx context.Context, orderID uuid.UUID, req model.PickItemRequest, actor string) (string, error)
	Pack(ctx context.Context, orderID uuid.UUID, actor string) error
	Ship(ctx context.Context, orderID uuid.UUID, trackingNumber, actor string) (*model.Order, error)
	ShortPick(ctx context.Context, orderID uuid.UUID, req model.ShortPickRequest, actor string) (*model.ShortPickResult, error)

	WavePlan(ctx context.Context, orderIDs []uuid.UUID) ([]model.WaveLine, int, error)
	CompleteWave(ctx context.Context, orderIDs []uuid.UUID, actor string) ([]string, error)

	CreateBatch(ctx context.Context, orderIDs []uuid.UUID, picker string) (*model.PickBatch, error)
	GetBatch(ctx context.Context, id uuid.UUID) (*model.PickBatch, error)
	ClusterTasks(ctx context.Context, batchID uuid.UUID) ([]model.ClusterTask, error)
}
