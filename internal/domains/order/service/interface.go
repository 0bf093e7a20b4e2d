package service

import (
	"context"

	"github.com/google/uuid"

	"nexwms-backend/internal/domains/order/model"
)

type Service interface {
	Create(ctx context.Context, req model.CreateOrderRequest, actor string) (*model.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	List(ctx context.Context, filter model.ListFilter) ([]model.Order, int, error)
	SetHold(ctx context.Context, id uuid.UUID, onHold bool, actor string) (*model.Order, error)

	Allocate(ctx context.Context, id uuid.UUID, actor string) (*model.AllocateResult, error)
	PickItem(ctx context.Context, id uuid.UUID, req model.PickItemRequest, actor string) (string, error)
	Pack(ctx context.Context, id uuid.UUID, actor string) error
	Ship(ctx context.Context, id uuid.UUID, actor string) (*model.Order, error)
	ShortPick(ctx context.Context, id uuid.UUID, req model.ShortPickRequest, actor string) (*model.ShortPickResult, error)

	WavePlan(ctx context.Context, req model.WavePlanRequest, actor string) (*model.WavePlan, error)
	CompleteWave(ctx context.Context, req model.WavePlanRequest, actor string) ([]string, error)

	CreateBatch(ctx context.Context, req model.CreateBatchRequest, picker string) (*model.PickBatch, error)
	ClusterTasks(ctx context.Context, batchID uuid.UUID) ([]model.ClusterTask, error)

	// PackingSlip and ShippingLabel render printable paperwork for an order.
	PackingSlip(ctx context.Context, id uuid.UUID) ([]byte, error)
	ShippingLabel(ctx context.Context, id uuid.UUID) ([]byte, error)
}
