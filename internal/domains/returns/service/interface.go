package service

import (
	"context"

	"github.com/google/uuid"

	"nexwms-backend/internal/domains/returns/model"
)

type Service interface {
	Create(ctx context.Context, req model.CreateRMARequest, actor string) (*model.RMA, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.RMA, error)
	List(ctx context.Context, status string, offset, limit int) ([]model.RMA, int, error)

	// ProcessReceipt restocks the return into QUARANTINE. An empty location
	// defaults to the configured returns dock.
	ProcessReceipt(ctx context.Context, id uuid.UUID, locationCode, actor string) (*model.RMA, error)
}
