package repository

import (
	"context"

	"github.com/google/uuid"

	"nexwms-backend/internal/domains/returns/model"
)

// Repository is the persistence port for return authorizations.
type Repository interface {
	Create(ctx context.Context, rma *model.RMA, lines []model.RMALine) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.RMA, error)
	List(ctx context.Context, status string, offset, limit int) ([]model.RMA, int, error)

	// ProcessReceipt restocks every line into QUARANTINE at the given
	// location and marks the RMA RECEIVED, all in one transaction.
	ProcessReceipt(ctx context.Context, id uuid.UUID, locationCode, actor string) (*model.RMA, error)
}
