package repository

import (
	"context"

	"github.com/google/uuid"

	"nexwms-backend/internal/domains/counting/model"
)

// Repository is the persistence port for count sessions and tasks.
type Repository interface {
	CreateRandomSession(ctx context.Context, aislePrefix string, limit int) (*model.CycleCountSession, error)
	CreateLocationSession(ctx context.Context, locationCode string) (*model.CycleCountSession, error)
	SubmitCount(ctx context.Context, taskID uuid.UUID, countedQty int, actor string) (*model.SubmitCountResult, error)

	GetSession(ctx context.Context, id uuid.UUID) (*model.CycleCountSession, error)
	ListSessions(ctx context.Context, status string, offset, limit int) ([]model.CycleCountSession, int, error)
}
