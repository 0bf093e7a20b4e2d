package service

import (
	"context"

	"github.com/google/uuid"

	"nexwms-backend/internal/domains/counting/model"
)

type Service interface {
	CreateRandomCount(ctx context.Context, req model.CreateRandomCountRequest, actor string) (*model.CycleCountSession, error)
	CreateLocationCount(ctx context.Context, req model.CreateLocationCountRequest, actor string) (*model.CycleCountSession, error)
	SubmitCount(ctx context.Context, taskID uuid.UUID, req model.SubmitCountRequest, actor string) (*model.SubmitCountResult, error)

	GetSession(ctx context.Context, id uuid.UUID) (*model.CycleCountSession, error)
	ListSessions(ctx context.Context, status string, offset, limit int) ([]model.CycleCountSession, int, error)
}
