package service

import (
	"context"

	"github.com/google/uuid"

	"nexwms-backend/internal/domains/replenishment/model"
)

type Service interface {
	UpsertConfig(ctx context.Context, req model.UpsertConfigRequest) (*model.LocationConfiguration, error)
	ListConfigs(ctx context.Context) ([]model.LocationConfiguration, error)

	// Generate scans pick faces and creates PENDING move tasks. Run on a
	// schedule or on demand.
	Generate(ctx context.Context) (*model.GenerateResult, error)

	// Complete performs the physical move for a claimed task.
	Complete(ctx context.Context, id uuid.UUID, actor string) (*model.ReplenishmentTask, error)

	ListTasks(ctx context.Context, status string, offset, limit int) ([]model.ReplenishmentTask, int, error)
}
