package repository

import (
	"context"

	"github.com/google/uuid"

	"nexwms-backend/internal/domains/replenishment/model"
)

// Repository is the persistence port for pick-face configs and move tasks.
type Repository interface {
	UpsertConfig(ctx context.Context, cfg *model.LocationConfiguration) error
	ListConfigs(ctx context.Context) ([]model.LocationConfiguration, error)

	// GenerateTasks scans pick faces below their minimum and creates one
	// PENDING task per shortfall, pulling from the largest reserve bin.
	GenerateTasks(ctx context.Context) (int, error)

	// ClaimTask flips a PENDING task to COMPLETED and returns it; the caller
	// performs the physical move and reopens the task on failure.
	ClaimTask(ctx context.Context, id uuid.UUID) (*model.ReplenishmentTask, error)
	ReopenTask(ctx context.Context, id uuid.UUID) error

	ListTasks(ctx context.Context, status string, offset, limit int) ([]model.ReplenishmentTask, int, error)
}
