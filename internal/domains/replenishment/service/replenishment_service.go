package service

import (
	"context"

	"github.com/google/uuid"

	catalogrepo "nexwms-backend/internal/domains/catalog/repository"
	inventoryrepo "nexwms-backend/internal/domains/inventory/repository"
	"nexwms-backend/internal/domains/replenishment/model"
	"nexwms-backend/internal/domains/replenishment/repository"
	"nexwms-backend/pkg/logger"
)

type replenishmentService struct {
	repo      repository.Repository
	inventory inventoryrepo.Repository
	catalog   catalogrepo.Repository
}

func NewService(repo repository.Repository, inventory inventoryrepo.Repository, catalog catalogrepo.Repository) Service {
	return &replenishmentService{
		repo:      repo,
		inventory: inventory,
		catalog:   catalog,
	}
}

func (s *replenishmentService) UpsertConfig(ctx context.Context, req model.UpsertConfigRequest) (*model.LocationConfiguration, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.MinQty >= req.MaxQty {
		return nil, model.ErrInvalidRange
	}

	cfg := &model.LocationConfiguration{
		LocationCode: req.LocationCode,
		IsPickFace:   req.IsPickFace,
		MinQty:       req.MinQty,
		MaxQty:       req.MaxQty,
	}
	if req.SKU != nil {
		item, err := s.catalog.GetItemBySKU(ctx, *req.SKU)
		if err != nil {
			return nil, err
		}
		cfg.ItemID = &item.ID
		cfg.SKU = &item.SKU
	}

	if err := s.repo.UpsertConfig(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *replenishmentService) ListConfigs(ctx context.Context) ([]model.LocationConfiguration, error) {
	return s.repo.ListConfigs(ctx)
}

func (s *replenishmentService) Generate(ctx context.Context) (*model.GenerateResult, error) {
	created, err := s.repo.GenerateTasks(ctx)
	if err != nil {
		return nil, err
	}

	if created > 0 {
		logger.Info("replenishment tasks generated", map[string]interface{}{
			"tasks_created": created,
		})
	}
	return &model.GenerateResult{TasksCreated: created}, nil
}

// Complete claims the task, then executes the stock move. The claim is
// reopened when the move fails so the task can be retried.
func (s *replenishmentService) Complete(ctx context.Context, id uuid.UUID, actor string) (*model.ReplenishmentTask, error) {
	task, err := s.repo.ClaimTask(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.inventory.Move(ctx, inventoryrepo.MoveParams{
		ItemID: task.ItemID,
		SKU:    task.SKU,
		Source: task.SourceLocation,
		Dest:   task.DestLocation,
		Qty:    task.QtyToMove,
		Actor:  actor,
	})
	if err != nil {
		if reopenErr := s.repo.ReopenTask(ctx, id); reopenErr != nil {
			logger.Error("failed to reopen replenishment task", reopenErr)
		}
		return nil, err
	}

	logger.Info("replenishment completed", map[string]interface{}{
		"sku":   task.SKU,
		"from":  task.SourceLocation,
		"to":    task.DestLocation,
		"qty":   task.QtyToMove,
		"actor": actor,
	})
	return task, nil
}

func (s *replenishmentService) ListTasks(ctx context.Context, status string, offset, limit int) ([]model.ReplenishmentTask, int, error) {
	return s.repo.ListTasks(ctx, status, offset, limit)
}
