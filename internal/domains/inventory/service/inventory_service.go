package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	catalogrepo "nexwms-backend/internal/domains/catalog/repository"
	"nexwms-backend/internal/domains/inventory/model"
	"nexwms-backend/internal/domains/inventory/repository"
	"nexwms-backend/internal/infrastructure/broadcast"
	"nexwms-backend/internal/infrastructure/label"
	"nexwms-backend/pkg/logger"
)

type inventoryService struct {
	repo        repository.Repository
	catalog     catalogrepo.Repository
	broadcaster broadcast.Broadcaster
}

func NewService(repo repository.Repository, catalog catalogrepo.Repository, broadcaster broadcast.Broadcaster) Service {
	return &inventoryService{
		repo:        repo,
		catalog:     catalog,
		broadcaster: broadcaster,
	}
}

func (s *inventoryService) Receive(ctx context.Context, req model.ReceiveRequest, actor string) (*model.Inventory, error) {
	if req.Quantity <= 0 {
		return nil, model.ErrInvalidQuantity
	}

	status := req.Status
	if status == "" {
		status = model.StatusAvailable
	}
	if !model.IsValidStatus(status) {
		return nil, model.ErrInvalidStatus
	}

	item, err := s.catalog.GetItemBySKU(ctx, req.SKU)
	if err != nil {
		return nil, err
	}
	if _, err := s.catalog.GetLocationByCode(ctx, req.LocationCode); err != nil {
		return nil, err
	}

	if item.IsSerialized {
		if len(req.Serials) != req.Quantity {
			return nil, fmt.Errorf("%w: got %d serials for quantity %d",
				model.ErrSerialMismatch, len(req.Serials), req.Quantity)
		}
	} else if len(req.Serials) > 0 {
		return nil, fmt.Errorf("%w: item %s is not serialized", model.ErrSerialMismatch, req.SKU)
	}

	inv, err := s.repo.Receive(ctx, repository.ReceiveParams{
		ItemID:       item.ID,
		SKU:          item.SKU,
		LocationCode: req.LocationCode,
		Quantity:     req.Quantity,
		LotNumber:    req.LotNumber,
		ExpiryDate:   req.ExpiryDate,
		Status:       status,
		Serials:      req.Serials,
		Actor:        actor,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("stock received", map[string]interface{}{
		"sku":      item.SKU,
		"location": req.LocationCode,
		"qty":      req.Quantity,
		"actor":    actor,
	})
	return inv, nil
}

func (s *inventoryService) PickBlind(ctx context.Context, id uuid.UUID, qty int, actor string) (*model.Inventory, error) {
	if qty <= 0 {
		return nil, model.ErrInvalidQuantity
	}
	return s.repo.PickBlind(ctx, id, qty, actor)
}

func (s *inventoryService) Move(ctx context.Context, req model.MoveRequest, actor string) error {
	if req.Quantity <= 0 {
		return model.ErrInvalidQuantity
	}
	if req.Source == req.Dest {
		return model.ErrSameLocation
	}

	item, err := s.catalog.GetItemBySKU(ctx, req.SKU)
	if err != nil {
		return err
	}
	if _, err := s.catalog.GetLocationByCode(ctx, req.Dest); err != nil {
		return err
	}

	return s.repo.Move(ctx, repository.MoveParams{
		ItemID: item.ID,
		SKU:    item.SKU,
		Source: req.Source,
		Dest:   req.Dest,
		Qty:    req.Quantity,
		Actor:  actor,
	})
}

func (s *inventoryService) Adjust(ctx context.Context, id uuid.UUID, req model.AdjustRequest, actor string) (*model.Inventory, int, error) {
	if req.NewQuantity < 0 {
		return nil, 0, model.ErrInvalidQuantity
	}

	inv, delta, err := s.repo.Adjust(ctx, id, req.NewQuantity, actor)
	if err != nil {
		return nil, 0, err
	}

	logger.Info("stock adjusted", map[string]interface{}{
		"sku":      inv.SKU,
		"location": inv.LocationCode,
		"delta":    delta,
		"reason":   req.Reason,
		"actor":    actor,
	})

	s.broadcaster.Publish(ctx, broadcast.EventStockAdjusted, map[string]interface{}{
		"sku":      inv.SKU,
		"location": inv.LocationCode,
		"delta":    delta,
	})

	return inv, delta, nil
}

func (s *inventoryService) AssignLot(ctx context.Context, id uuid.UUID, req model.AssignLotRequest, actor string) (*model.Inventory, bool, error) {
	return s.repo.AssignLot(ctx, id, req.LotNumber, req.ExpiryDate, actor)
}

func (s *inventoryService) GetByID(ctx context.Context, id uuid.UUID) (*model.Inventory, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *inventoryService) List(ctx context.Context, filter model.ListFilter) ([]model.Inventory, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *inventoryService) ListJournal(ctx context.Context, filter model.JournalFilter) ([]model.JournalEntry, int, error) {
	return s.repo.ListJournal(ctx, filter)
}

func (s *inventoryService) SuggestPutaway(ctx context.Context, sku string) (string, error) {
	item, err := s.catalog.GetItemBySKU(ctx, sku)
	if err != nil {
		return "", err
	}
	return s.repo.SuggestPutaway(ctx, item.ID, item.SKU)
}

func (s *inventoryService) ItemLabel(ctx context.Context, id uuid.UUID) ([]byte, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	item, err := s.catalog.GetItemByID(ctx, inv.ItemID)
	if err != nil {
		return nil, err
	}
	return label.ItemLabel(item.Name, item.SKU, inv.LocationCode), nil
}
