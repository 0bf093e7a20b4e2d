package service

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	catalogrepo "nexwms-backend/internal/domains/catalog/repository"
	"nexwms-backend/internal/domains/order/model"
	"nexwms-backend/internal/domains/order/repository"
	"nexwms-backend/internal/infrastructure/broadcast"
	"nexwms-backend/internal/infrastructure/label"
	"nexwms-backend/pkg/logger"
)

type orderService struct {
	repo        repository.Repository
	catalog     catalogrepo.Repository
	broadcaster broadcast.Broadcaster
}

func NewService(repo repository.Repository, catalog catalogrepo.Repository, broadcaster broadcast.Broadcaster) Service {
	return &orderService{
		repo:        repo,
		catalog:     catalog,
		broadcaster: broadcaster,
	}
}

func (s *orderService) Create(ctx context.Context, req model.CreateOrderRequest, actor string) (*model.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	for _, l := range req.Lines {
		if err := l.Validate(); err != nil {
			return nil, err
		}
	}

	order := &model.Order{
		Priority:        req.Priority,
		CustomerName:    req.CustomerName,
		CustomerAddress: req.CustomerAddress,
		CustomerCity:    req.CustomerCity,
		CustomerState:   req.CustomerState,
		CustomerZip:     req.CustomerZip,
	}

	lines := make([]model.OrderLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		item, err := s.catalog.GetItemBySKU(ctx, l.SKU)
		if err != nil {
			return nil, err
		}
		lines = append(lines, model.OrderLine{
			ItemID:     item.ID,
			SKU:        item.SKU,
			QtyOrdered: l.Quantity,
		})
	}

	if err := s.repo.Create(ctx, order, lines); err != nil {
		return nil, err
	}

	logger.Info("order created", map[string]interface{}{
		"order_number": order.OrderNumber,
		"lines":        len(lines),
		"actor":        actor,
	})
	return order, nil
}

func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *orderService) List(ctx context.Context, filter model.ListFilter) ([]model.Order, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *orderService) SetHold(ctx context.Context, id uuid.UUID, onHold bool, actor string) (*model.Order, error) {
	order, err := s.repo.SetHold(ctx, id, onHold)
	if err != nil {
		return nil, err
	}
	logger.Info("order hold changed", map[string]interface{}{
		"order_number": order.OrderNumber,
		"on_hold":      onHold,
		"actor":        actor,
	})
	return order, nil
}

func (s *orderService) Allocate(ctx context.Context, id uuid.UUID, actor string) (*model.AllocateResult, error) {
	return s.repo.Allocate(ctx, id, actor)
}

func (s *orderService) PickItem(ctx context.Context, id uuid.UUID, req model.PickItemRequest, actor string) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	return s.repo.PickItem(ctx, id, req, actor)
}

func (s *orderService) Pack(ctx context.Context, id uuid.UUID, actor string) error {
	return s.repo.Pack(ctx, id, actor)
}

func (s *orderService) Ship(ctx context.Context, id uuid.UUID, actor string) (*model.Order, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	order, err := s.repo.Ship(ctx, id, label.TrackingNumber(current.OrderNumber), actor)
	if err != nil {
		return nil, err
	}

	logger.Info("order shipped", map[string]interface{}{
		"order_number": order.OrderNumber,
		"tracking":     order.TrackingNumber,
		"actor":        actor,
	})
	s.broadcaster.Publish(ctx, broadcast.EventOrderShipped, map[string]interface{}{
		"order_number": order.OrderNumber,
	})
	return order, nil
}

func (s *orderService) ShortPick(ctx context.Context, id uuid.UUID, req model.ShortPickRequest, actor string) (*model.ShortPickResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result, err := s.repo.ShortPick(ctx, id, req, actor)
	if err != nil {
		return nil, err
	}

	logger.Warn("short pick recorded", map[string]interface{}{
		"order_id": id,
		"sku":      req.SKU,
		"location": req.LocationCode,
		"shortage": result.Shortage,
		"count":    result.CountReference,
		"actor":    actor,
	})
	return result, nil
}

func (s *orderService) WavePlan(ctx context.Context, req model.WavePlanRequest, actor string) (*model.WavePlan, error) {
	pickList, orderCount, err := s.repo.WavePlan(ctx, req.OrderIDs)
	if err != nil {
		return nil, err
	}

	plan := &model.WavePlan{
		WaveID:     fmt.Sprintf("WAVE-%04d", 1000+rand.Intn(9000)),
		PickList:   pickList,
		OrderCount: orderCount,
	}

	s.broadcaster.Publish(ctx, broadcast.EventWaveGenerated, map[string]interface{}{
		"wave_id":     plan.WaveID,
		"order_count": orderCount,
	})
	return plan, nil
}

func (s *orderService) CompleteWave(ctx context.Context, req model.WavePlanRequest, actor string) ([]string, error) {
	return s.repo.CompleteWave(ctx, req.OrderIDs, actor)
}

func (s *orderService) CreateBatch(ctx context.Context, req model.CreateBatchRequest, picker string) (*model.PickBatch, error) {
	if len(req.OrderIDs) == 0 {
		return nil, model.ErrEmptyWave
	}
	return s.repo.CreateBatch(ctx, req.OrderIDs, picker)
}

func (s *orderService) ClusterTasks(ctx context.Context, batchID uuid.UUID) ([]model.ClusterTask, error) {
	return s.repo.ClusterTasks(ctx, batchID)
}

func (s *orderService) PackingSlip(ctx context.Context, id uuid.UUID) ([]byte, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	lines := make([]label.SlipLine, 0, len(order.Lines))
	for _, l := range order.Lines {
		item, err := s.catalog.GetItemByID(ctx, l.ItemID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, label.SlipLine{
			SKU:      l.SKU,
			ItemName: item.Name,
			Ordered:  l.QtyOrdered,
			Shipped:  l.QtyPicked,
		})
	}

	return label.PackingSlip(order.OrderNumber, order.CreatedAt, shipTo(order), lines), nil
}

func (s *orderService) ShippingLabel(ctx context.Context, id uuid.UUID) ([]byte, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return label.ShippingLabel(order.OrderNumber, shipTo(order)), nil
}

func shipTo(o *model.Order) label.ShipTo {
	return label.ShipTo{
		Name:    o.CustomerName,
		Address: o.CustomerAddress,
		City:    o.CustomerCity,
		State:   o.CustomerState,
		Zip:     o.CustomerZip,
	}
}
