package service

import (
	"context"

	"github.com/google/uuid"

	catalogrepo "nexwms-backend/internal/domains/catalog/repository"
	"nexwms-backend/internal/domains/returns/model"
	"nexwms-backend/internal/domains/returns/repository"
	"nexwms-backend/pkg/logger"
)

type returnsService struct {
	repo            repository.Repository
	catalog         catalogrepo.Repository
	returnsDockCode string
}

func NewService(repo repository.Repository, catalog catalogrepo.Repository, returnsDockCode string) Service {
	return &returnsService{
		repo:            repo,
		catalog:         catalog,
		returnsDockCode: returnsDockCode,
	}
}

func (s *returnsService) Create(ctx context.Context, req model.CreateRMARequest, actor string) (*model.RMA, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	for _, l := range req.Lines {
		if err := l.Validate(); err != nil {
			return nil, err
		}
	}

	lines := make([]model.RMALine, 0, len(req.Lines))
	for _, l := range req.Lines {
		item, err := s.catalog.GetItemBySKU(ctx, l.SKU)
		if err != nil {
			return nil, err
		}
		lines = append(lines, model.RMALine{
			ItemID:      item.ID,
			SKU:         item.SKU,
			QtyToReturn: l.Qty,
		})
	}

	rma := &model.RMA{OrderID: req.OrderID, Reason: req.Reason}
	if err := s.repo.Create(ctx, rma, lines); err != nil {
		return nil, err
	}

	logger.Info("RMA opened", map[string]interface{}{
		"rma_number": rma.RMANumber,
		"order_id":   req.OrderID,
		"actor":      actor,
	})
	return rma, nil
}

func (s *returnsService) GetByID(ctx context.Context, id uuid.UUID) (*model.RMA, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *returnsService) List(ctx context.Context, status string, offset, limit int) ([]model.RMA, int, error) {
	return s.repo.List(ctx, status, offset, limit)
}

func (s *returnsService) ProcessReceipt(ctx context.Context, id uuid.UUID, locationCode, actor string) (*model.RMA, error) {
	if locationCode == "" {
		locationCode = s.returnsDockCode
	}

	rma, err := s.repo.ProcessReceipt(ctx, id, locationCode, actor)
	if err != nil {
		return nil, err
	}

	logger.Info("RMA restocked", map[string]interface{}{
		"rma_number": rma.RMANumber,
		"location":   locationCode,
		"actor":      actor,
	})
	return rma, nil
}
