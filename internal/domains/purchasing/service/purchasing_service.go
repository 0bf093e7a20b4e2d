package service

import (
	"context"

	"github.com/google/uuid"

	invmodel "nexwms-backend/internal/domains/inventory/model"
	invservice "nexwms-backend/internal/domains/inventory/service"
	"nexwms-backend/internal/domains/purchasing/model"
	"nexwms-backend/internal/domains/purchasing/repository"
	"nexwms-backend/internal/infrastructure/label"
	"nexwms-backend/pkg/logger"
)

const defaultSupplierEmail = "orders@globalsupplies.com"

// Config carries the replenishment policy knobs.
type Config struct {
	LowStockThreshold int
	ReorderTargetQty  int
	DefaultSupplier   string
}

type purchasingService struct {
	repo      repository.Repository
	inventory invservice.Service
	cfg       Config
}

func NewService(repo repository.Repository, inventory invservice.Service, cfg Config) Service {
	return &purchasingService{
		repo:      repo,
		inventory: inventory,
		cfg:       cfg,
	}
}

func (s *purchasingService) CreateSupplier(ctx context.Context, req model.CreateSupplierRequest) (*model.Supplier, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	supplier := &model.Supplier{Name: req.Name, ContactEmail: req.ContactEmail}
	if err := s.repo.CreateSupplier(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *purchasingService) ListSuppliers(ctx context.Context) ([]model.Supplier, error) {
	return s.repo.ListSuppliers(ctx)
}

func (s *purchasingService) CreatePO(ctx context.Context, req model.CreatePORequest, actor string) (*model.PurchaseOrder, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	for _, l := range req.Lines {
		if err := l.Validate(); err != nil {
			return nil, err
		}
	}

	lines := make(model.POLines, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, model.POLine{SKU: l.SKU, Qty: l.Qty})
	}

	po := &model.PurchaseOrder{
		SupplierID: req.SupplierID,
		Status:     model.StatusDraft,
		Lines:      lines,
	}
	if err := s.repo.CreatePO(ctx, po); err != nil {
		return nil, err
	}

	logger.Info("purchase order created", map[string]interface{}{
		"po_number": po.PONumber,
		"lines":     len(lines),
		"actor":     actor,
	})
	return po, nil
}

func (s *purchasingService) GetPO(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	return s.repo.GetPO(ctx, id)
}

func (s *purchasingService) ListPOs(ctx context.Context, status string, offset, limit int) ([]model.PurchaseOrder, int, error) {
	return s.repo.ListPOs(ctx, status, offset, limit)
}

// ReceivePOItem verifies the line, books the stock in as AVAILABLE, then
// records receipt progress. Over-receipt is allowed; the status derivation
// treats it as complete.
func (s *purchasingService) ReceivePOItem(ctx context.Context, poID uuid.UUID, req model.ReceivePOItemRequest, actor string) (*model.ReceivePOItemResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	po, err := s.repo.GetPO(ctx, poID)
	if err != nil {
		return nil, err
	}
	found := false
	for _, line := range po.Lines {
		if line.SKU == req.SKU {
			found = true
			break
		}
	}
	if !found {
		return nil, model.ErrItemNotInPO
	}

	if _, err := s.inventory.Receive(ctx, invmodel.ReceiveRequest{
		SKU:          req.SKU,
		LocationCode: req.LocationCode,
		Quantity:     req.Quantity,
		LotNumber:    req.LotNumber,
		ExpiryDate:   req.ExpiryDate,
		Status:       invmodel.StatusAvailable,
	}, actor); err != nil {
		return nil, err
	}

	return s.repo.RecordReceipt(ctx, poID, req.SKU, req.Quantity)
}

func (s *purchasingService) AutoReplenish(ctx context.Context, actor string) (*model.AutoReplenishResult, error) {
	low, err := s.repo.LowStock(ctx, s.cfg.LowStockThreshold)
	if err != nil {
		return nil, err
	}
	if len(low) == 0 {
		return nil, model.ErrNoLowStock
	}

	supplier, err := s.repo.GetOrCreateSupplier(ctx, s.cfg.DefaultSupplier, defaultSupplierEmail)
	if err != nil {
		return nil, err
	}

	lines := make(model.POLines, 0, len(low))
	for _, row := range low {
		lines = append(lines, model.POLine{
			SKU: row.SKU,
			Qty: s.cfg.ReorderTargetQty - row.Quantity,
		})
	}

	po := &model.PurchaseOrder{
		SupplierID: supplier.ID,
		Status:     model.StatusDraft,
		Lines:      lines,
	}
	if err := s.repo.CreatePO(ctx, po); err != nil {
		return nil, err
	}

	logger.Info("auto replenishment raised", map[string]interface{}{
		"po_number": po.PONumber,
		"lines":     len(lines),
		"actor":     actor,
	})
	return &model.AutoReplenishResult{
		PONumber: po.PONumber,
		POID:     po.ID,
		Lines:    len(lines),
	}, nil
}

func (s *purchasingService) Document(ctx context.Context, id uuid.UUID) ([]byte, error) {
	po, err := s.repo.GetPO(ctx, id)
	if err != nil {
		return nil, err
	}

	lines := make([]label.POLine, 0, len(po.Lines))
	for _, l := range po.Lines {
		lines = append(lines, label.POLine{SKU: l.SKU, Qty: l.Qty, Received: l.Received})
	}
	return label.PurchaseOrderDoc(po.PONumber, po.SupplierName, po.Status, po.CreatedAt, lines), nil
}
