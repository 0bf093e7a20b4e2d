package service

import (
	"context"

	"github.com/google/uuid"

	"nexwms-backend/internal/domains/purchasing/model"
)

type Service interface {
	CreateSupplier(ctx context.Context, req model.CreateSupplierRequest) (*model.Supplier, error)
	ListSuppliers(ctx context.Context) ([]model.Supplier, error)

	CreatePO(ctx context.Context, req model.CreatePORequest, actor string) (*model.PurchaseOrder, error)
	GetPO(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error)
	ListPOs(ctx context.Context, status string, offset, limit int) ([]model.PurchaseOrder, int, error)

	// ReceivePOItem books stock in against one PO line.
	ReceivePOItem(ctx context.Context, poID uuid.UUID, req model.ReceivePOItemRequest, actor string) (*model.ReceivePOItemResult, error)

	// AutoReplenish raises a DRAFT order for every stock row under the
	// configured threshold. Run on a schedule or on demand.
	AutoReplenish(ctx context.Context, actor string) (*model.AutoReplenishResult, error)

	// Document renders the printable purchase order.
	Document(ctx context.Context, id uuid.UUID) ([]byte, error)
}
