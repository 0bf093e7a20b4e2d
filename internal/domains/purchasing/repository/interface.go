package repository

import (
	"context"

	"github.com/google/uuid"

	"nexwms-backend/internal/domains/purchasing/model"
)

// LowStockRow is one under-threshold stock row feeding auto replenishment.
type LowStockRow struct {
	SKU      string
	Quantity int
}

// Repository is the persistence port for suppliers and purchase orders.
type Repository interface {
	CreateSupplier(ctx context.Context, s *model.Supplier) error
	GetOrCreateSupplier(ctx context.Context, name, contactEmail string) (*model.Supplier, error)
	ListSuppliers(ctx context.Context) ([]model.Supplier, error)

	CreatePO(ctx context.Context, po *model.PurchaseOrder) error
	GetPO(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error)
	ListPOs(ctx context.Context, status string, offset, limit int) ([]model.PurchaseOrder, int, error)

	// RecordReceipt advances one line's received count under lock and
	// re-derives the order status.
	RecordReceipt(ctx context.Context, poID uuid.UUID, sku string, qty int) (*model.ReceivePOItemResult, error)

	LowStock(ctx context.Context, threshold int) ([]LowStockRow, error)
}
