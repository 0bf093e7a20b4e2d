package repository

import (
	"context"
	"time"

	"nexwms-backend/internal/domains/analytics/model"
)

// Repository is the read-side port over the journal and stock tables.
type Repository interface {
	// SKUVelocity sums outbound movement (PICK, PACK, SHIP) per SKU since
	// the cutoff.
	SKUVelocity(ctx context.Context, since time.Time) (map[string]int, error)

	// AllSKUs returns every catalog SKU with its current ABC class.
	AllSKUs(ctx context.Context) (map[string]string, error)

	DashboardStats(ctx context.Context, lowStockThreshold int) (*model.DashboardStats, error)
	OperatorStats(ctx context.Context, since time.Time) (*model.OperatorStats, error)
}
