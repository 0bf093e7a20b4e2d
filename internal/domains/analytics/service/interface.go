package service

import (
	"context"

	"nexwms-backend/internal/domains/analytics/model"
)

type Service interface {
	// RunABCAnalysis re-ranks every SKU by outbound velocity over the last
	// windowDays days and persists the new classes. windowDays <= 0 uses
	// the default window.
	RunABCAnalysis(ctx context.Context, windowDays int) (*model.ABCStats, error)

	DashboardStats(ctx context.Context) (*model.DashboardStats, error)
	OperatorStats(ctx context.Context) (*model.OperatorStats, error)
}
