package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	analyticsservice "nexwms-backend/internal/domains/analytics/service"
	"nexwms-backend/internal/shared"
	"nexwms-backend/pkg/logger"
)

// ABCAnalysisHandler runs the nightly velocity classification.
type ABCAnalysisHandler struct {
	analytics analyticsservice.Service
}

func NewABCAnalysisHandler(analytics analyticsservice.Service) *ABCAnalysisHandler {
	return &ABCAnalysisHandler{analytics: analytics}
}

func (h *ABCAnalysisHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.ABCAnalysisPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal ABC payload: %w", err)
	}

	stats, err := h.analytics.RunABCAnalysis(ctx, payload.WindowDays)
	if err != nil {
		return fmt.Errorf("ABC analysis failed: %w", err)
	}

	logger.Info("Scheduled ABC analysis finished", map[string]interface{}{
		"updated": stats.Updated,
		"a":       stats.A,
		"b":       stats.B,
		"c":       stats.C,
	})
	return nil
}

// RefreshDashboardHandler warms the dashboard cache so the first request
// after the TTL does not pay the aggregation cost.
type RefreshDashboardHandler struct {
	analytics analyticsservice.Service
}

func NewRefreshDashboardHandler(analytics analyticsservice.Service) *RefreshDashboardHandler {
	return &RefreshDashboardHandler{analytics: analytics}
}

func (h *RefreshDashboardHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	if _, err := h.analytics.DashboardStats(ctx); err != nil {
		return fmt.Errorf("dashboard refresh failed: %w", err)
	}
	return nil
}
