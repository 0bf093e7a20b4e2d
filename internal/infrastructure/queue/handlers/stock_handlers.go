package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	countingmodel "nexwms-backend/internal/domains/counting/model"
	countingservice "nexwms-backend/internal/domains/counting/service"
	purchasingmodel "nexwms-backend/internal/domains/purchasing/model"
	purchasingservice "nexwms-backend/internal/domains/purchasing/service"
	"nexwms-backend/internal/shared"
	"nexwms-backend/pkg/logger"
)

// GenerateCycleCountsHandler opens the daily random count session.
type GenerateCycleCountsHandler struct {
	counting countingservice.Service
}

func NewGenerateCycleCountsHandler(counting countingservice.Service) *GenerateCycleCountsHandler {
	return &GenerateCycleCountsHandler{counting: counting}
}

func (h *GenerateCycleCountsHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.CycleCountPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal cycle count payload: %w", err)
	}

	session, err := h.counting.CreateRandomCount(ctx, countingmodel.CreateRandomCountRequest{
		AislePrefix: payload.AislePrefix,
		Limit:       payload.Limit,
	}, "system")
	if err != nil {
		if countingmodel.IsEmptyError(err) {
			// Empty warehouse. Nothing to count today.
			return nil
		}
		return fmt.Errorf("cycle count generation failed: %w", err)
	}

	logger.Info("Scheduled cycle count session opened", map[string]interface{}{
		"reference": session.Reference,
		"tasks":     len(session.Tasks),
	})
	return nil
}

// AutoReplenishHandler raises a draft purchase order for low stock.
type AutoReplenishHandler struct {
	purchasing purchasingservice.Service
}

func NewAutoReplenishHandler(purchasing purchasingservice.Service) *AutoReplenishHandler {
	return &AutoReplenishHandler{purchasing: purchasing}
}

func (h *AutoReplenishHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	result, err := h.purchasing.AutoReplenish(ctx, "system")
	if err != nil {
		if purchasingmodel.IsEmptyError(err) {
			// Nothing under the threshold.
			return nil
		}
		return fmt.Errorf("auto-replenish failed: %w", err)
	}

	logger.Info("Scheduled auto-replenish raised a PO", map[string]interface{}{
		"po_number": result.PONumber,
		"lines":     result.Lines,
	})
	return nil
}
