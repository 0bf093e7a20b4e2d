package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	ordermodel "nexwms-backend/internal/domains/order/model"
	orderservice "nexwms-backend/internal/domains/order/service"
	replenishmentservice "nexwms-backend/internal/domains/replenishment/service"
	"nexwms-backend/internal/shared"
	"nexwms-backend/pkg/logger"
)

// WavePlanHandler builds a pick plan off the request path. Large waves
// lock many stock rows, so the API can hand them to the worker.
type WavePlanHandler struct {
	orders orderservice.Service
}

func NewWavePlanHandler(orders orderservice.Service) *WavePlanHandler {
	return &WavePlanHandler{orders: orders}
}

func (h *WavePlanHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.WavePlanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal wave payload: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(payload.OrderIDs))
	for _, raw := range payload.OrderIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid order id %q: %w", raw, err)
		}
		ids = append(ids, id)
	}

	actor := payload.Actor
	if actor == "" {
		actor = "system"
	}

	plan, err := h.orders.WavePlan(ctx, ordermodel.WavePlanRequest{OrderIDs: ids}, actor)
	if err != nil {
		if ordermodel.IsValidationError(err) {
			// Nothing eligible. Retrying will not change that.
			logger.Warn("Wave plan task skipped", map[string]interface{}{"reason": err.Error()})
			return nil
		}
		return fmt.Errorf("wave planning failed: %w", err)
	}

	logger.Info("Scheduled wave plan generated", map[string]interface{}{
		"wave_id":     plan.WaveID,
		"order_count": plan.OrderCount,
		"lines":       len(plan.PickList),
	})
	return nil
}

// GenerateReplenishmentHandler scans pick faces and raises move tasks.
type GenerateReplenishmentHandler struct {
	replenishment replenishmentservice.Service
}

func NewGenerateReplenishmentHandler(svc replenishmentservice.Service) *GenerateReplenishmentHandler {
	return &GenerateReplenishmentHandler{replenishment: svc}
}

func (h *GenerateReplenishmentHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	result, err := h.replenishment.Generate(ctx)
	if err != nil {
		return fmt.Errorf("replenishment generation failed: %w", err)
	}

	if result.TasksCreated > 0 {
		logger.Info("Scheduled replenishment run", map[string]interface{}{
			"tasks_created": result.TasksCreated,
		})
	}
	return nil
}
