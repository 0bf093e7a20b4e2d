package main

import (
	"github.com/hibiken/asynq"

	"nexwms-backend/internal/infrastructure/queue/handlers"
	"nexwms-backend/internal/shared"
	"nexwms-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	abcAnalysis      *handlers.ABCAnalysisHandler
	refreshDashboard *handlers.RefreshDashboardHandler

	wavePlan              *handlers.WavePlanHandler
	generateReplenishment *handlers.GenerateReplenishmentHandler

	generateCycleCounts *handlers.GenerateCycleCountsHandler
	autoReplenish       *handlers.AutoReplenishHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		abcAnalysis:      handlers.NewABCAnalysisHandler(c.AnalyticsService),
		refreshDashboard: handlers.NewRefreshDashboardHandler(c.AnalyticsService),

		wavePlan:              handlers.NewWavePlanHandler(c.OrderService),
		generateReplenishment: handlers.NewGenerateReplenishmentHandler(c.ReplenishmentService),

		generateCycleCounts: handlers.NewGenerateCycleCountsHandler(c.CountingService),
		autoReplenish:       handlers.NewAutoReplenishHandler(c.PurchasingService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	// Analytics
	mux.HandleFunc(shared.TypeRunABCAnalysis, h.abcAnalysis.ProcessTask)
	mux.HandleFunc(shared.TypeRefreshDashboardStats, h.refreshDashboard.ProcessTask)

	// Fulfillment
	mux.HandleFunc(shared.TypeGenerateWavePlan, h.wavePlan.ProcessTask)
	mux.HandleFunc(shared.TypeGenerateReplenishment, h.generateReplenishment.ProcessTask)

	// Stock upkeep
	mux.HandleFunc(shared.TypeGenerateCycleCounts, h.generateCycleCounts.ProcessTask)
	mux.HandleFunc(shared.TypeAutoReplenishPurchasing, h.autoReplenish.ProcessTask)
}
