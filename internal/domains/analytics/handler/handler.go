package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"nexwms-backend/internal/domains/analytics/service"
	"nexwms-backend/internal/shared/response"
)

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

// RunABC reclassifies every SKU by velocity (supervisor only)
// POST /api/v1/analytics/abc-run?days=30
func (h *Handler) RunABC(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "0"))

	stats, err := h.svc.RunABCAnalysis(c.Request.Context(), days)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// Dashboard returns the operations overview panel
// GET /api/v1/analytics/dashboard
func (h *Handler) Dashboard(c *gin.Context) {
	stats, err := h.svc.DashboardStats(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// Operators returns the productivity leaderboard and hourly pick counts
// GET /api/v1/analytics/operators
func (h *Handler) Operators(c *gin.Context) {
	stats, err := h.svc.OperatorStats(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.Success(c, http.StatusOK, stats)
}
