package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogmodel "nexwms-backend/internal/domains/catalog/model"
	invmodel "nexwms-backend/internal/domains/inventory/model"
	"nexwms-backend/internal/domains/replenishment/model"
	"nexwms-backend/internal/domains/replenishment/service"
	"nexwms-backend/internal/shared/middleware"
	"nexwms-backend/internal/shared/response"
)

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

func writeError(c *gin.Context, err error) {
	switch {
	case model.IsNotFoundError(err), catalogmodel.IsNotFoundError(err):
		response.NotFound(c, err.Error())
	case model.IsAlreadyProcessedError(err):
		response.Conflict(c, err.Error())
	case invmodel.IsNoStockError(err):
		response.ErrorResponse(c, http.StatusConflict, "NO_STOCK", err.Error())
	case model.IsValidationError(err):
		response.BadRequest(c, err.Error())
	default:
		response.InternalServerError(c, err.Error())
	}
}

// UpsertConfig creates or updates a pick-face configuration (supervisor only)
// PUT /api/v1/replenishment/configs
func (h *Handler) UpsertConfig(c *gin.Context) {
	var req model.UpsertConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	cfg, err := h.svc.UpsertConfig(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cfg)
}

// ListConfigs returns all pick-face configurations
// GET /api/v1/replenishment/configs
func (h *Handler) ListConfigs(c *gin.Context) {
	configs, err := h.svc.ListConfigs(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.Success(c, http.StatusOK, configs)
}

// Generate scans pick faces and creates move tasks
// POST /api/v1/replenishment/generate
func (h *Handler) Generate(c *gin.Context) {
	result, err := h.svc.Generate(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Complete executes the stock move for one task
// POST /api/v1/replenishment/tasks/:id/complete
func (h *Handler) Complete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid task id")
		return
	}

	task, err := h.svc.Complete(c.Request.Context(), id, middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, task)
}

// ListTasks returns move tasks, newest first
// GET /api/v1/replenishment/tasks?status=&page=&limit=
func (h *Handler) ListTasks(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}

	tasks, total, err := h.svc.ListTasks(c.Request.Context(), c.Query("status"), (page-1)*limit, limit)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, tasks, &response.Meta{
		Page:  page,
		Limit: limit,
		Total: total,
	})
}
