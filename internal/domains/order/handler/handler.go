package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogmodel "nexwms-backend/internal/domains/catalog/model"
	invmodel "nexwms-backend/internal/domains/inventory/model"
	"nexwms-backend/internal/domains/order/model"
	"nexwms-backend/internal/domains/order/service"
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
	case model.IsInvalidStateError(err):
		response.Conflict(c, err.Error())
	case model.IsOverPickError(err):
		response.ErrorResponse(c, http.StatusConflict, "OVER_PICK", err.Error())
	case invmodel.IsNoStockError(err):
		response.ErrorResponse(c, http.StatusConflict, "NO_STOCK", err.Error())
	case invmodel.IsSerialError(err), model.IsValidationError(err):
		response.BadRequest(c, err.Error())
	default:
		response.InternalServerError(c, err.Error())
	}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// Create opens a PENDING order
// POST /api/v1/orders
func (h *Handler) Create(c *gin.Context) {
	var req model.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	order, err := h.svc.Create(c.Request.Context(), req, middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, order)
}

// Get returns one order with lines
// GET /api/v1/orders/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	order, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, order)
}

// List returns orders with optional status and hold filters
// GET /api/v1/orders?status=&on_hold=&page=&limit=
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if page < 1 {
		page = 1
	}

	filter := model.ListFilter{
		Status: c.Query("status"),
		Offset: (page - 1) * limit,
		Limit:  limit,
	}
	if v := c.Query("on_hold"); v != "" {
		onHold := v == "true"
		filter.OnHold = &onHold
	}

	orders, total, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, orders, &response.Meta{
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

// Hold toggles wave eligibility (supervisor only)
// POST /api/v1/orders/:id/hold
func (h *Handler) Hold(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req model.HoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	order, err := h.svc.SetHold(c.Request.Context(), id, req.OnHold, middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, order)
}

// Allocate soft-reserves stock for a PENDING order
// POST /api/v1/orders/:id/allocate
func (h *Handler) Allocate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	result, err := h.svc.Allocate(c.Request.Context(), id, middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// PickItem confirms a scan against one order line
// POST /api/v1/orders/:id/pick
func (h *Handler) PickItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req model.PickItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	status, err := h.svc.PickItem(c.Request.Context(), id, req, middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": status})
}

// Pack moves a PICKED order to PACKED
// POST /api/v1/orders/:id/pack
func (h *Handler) Pack(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Pack(c.Request.Context(), id, middleware.Actor(c)); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": model.StatusPacked})
}

// Ship finalizes an order and assigns the tracking number
// POST /api/v1/orders/:id/ship
func (h *Handler) Ship(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	order, err := h.svc.Ship(c.Request.Context(), id, middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, order)
}

// ShortPick reports missing stock found during picking
// POST /api/v1/orders/:id/short-pick
func (h *Handler) ShortPick(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req model.ShortPickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.svc.ShortPick(c.Request.Context(), id, req, middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// WavePlan aggregates a pick list across eligible orders
// POST /api/v1/waves/plan
func (h *Handler) WavePlan(c *gin.Context) {
	var req model.WavePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	plan, err := h.svc.WavePlan(c.Request.Context(), req, middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, plan)
}

// CompleteWave force-picks each order in the wave
// POST /api/v1/waves/complete
func (h *Handler) CompleteWave(c *gin.Context) {
	var req model.WavePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	results, err := h.svc.CompleteWave(c.Request.Context(), req, middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": results})
}

// CreateBatch groups ALLOCATED orders for cluster picking
// POST /api/v1/batches
func (h *Handler) CreateBatch(c *gin.Context) {
	var req model.CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	batch, err := h.svc.CreateBatch(c.Request.Context(), req, middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, batch)
}

// ClusterTasks returns the walk path for a batch
// GET /api/v1/batches/:id/tasks
func (h *Handler) ClusterTasks(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	tasks, err := h.svc.ClusterTasks(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tasks)
}

// PackingSlip streams the printable slip
// GET /api/v1/orders/:id/packing-slip
func (h *Handler) PackingSlip(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	slip, err := h.svc.PackingSlip(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/plain", slip)
}

// ShippingLabel streams the printable ZPL label
// GET /api/v1/orders/:id/shipping-label
func (h *Handler) ShippingLabel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	zpl, err := h.svc.ShippingLabel(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/plain", zpl)
}
