package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogmodel "nexwms-backend/internal/domains/catalog/model"
	"nexwms-backend/internal/domains/inventory/model"
	"nexwms-backend/internal/domains/inventory/service"
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
	case model.IsNoStockError(err):
		response.ErrorResponse(c, http.StatusConflict, "NO_STOCK", err.Error())
	case model.IsConflictError(err):
		response.Conflict(c, err.Error())
	case model.IsSerialError(err):
		response.ErrorResponse(c, http.StatusBadRequest, "SERIAL_ERROR", err.Error())
	case model.IsValidationError(err):
		response.BadRequest(c, err.Error())
	default:
		response.InternalServerError(c, err.Error())
	}
}

// Receive books stock in
// POST /api/v1/inventories/receive
func (h *Handler) Receive(c *gin.Context) {
	var req model.ReceiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	inv, err := h.svc.Receive(c.Request.Context(), req, middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"id":      inv.ID,
		"new_qty": inv.Quantity,
	})
}

// PickBlind decrements a known row (scanner-driven pick)
// POST /api/v1/inventories/:id/pick
func (h *Handler) PickBlind(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid inventory id")
		return
	}

	var req model.PickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	inv, err := h.svc.PickBlind(c.Request.Context(), id, req.Quantity, middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, inv)
}

// Move relocates stock between locations
// POST /api/v1/inventories/move
func (h *Handler) Move(c *gin.Context) {
	var req model.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.svc.Move(c.Request.Context(), req, middleware.Actor(c)); err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "moved " + strconv.Itoa(req.Quantity) + " x " + req.SKU + " from " + req.Source + " to " + req.Dest,
	})
}

// Adjust overwrites quantity after a recount (supervisor only)
// POST /api/v1/inventories/:id/adjust
func (h *Handler) Adjust(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid inventory id")
		return
	}

	var req model.AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	inv, delta, err := h.svc.Adjust(c.Request.Context(), id, req, middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"inventory": inv,
		"delta":     delta,
	})
}

// AssignLot re-lots a row, merging when the target lot already exists
// POST /api/v1/inventories/:id/assign-lot
func (h *Handler) AssignLot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid inventory id")
		return
	}

	var req model.AssignLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	inv, merged, err := h.svc.AssignLot(c.Request.Context(), id, req, middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"inventory": inv,
		"merged":    merged,
	})
}

// Get returns one stock row
// GET /api/v1/inventories/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid inventory id")
		return
	}

	inv, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, inv)
}

// List returns stock rows with optional filters
// GET /api/v1/inventories?sku=&location=&status=&page=&limit=
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if page < 1 {
		page = 1
	}

	filter := model.ListFilter{
		SKU:          c.Query("sku"),
		LocationCode: c.Query("location"),
		Status:       c.Query("status"),
		Offset:       (page - 1) * limit,
		Limit:        limit,
	}

	invs, total, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, invs, &response.Meta{
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

// ListJournal returns audit entries, newest first
// GET /api/v1/inventories/journal?sku=&action=&since=&page=&limit=
func (h *Handler) ListJournal(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if page < 1 {
		page = 1
	}

	filter := model.JournalFilter{
		SKU:    c.Query("sku"),
		Action: c.Query("action"),
		Offset: (page - 1) * limit,
		Limit:  limit,
	}
	if sinceStr := c.Query("since"); sinceStr != "" {
		since, err := time.Parse(time.RFC3339, sinceStr)
		if err != nil {
			response.BadRequest(c, "invalid since timestamp, expected RFC3339")
			return
		}
		filter.Since = &since
	}

	entries, total, err := h.svc.ListJournal(c.Request.Context(), filter)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, entries, &response.Meta{
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

// SuggestPutaway recommends a putaway location for a SKU
// GET /api/v1/inventories/suggest-location?sku=
func (h *Handler) SuggestPutaway(c *gin.Context) {
	sku := c.Query("sku")
	if sku == "" {
		response.BadRequest(c, "sku is required")
		return
	}

	code, err := h.svc.SuggestPutaway(c.Request.Context(), sku)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"location_code": code})
}

// ItemLabel streams the printable ZPL for a stock row
// GET /api/v1/inventories/:id/label
func (h *Handler) ItemLabel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid inventory id")
		return
	}

	zpl, err := h.svc.ItemLabel(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/plain", zpl)
}
