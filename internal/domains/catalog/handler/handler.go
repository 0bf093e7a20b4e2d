package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"nexwms-backend/internal/domains/catalog/model"
	"nexwms-backend/internal/domains/catalog/service"
	"nexwms-backend/internal/shared/response"
)

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

// CreateItem registers a SKU
// POST /api/v1/items
func (h *Handler) CreateItem(c *gin.Context) {
	var req model.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	item, err := h.svc.CreateItem(c.Request.Context(), req)
	if err != nil {
		switch {
		case model.IsDuplicateError(err):
			response.Conflict(c, err.Error())
		default:
			response.BadRequest(c, err.Error())
		}
		return
	}

	response.Success(c, http.StatusCreated, item)
}

// GetItem looks up an item by id or SKU
// GET /api/v1/items/:id
func (h *Handler) GetItem(c *gin.Context) {
	idStr := c.Param("id")

	var item *model.Item
	var err error
	if id, parseErr := uuid.Parse(idStr); parseErr == nil {
		item, err = h.svc.GetItemByID(c.Request.Context(), id)
	} else {
		item, err = h.svc.GetItemBySKU(c.Request.Context(), idStr)
	}

	if err != nil {
		if model.IsNotFoundError(err) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalServerError(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, item)
}

// ListItems lists items with optional search
// GET /api/v1/items?search=&page=&limit=
func (h *Handler) ListItems(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}

	items, total, err := h.svc.ListItems(c.Request.Context(), c.Query("search"), (page-1)*limit, limit)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, items, &response.Meta{
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

// CreateLocation registers a slot
// POST /api/v1/locations
func (h *Handler) CreateLocation(c *gin.Context) {
	var req model.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	loc, err := h.svc.CreateLocation(c.Request.Context(), req)
	if err != nil {
		switch {
		case model.IsDuplicateError(err):
			response.Conflict(c, err.Error())
		default:
			response.BadRequest(c, err.Error())
		}
		return
	}

	response.Success(c, http.StatusCreated, loc)
}

// ListLocations lists slots with optional zone filter
// GET /api/v1/locations?zone=&page=&limit=
func (h *Handler) ListLocations(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if page < 1 {
		page = 1
	}

	locs, total, err := h.svc.ListLocations(c.Request.Context(), c.Query("zone"), (page-1)*limit, limit)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, locs, &response.Meta{
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

// BinLabel streams the printable ZPL for a location
// GET /api/v1/locations/:id/bin-label
func (h *Handler) BinLabel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid location id")
		return
	}

	zpl, err := h.svc.BinLabel(c.Request.Context(), id)
	if err != nil {
		if model.IsNotFoundError(err) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalServerError(c, err.Error())
		return
	}

	c.Data(http.StatusOK, "text/plain", zpl)
}
