package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogmodel "nexwms-backend/internal/domains/catalog/model"
	invmodel "nexwms-backend/internal/domains/inventory/model"
	"nexwms-backend/internal/domains/purchasing/model"
	"nexwms-backend/internal/domains/purchasing/service"
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
	case model.IsEmptyError(err):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, "EMPTY", err.Error())
	case invmodel.IsValidationError(err):
		response.BadRequest(c, err.Error())
	default:
		response.InternalServerError(c, err.Error())
	}
}

// CreateSupplier registers a vendor
// POST /api/v1/suppliers
func (h *Handler) CreateSupplier(c *gin.Context) {
	var req model.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	supplier, err := h.svc.CreateSupplier(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, supplier)
}

// ListSuppliers returns all vendors
// GET /api/v1/suppliers
func (h *Handler) ListSuppliers(c *gin.Context) {
	suppliers, err := h.svc.ListSuppliers(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.Success(c, http.StatusOK, suppliers)
}

// CreatePO raises a DRAFT purchase order
// POST /api/v1/purchase-orders
func (h *Handler) CreatePO(c *gin.Context) {
	var req model.CreatePORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	po, err := h.svc.CreatePO(c.Request.Context(), req, middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, po)
}

// GetPO returns one purchase order
// GET /api/v1/purchase-orders/:id
func (h *Handler) GetPO(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid purchase order id")
		return
	}

	po, err := h.svc.GetPO(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, po)
}

// ListPOs returns purchase orders, newest first
// GET /api/v1/purchase-orders?status=&page=&limit=
func (h *Handler) ListPOs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}

	pos, total, err := h.svc.ListPOs(c.Request.Context(), c.Query("status"), (page-1)*limit, limit)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, pos, &response.Meta{
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

// ReceiveItem books a delivery against one PO line
// POST /api/v1/purchase-orders/:id/receive
func (h *Handler) ReceiveItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid purchase order id")
		return
	}

	var req model.ReceivePOItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.svc.ReceivePOItem(c.Request.Context(), id, req, middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// AutoReplenish raises a DRAFT order for all low stock (supervisor only)
// POST /api/v1/purchase-orders/auto-replenish
func (h *Handler) AutoReplenish(c *gin.Context) {
	result, err := h.svc.AutoReplenish(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// Document streams the printable purchase order
// GET /api/v1/purchase-orders/:id/document
func (h *Handler) Document(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid purchase order id")
		return
	}

	doc, err := h.svc.Document(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/plain", doc)
}
