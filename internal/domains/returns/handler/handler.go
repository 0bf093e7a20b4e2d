package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogmodel "nexwms-backend/internal/domains/catalog/model"
	"nexwms-backend/internal/domains/returns/model"
	"nexwms-backend/internal/domains/returns/service"
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
	default:
		response.InternalServerError(c, err.Error())
	}
}

// Create opens a return authorization
// POST /api/v1/rmas
func (h *Handler) Create(c *gin.Context) {
	var req model.CreateRMARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	rma, err := h.svc.Create(c.Request.Context(), req, middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, rma)
}

// Get returns one RMA with lines
// GET /api/v1/rmas/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid RMA id")
		return
	}

	rma, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rma)
}

// List returns RMAs, newest first
// GET /api/v1/rmas?status=&page=&limit=
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}

	rmas, total, err := h.svc.List(c.Request.Context(), c.Query("status"), (page-1)*limit, limit)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, rmas, &response.Meta{
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

// ProcessReceipt restocks the return into QUARANTINE
// POST /api/v1/rmas/:id/receive
func (h *Handler) ProcessReceipt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid RMA id")
		return
	}

	var req model.ProcessReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.BadRequest(c, err.Error())
		return
	}

	rma, err := h.svc.ProcessReceipt(c.Request.Context(), id, req.LocationCode, middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rma)
}
