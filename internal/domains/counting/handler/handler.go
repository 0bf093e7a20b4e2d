package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"nexwms-backend/internal/domains/counting/model"
	"nexwms-backend/internal/domains/counting/service"
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
	case model.IsNotFoundError(err):
		response.NotFound(c, err.Error())
	case model.IsAlreadyProcessedError(err):
		response.Conflict(c, err.Error())
	case model.IsEmptyError(err):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, "EMPTY", err.Error())
	default:
		response.InternalServerError(c, err.Error())
	}
}

// CreateRandom samples stocked bins into a spot-check session
// POST /api/v1/cycle-counts
func (h *Handler) CreateRandom(c *gin.Context) {
	var req model.CreateRandomCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session, err := h.svc.CreateRandomCount(c.Request.Context(), req, middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, session)
}

// CreateForLocation counts everything in one bin
// POST /api/v1/cycle-counts/location
func (h *Handler) CreateForLocation(c *gin.Context) {
	var req model.CreateLocationCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session, err := h.svc.CreateLocationCount(c.Request.Context(), req, middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, session)
}

// SubmitCount records the physical count for a task
// POST /api/v1/cycle-counts/tasks/:id/submit
func (h *Handler) SubmitCount(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid task id")
		return
	}

	var req model.SubmitCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.svc.SubmitCount(c.Request.Context(), id, req, middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// GetSession returns one session with its tasks
// GET /api/v1/cycle-counts/:id
func (h *Handler) GetSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid session id")
		return
	}

	session, err := h.svc.GetSession(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, session)
}

// ListSessions returns sessions, newest first
// GET /api/v1/cycle-counts?status=&page=&limit=
func (h *Handler) ListSessions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}

	sessions, total, err := h.svc.ListSessions(c.Request.Context(), c.Query("status"), (page-1)*limit, limit)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, sessions, &response.Meta{
		Page:  page,
		Limit: limit,
		Total: total,
	})
}
