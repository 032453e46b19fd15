package handler

import (
	"errors"
	"net/http"
	"time"

	"campaign-server/internal/apierrors"
	"campaign-server/internal/audience/processor"
	"campaign-server/internal/observability"
	"campaign-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	processor processor.AudienceProcessor
	logger    *observability.Logger
}

func New(processor processor.AudienceProcessor, logger *observability.Logger) Handler {
	return Handler{processor: processor, logger: logger}
}

type CreateRequestRequest struct {
	Name      string     `json:"name" binding:"required,min=1,max=255"`
	Audiences []string   `json:"audiences" binding:"required,min=1,dive,min=1,max=255"`
	Platforms []string   `json:"platforms" binding:"omitempty,dive,min=1,max=50"`
	Budget    float64    `json:"budget" binding:"gte=0"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Notes     string     `json:"notes" binding:"max=2000"`
}

type UpdateRequestRequest struct {
	Name      *string    `json:"name" binding:"omitempty,min=1,max=255"`
	Audiences []string   `json:"audiences" binding:"omitempty,min=1,dive,min=1,max=255"`
	Platforms []string   `json:"platforms" binding:"omitempty,dive,min=1,max=50"`
	Budget    *float64   `json:"budget" binding:"omitempty,gte=0"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Notes     *string    `json:"notes" binding:"omitempty,max=2000"`
}

type ReviewRequestRequest struct {
	Status string `json:"status" binding:"required,oneof=reviewed approved rejected"`
	Notes  string `json:"notes" binding:"max=2000"`
}

func (h *Handler) HandleCreateRequest(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}

	var req CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	request, err := h.processor.CreateRequest(ctx, actor, processor.CreateRequestParams{
		Name:      req.Name,
		Audiences: req.Audiences,
		Platforms: req.Platforms,
		Budget:    req.Budget,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Notes:     req.Notes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, request)
}

// HandleListRequests lists visible requests. Supports ?status=.
func (h *Handler) HandleListRequests(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}

	var status *string
	if raw := c.Query("status"); raw != "" {
		switch raw {
		case store.AudienceRequestStatusPending, store.AudienceRequestStatusReviewed,
			store.AudienceRequestStatusApproved, store.AudienceRequestStatusRejected:
			status = &raw
		default:
			apierrors.BadRequest(c, apierrors.CodeInvalidInput, "Unknown audience request status")
			return
		}
	}

	requests, err := h.processor.ListRequests(ctx, actor, status)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (h *Handler) HandleGetRequest(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}
	requestID, ok := parseRequestID(c)
	if !ok {
		return
	}

	request, err := h.processor.GetRequest(ctx, actor, requestID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

func (h *Handler) HandleUpdateRequest(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}
	requestID, ok := parseRequestID(c)
	if !ok {
		return
	}

	var req UpdateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	request, err := h.processor.UpdateRequest(ctx, actor, requestID, processor.UpdateRequestParams{
		Name:      req.Name,
		Audiences: req.Audiences,
		Platforms: req.Platforms,
		Budget:    req.Budget,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Notes:     req.Notes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

func (h *Handler) HandleReviewRequest(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}
	requestID, ok := parseRequestID(c)
	if !ok {
		return
	}

	var req ReviewRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	result, err := h.processor.ReviewRequest(ctx, actor, requestID, req.Status, req.Notes)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) HandleDeleteRequest(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}
	requestID, ok := parseRequestID(c)
	if !ok {
		return
	}

	if err := h.processor.DeleteRequest(ctx, actor, requestID); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseRequestID(c *gin.Context) (uuid.UUID, bool) {
	requestID, err := uuid.Parse(c.Param("request_id"))
	if err != nil {
		apierrors.InvalidID(c, "request_id")
		return uuid.Nil, false
	}
	return requestID, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, processor.ErrRequestNotFound):
		apierrors.NotFound(c, "Audience request not found")
	case errors.Is(err, processor.ErrRequestNotPending):
		apierrors.Conflict(c, apierrors.CodeConflict, "Only pending requests can be edited")
	case errors.Is(err, processor.ErrRequestAlreadyClosed):
		apierrors.Conflict(c, apierrors.CodeConflict, "Request was already approved or rejected")
	case errors.Is(err, processor.ErrInvalidReviewStatus):
		apierrors.BadRequest(c, apierrors.CodeInvalidInput, "status must be reviewed, approved or rejected")
	case errors.Is(err, processor.ErrInvalidDateRange):
		apierrors.BadRequest(c, apierrors.CodeInvalidInput, "end_date must not be before start_date")
	default:
		apierrors.RespondWithError(c, err)
	}
}
