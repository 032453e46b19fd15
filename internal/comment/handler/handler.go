package handler

import (
	"errors"
	"net/http"

	"campaign-server/internal/apierrors"
	"campaign-server/internal/comment/processor"
	"campaign-server/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	processor processor.CommentProcessor
	logger    *observability.Logger
}

func New(processor processor.CommentProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// CreateCommentRequest represents the HTTP request for posting a comment
type CreateCommentRequest struct {
	ParentCommentID string `json:"parent_comment_id" binding:"omitempty,uuid"`
	Body            string `json:"body" binding:"required,min=1,max=5000"`
}

// UpdateCommentRequest represents the HTTP request for editing a comment
type UpdateCommentRequest struct {
	Body string `json:"body" binding:"required,min=1,max=5000"`
}

func (h *Handler) HandleListComments(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}
	campaignID, ok := parseID(c, "campaign_id")
	if !ok {
		return
	}

	threads, err := h.processor.ListComments(ctx, actor, campaignID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, threads)
}

func (h *Handler) HandleCreateComment(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}
	campaignID, ok := parseID(c, "campaign_id")
	if !ok {
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	var parentID *uuid.UUID
	if req.ParentCommentID != "" {
		id := uuid.MustParse(req.ParentCommentID)
		parentID = &id
	}

	comment, err := h.processor.CreateComment(ctx, actor, campaignID, parentID, req.Body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *Handler) HandleUpdateComment(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}
	campaignID, ok := parseID(c, "campaign_id")
	if !ok {
		return
	}
	commentID, ok := parseID(c, "comment_id")
	if !ok {
		return
	}

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	comment, err := h.processor.UpdateComment(ctx, actor, campaignID, commentID, req.Body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *Handler) HandleDeleteComment(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}
	campaignID, ok := parseID(c, "campaign_id")
	if !ok {
		return
	}
	commentID, ok := parseID(c, "comment_id")
	if !ok {
		return
	}

	if err := h.processor.DeleteComment(ctx, actor, campaignID, commentID); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		apierrors.InvalidID(c, name)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, processor.ErrCampaignNotFound):
		apierrors.NotFound(c, "Campaign not found")
	case errors.Is(err, processor.ErrCommentNotFound):
		apierrors.NotFound(c, "Comment not found")
	case errors.Is(err, processor.ErrParentNotFound):
		apierrors.BadRequest(c, apierrors.CodeInvalidInput, "parent_comment_id must be a comment on this campaign")
	default:
		apierrors.RespondWithError(c, err)
	}
}
