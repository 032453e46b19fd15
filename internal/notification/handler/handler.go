package handler

import (
	"errors"
	"net/http"
	"strconv"

	"campaign-server/internal/apierrors"
	"campaign-server/internal/notification/processor"
	"campaign-server/internal/observability"
	"campaign-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	processor processor.NotificationProcessor
	logger    *observability.Logger
}

func New(processor processor.NotificationProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// CreateNotificationRequest represents the HTTP request for sending a notification
type CreateNotificationRequest struct {
	UserID     string `json:"user_id" binding:"required,uuid"`
	Title      string `json:"title" binding:"required,min=1,max=255"`
	Message    string `json:"message" binding:"max=2000"`
	Kind       string `json:"kind" binding:"omitempty,oneof=info campaign_status_changed comment invite"`
	CampaignID string `json:"campaign_id" binding:"omitempty,uuid"`
}

// HandleListNotifications lists the caller's notifications. Supports
// ?unread=true.
func (h *Handler) HandleListNotifications(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}

	unreadOnly := false
	if raw := c.Query("unread"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			apierrors.BadRequest(c, apierrors.CodeInvalidInput, "unread must be a boolean")
			return
		}
		unreadOnly = parsed
	}

	notifications, err := h.processor.ListNotifications(ctx, actor, unreadOnly)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *Handler) HandleCreateNotification(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}

	var req CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	params := processor.CreateNotificationParams{
		RecipientID: uuid.MustParse(req.UserID),
		Title:       req.Title,
		Message:     req.Message,
		Kind:        req.Kind,
	}
	if params.Kind == "" {
		params.Kind = store.NotificationKindInfo
	}
	if req.CampaignID != "" {
		campaignID := uuid.MustParse(req.CampaignID)
		params.CampaignID = &campaignID
	}

	notification, err := h.processor.CreateNotification(ctx, actor, params)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, notification)
}

func (h *Handler) HandleMarkRead(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}
	notificationID, ok := parseNotificationID(c)
	if !ok {
		return
	}

	notification, err := h.processor.MarkRead(ctx, actor, notificationID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, notification)
}

func (h *Handler) HandleMarkAllRead(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}

	count, err := h.processor.MarkAllRead(ctx, actor)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": count})
}

func (h *Handler) HandleDeleteNotification(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}
	notificationID, ok := parseNotificationID(c)
	if !ok {
		return
	}

	if err := h.processor.DeleteNotification(ctx, actor, notificationID); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseNotificationID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("notification_id"))
	if err != nil {
		apierrors.InvalidID(c, "notification_id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, processor.ErrNotificationNotFound):
		apierrors.NotFound(c, "Notification not found")
	case errors.Is(err, processor.ErrRecipientNotFound):
		apierrors.BadRequest(c, apierrors.CodeInvalidInput, "user_id does not exist")
	default:
		apierrors.RespondWithError(c, err)
	}
}
