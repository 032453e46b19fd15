package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"campaign-server/internal/apierrors"
	"campaign-server/internal/campaign/processor"
	"campaign-server/internal/observability"
	"campaign-server/internal/workflow"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	processor processor.CampaignProcessor
	logger    *observability.Logger
}

func New(processor processor.CampaignProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// CreateCampaignRequest represents the HTTP request for creating a campaign
type CreateCampaignRequest struct {
	ClientID  string     `json:"client_id" binding:"omitempty,uuid"`
	Name      string     `json:"name" binding:"required,min=1,max=255"`
	Audiences []string   `json:"audiences" binding:"omitempty,dive,min=1,max=255"`
	Platforms []string   `json:"platforms" binding:"omitempty,dive,min=1,max=50"`
	Budget    float64    `json:"budget" binding:"gte=0"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Notes     string     `json:"notes" binding:"max=2000"`
}

// UpdateCampaignRequest represents the HTTP request for updating a campaign
type UpdateCampaignRequest struct {
	Name      *string    `json:"name" binding:"omitempty,min=1,max=255"`
	Audiences []string   `json:"audiences" binding:"omitempty,dive,min=1,max=255"`
	Platforms []string   `json:"platforms" binding:"omitempty,dive,min=1,max=50"`
	Budget    *float64   `json:"budget" binding:"omitempty,gte=0"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// TransitionRequest represents a workflow status change
type TransitionRequest struct {
	ToStatus string `json:"to_status" binding:"required"`
	Notes    string `json:"notes" binding:"max=2000"`
}

func (h *Handler) HandleCreateCampaign(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}

	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	params := processor.CreateCampaignParams{
		Name:      req.Name,
		Audiences: req.Audiences,
		Platforms: req.Platforms,
		Budget:    req.Budget,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Notes:     req.Notes,
	}
	if req.ClientID != "" {
		clientID := uuid.MustParse(req.ClientID)
		params.ClientID = &clientID
	}

	campaign, err := h.processor.CreateCampaign(ctx, actor, params)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, campaign)
}

// HandleListCampaigns lists visible campaigns. Supports ?status= and
// ?include_archived=true.
func (h *Handler) HandleListCampaigns(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}

	params := processor.ListCampaignsParams{}
	if raw := c.Query("include_archived"); raw != "" {
		includeArchived, err := strconv.ParseBool(raw)
		if err != nil {
			apierrors.BadRequest(c, apierrors.CodeInvalidInput, "include_archived must be a boolean")
			return
		}
		params.IncludeArchived = includeArchived
	}
	if status := c.Query("status"); status != "" {
		if !workflow.IsValidStatus(status) {
			apierrors.BadRequest(c, apierrors.CodeInvalidInput, "Unknown campaign status")
			return
		}
		params.Status = status
	}

	campaigns, err := h.processor.ListCampaigns(ctx, actor, params)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, campaigns)
}

func (h *Handler) HandleGetCampaign(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}
	campaignID, ok := parseCampaignID(c)
	if !ok {
		return
	}

	campaign, err := h.processor.GetCampaign(ctx, actor, campaignID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, campaign)
}

func (h *Handler) HandleUpdateCampaign(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}
	campaignID, ok := parseCampaignID(c)
	if !ok {
		return
	}

	var req UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	campaign, err := h.processor.UpdateCampaign(ctx, actor, campaignID, processor.UpdateCampaignParams{
		Name:      req.Name,
		Audiences: req.Audiences,
		Platforms: req.Platforms,
		Budget:    req.Budget,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, campaign)
}

func (h *Handler) HandleTransitionCampaign(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}
	campaignID, ok := parseCampaignID(c)
	if !ok {
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	campaign, err := h.processor.TransitionCampaign(ctx, actor, campaignID, req.ToStatus, req.Notes)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, campaign)
}

func (h *Handler) HandleGetNextStatuses(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}
	campaignID, ok := parseCampaignID(c)
	if !ok {
		return
	}

	statuses, err := h.processor.NextStatuses(ctx, actor, campaignID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"next_statuses": statuses})
}

func (h *Handler) HandleArchiveCampaign(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}
	campaignID, ok := parseCampaignID(c)
	if !ok {
		return
	}

	if err := h.processor.ArchiveCampaign(ctx, actor, campaignID); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) HandleGetWorkflowHistory(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}
	campaignID, ok := parseCampaignID(c)
	if !ok {
		return
	}

	history, err := h.processor.GetWorkflowHistory(ctx, actor, campaignID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

func (h *Handler) HandleGetActivityLog(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}
	campaignID, ok := parseCampaignID(c)
	if !ok {
		return
	}

	activity, err := h.processor.GetActivityLog(ctx, actor, campaignID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, activity)
}

func parseCampaignID(c *gin.Context) (uuid.UUID, bool) {
	campaignID, err := uuid.Parse(c.Param("campaign_id"))
	if err != nil {
		apierrors.InvalidID(c, "campaign_id")
		return uuid.Nil, false
	}
	return campaignID, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, processor.ErrCampaignNotFound):
		apierrors.NotFound(c, "Campaign not found")
	case errors.Is(err, processor.ErrOwnerNotFound):
		apierrors.BadRequest(c, apierrors.CodeInvalidInput, "client_id does not exist")
	case errors.Is(err, processor.ErrInvalidDateRange):
		apierrors.BadRequest(c, apierrors.CodeInvalidInput, "end_date must not be before start_date")
	case errors.Is(err, processor.ErrCampaignArchived):
		apierrors.Conflict(c, apierrors.CodeConflict, "Campaign is archived")
	case errors.Is(err, workflow.ErrUnknownStatus):
		apierrors.BadRequest(c, apierrors.CodeInvalidInput, "Unknown campaign status")
	case errors.Is(err, workflow.ErrInvalidTransition):
		apierrors.Conflict(c, apierrors.CodeInvalidTransition, err.Error())
	default:
		apierrors.RespondWithError(c, err)
	}
}
