package handler

import (
	"errors"
	"net/http"

	"campaign-server/internal/apierrors"
	"campaign-server/internal/observability"
	"campaign-server/internal/store"
	"campaign-server/internal/team/processor"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	processor processor.TeamProcessor
	logger    *observability.Logger
}

func New(processor processor.TeamProcessor, logger *observability.Logger) Handler {
	return Handler{processor: processor, logger: logger}
}

type InviteMemberRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Name      string `json:"name" binding:"required,max=255"`
	Role      string `json:"role" binding:"required,oneof=user admin"`
	CompanyID string `json:"company_id" binding:"omitempty,uuid"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user admin"`
}

// AssignMemberRequest assigns an unassigned profile. CompanyID defaults to
// the caller's company and Role to user.
type AssignMemberRequest struct {
	CompanyID string `json:"company_id" binding:"omitempty,uuid"`
	Role      string `json:"role" binding:"omitempty,oneof=user admin"`
}

type UpdateMemberRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// HandleListMembers lists the caller's company members. Super admins may
// pass ?company_id=.
func (h *Handler) HandleListMembers(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}

	var companyID *uuid.UUID
	if raw := c.Query("company_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			apierrors.InvalidID(c, "company_id")
			return
		}
		companyID = &parsed
	}

	members, err := h.processor.ListMembers(ctx, actor, companyID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

func (h *Handler) HandleInviteMember(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}

	var req InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	params := processor.InviteParams{
		Email: req.Email,
		Name:  req.Name,
		Role:  store.UserRole(req.Role),
	}
	if req.CompanyID != "" {
		companyID := uuid.MustParse(req.CompanyID)
		params.CompanyID = &companyID
	}

	result, err := h.processor.Invite(ctx, actor, params)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *Handler) HandleUpdateRole(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		apierrors.InvalidID(c, "user_id")
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	member, err := h.processor.UpdateRole(ctx, actor, userID, store.UserRole(req.Role))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *Handler) HandleAssignMember(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		apierrors.InvalidID(c, "user_id")
		return
	}

	var req AssignMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	params := processor.AssignParams{Role: store.UserRoleUser}
	if req.Role != "" {
		params.Role = store.UserRole(req.Role)
	}
	if req.CompanyID != "" {
		companyID := uuid.MustParse(req.CompanyID)
		params.CompanyID = &companyID
	}

	member, err := h.processor.Assign(ctx, actor, userID, params)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *Handler) HandleUpdateMember(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		apierrors.InvalidID(c, "user_id")
		return
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	member, err := h.processor.UpdateName(ctx, actor, userID, req.Name)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *Handler) HandleRemoveMember(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		apierrors.InvalidID(c, "user_id")
		return
	}

	if _, err := h.processor.Remove(ctx, actor, userID); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, processor.ErrMemberNotFound):
		apierrors.NotFound(c, "Member not found")
	case errors.Is(err, processor.ErrEmailAlreadyExists):
		apierrors.Conflict(c, apierrors.CodeEmailExists, "Email already exists")
	case errors.Is(err, processor.ErrNoCompany):
		apierrors.BadRequest(c, apierrors.CodeInvalidInput, "You must belong to a company to manage members")
	case errors.Is(err, processor.ErrInvalidRole):
		apierrors.BadRequest(c, apierrors.CodeInvalidInput, "role must be user or admin")
	case errors.Is(err, processor.ErrMembershipChanged):
		apierrors.Conflict(c, apierrors.CodeConflict, "Member changed company, please retry")
	case errors.Is(err, processor.ErrAlreadyAssigned):
		apierrors.Conflict(c, apierrors.CodeConflict, "Member already belongs to a company")
	case errors.Is(err, processor.ErrCompanyNotFound):
		apierrors.NotFound(c, "Company not found")
	default:
		apierrors.RespondWithError(c, err)
	}
}
