package handler

import (
	"errors"
	"net/http"

	"campaign-server/internal/apierrors"
	"campaign-server/internal/company/processor"
	"campaign-server/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	processor processor.CompanyProcessor
	logger    *observability.Logger
}

func New(processor processor.CompanyProcessor, logger *observability.Logger) Handler {
	return Handler{processor: processor, logger: logger}
}

type CreateCompanyRequest struct {
	Name      string  `json:"name" binding:"required,max=255"`
	AccountID *string `json:"account_id" binding:"omitempty,max=255"`
}

type UpdateCompanyRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=255"`
	AccountID *string `json:"account_id" binding:"omitempty,max=255"`
}

type CreateAccountIDRequest struct {
	Platform    string `json:"platform" binding:"required,max=50"`
	AccountID   string `json:"account_id" binding:"required,max=255"`
	AccountName string `json:"account_name" binding:"max=255"`
	IsActive    *bool  `json:"is_active"`
}

type UpdateAccountIDRequest struct {
	AccountName *string `json:"account_name" binding:"omitempty,max=255"`
	IsActive    *bool   `json:"is_active"`
}

func (h *Handler) HandleListCompanies(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}

	companies, err := h.processor.ListCompanies(ctx, actor)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, companies)
}

func (h *Handler) HandleGetCompany(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}
	companyID, ok := parseID(c, "company_id")
	if !ok {
		return
	}

	company, err := h.processor.GetCompany(ctx, actor, companyID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *Handler) HandleCreateCompany(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}

	var req CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	company, err := h.processor.CreateCompany(ctx, actor, processor.CreateCompanyParams{
		Name:      req.Name,
		AccountID: req.AccountID,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, company)
}

func (h *Handler) HandleUpdateCompany(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}
	companyID, ok := parseID(c, "company_id")
	if !ok {
		return
	}

	var req UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	company, err := h.processor.UpdateCompany(ctx, actor, companyID, processor.UpdateCompanyParams{
		Name:      req.Name,
		AccountID: req.AccountID,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *Handler) HandleDeleteCompany(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}
	companyID, ok := parseID(c, "company_id")
	if !ok {
		return
	}

	if err := h.processor.DeleteCompany(ctx, actor, companyID); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) HandleListAccountIDs(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}
	companyID, ok := parseID(c, "company_id")
	if !ok {
		return
	}

	accountIDs, err := h.processor.ListAccountIDs(ctx, actor, companyID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, accountIDs)
}

func (h *Handler) HandleCreateAccountID(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}
	companyID, ok := parseID(c, "company_id")
	if !ok {
		return
	}

	var req CreateAccountIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	accountID, err := h.processor.CreateAccountID(ctx, actor, companyID, processor.CreateAccountIDParams{
		Platform:    req.Platform,
		AccountID:   req.AccountID,
		AccountName: req.AccountName,
		IsActive:    isActive,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, accountID)
}

func (h *Handler) HandleUpdateAccountID(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}
	companyID, ok := parseID(c, "company_id")
	if !ok {
		return
	}
	id, ok := parseID(c, "account_id_id")
	if !ok {
		return
	}

	var req UpdateAccountIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	accountID, err := h.processor.UpdateAccountID(ctx, actor, companyID, id, processor.UpdateAccountIDParams{
		AccountName: req.AccountName,
		IsActive:    req.IsActive,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, accountID)
}

func (h *Handler) HandleDeleteAccountID(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}
	companyID, ok := parseID(c, "company_id")
	if !ok {
		return
	}
	id, ok := parseID(c, "account_id_id")
	if !ok {
		return
	}

	if err := h.processor.DeleteAccountID(ctx, actor, companyID, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) HandleListUnassignedUsers(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}

	users, err := h.processor.ListUnassignedUsers(ctx, actor)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
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
	case errors.Is(err, processor.ErrCompanyNotFound):
		apierrors.NotFound(c, "Company not found")
	case errors.Is(err, processor.ErrAccountIDNotFound):
		apierrors.NotFound(c, "Account id not found")
	default:
		apierrors.RespondWithError(c, err)
	}
}
