package handler

import (
	"context"
	"net/http"

	"campaign-server/internal/apierrors"
	"campaign-server/internal/authz"
	"campaign-server/internal/observability"
	"campaign-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ActorResolver resolves principals for whoami and explain
type ActorResolver interface {
	Resolve(ctx context.Context, p authz.Principal) authz.Actor
	ResolveCompanyID(ctx context.Context, principalID uuid.UUID) *uuid.UUID
	IsCompanyAdmin(ctx context.Context, principalID uuid.UUID) bool
}

type Handler struct {
	engine   *authz.Engine
	resolver ActorResolver
	logger   *observability.Logger
}

func New(engine *authz.Engine, resolver ActorResolver, logger *observability.Logger) Handler {
	return Handler{
		engine:   engine,
		resolver: resolver,
		logger:   logger,
	}
}

// ExplainRequest describes the decision to explain. Principal fields are
// optional and default to the caller.
type ExplainRequest struct {
	PrincipalID    string          `json:"principal_id" binding:"omitempty,uuid"`
	PrincipalEmail string          `json:"principal_email" binding:"omitempty,email"`
	Entity         string          `json:"entity" binding:"required"`
	Operation      string          `json:"operation" binding:"required,oneof=read insert update delete"`
	Resource       ResourceRequest `json:"resource"`
}

// ResourceRequest is the target row of an explained decision
type ResourceRequest struct {
	ID               string         `json:"id" binding:"omitempty,uuid"`
	OwnerID          string         `json:"owner_id" binding:"omitempty,uuid"`
	CompanyID        string         `json:"company_id" binding:"omitempty,uuid"`
	TargetRole       string         `json:"target_role" binding:"omitempty,oneof=user admin super_admin"`
	Change           *ChangeRequest `json:"change"`
	AccountIDChanged bool           `json:"account_id_changed"`
	CampaignOwnerID  string         `json:"campaign_owner_id" binding:"omitempty,uuid"`
}

// ChangeRequest is a requested profile role and company
type ChangeRequest struct {
	Role      string `json:"role" binding:"required,oneof=user admin super_admin"`
	CompanyID string `json:"company_id" binding:"omitempty,uuid"`
}

// ExplainResponse is the decision and every rule evaluated for it
type ExplainResponse struct {
	Actor    authz.Actor            `json:"actor"`
	Decision authz.Decision         `json:"decision"`
	Rules    []authz.RuleEvaluation `json:"rules"`
}

// WhoAmIResponse is the actor resolved for the request next to a fresh
// lookup of the stored profile. They differ when the profile changed
// mid-request.
type WhoAmIResponse struct {
	authz.Actor
	StoredCompanyID    *uuid.UUID `json:"stored_company_id"`
	StoredCompanyAdmin bool       `json:"stored_company_admin"`
}

// HandleWhoAmI returns the caller's resolved role and company
func (h *Handler) HandleWhoAmI(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, WhoAmIResponse{
		Actor:              actor,
		StoredCompanyID:    h.resolver.ResolveCompanyID(ctx, actor.ID),
		StoredCompanyAdmin: h.resolver.IsCompanyAdmin(ctx, actor.ID),
	})
}

// HandleExplain evaluates a decision rule by rule. Super admins only.
func (h *Handler) HandleExplain(c *gin.Context) {
	ctx := c.Request.Context()
	caller, ok := apierrors.RequireActor(c)
	if !ok {
		return
	}
	if !caller.SuperAdmin {
		apierrors.Forbidden(c, apierrors.CodePermissionDenied, "Only super admins can explain decisions")
		return
	}

	var req ExplainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}
	if !knownEntity(authz.Entity(req.Entity)) {
		apierrors.BadRequest(c, apierrors.CodeInvalidInput, "Unknown entity")
		return
	}

	actor := caller
	if req.PrincipalID != "" {
		actor = h.resolver.Resolve(ctx, authz.Principal{ID: uuid.MustParse(req.PrincipalID), Email: req.PrincipalEmail})
	}

	op := authz.Operation(req.Operation)
	res := req.Resource.toResource(authz.Entity(req.Entity))

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "explain_actor_id", Value: actor.ID},
		observability.Field{Key: "explain_entity", Value: req.Entity},
		observability.Field{Key: "explain_operation", Value: req.Operation},
	)
	h.logger.Info(ctx, "explaining authorization decision")

	c.JSON(http.StatusOK, ExplainResponse{
		Actor:    actor,
		Decision: h.engine.Decide(actor, op, res),
		Rules:    authz.Explain(actor, op, res),
	})
}

func (r ResourceRequest) toResource(entity authz.Entity) authz.Resource {
	res := authz.Resource{
		Entity:           entity,
		ID:               parseOptional(r.ID),
		OwnerID:          parseOptional(r.OwnerID),
		CompanyID:        optionalPtr(r.CompanyID),
		TargetRole:       store.UserRole(r.TargetRole),
		AccountIDChanged: r.AccountIDChanged,
		CampaignOwnerID:  parseOptional(r.CampaignOwnerID),
	}
	if r.Change != nil {
		res.Change = &authz.ProfileChange{
			Role:      store.UserRole(r.Change.Role),
			CompanyID: optionalPtr(r.Change.CompanyID),
		}
	}
	return res
}

func knownEntity(e authz.Entity) bool {
	for _, known := range authz.Entities {
		if e == known {
			return true
		}
	}
	return false
}

// parseOptional parses an id already validated by binding
func parseOptional(s string) uuid.UUID {
	if s == "" {
		return uuid.Nil
	}
	return uuid.MustParse(s)
}

func optionalPtr(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id := uuid.MustParse(s)
	return &id
}
