package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"time"

	"campaign-server/internal/authz"
	"campaign-server/internal/events"
	"campaign-server/internal/observability"
	"campaign-server/internal/store"

	"github.com/google/uuid"
)

// AudienceRequestStore defines the database operations required by
// AudienceProcessor
type AudienceRequestStore interface {
	CreateAudienceRequest(ctx context.Context, params store.CreateAudienceRequestParams) (store.AudienceRequest, error)
	GetAudienceRequestByID(ctx context.Context, requestID uuid.UUID) (store.AudienceRequest, error)
	ListAudienceRequests(ctx context.Context, filter store.AudienceRequestFilter) ([]store.AudienceRequest, error)
	UpdateAudienceRequest(ctx context.Context, params store.UpdateAudienceRequestParams) (store.AudienceRequest, error)
	ReviewAudienceRequest(ctx context.Context, params store.ReviewAudienceRequestParams) (store.AudienceRequest, *store.Campaign, error)
	DeleteAudienceRequest(ctx context.Context, requestID uuid.UUID) error
}

// StatusPublisher announces the campaign created by an approval
type StatusPublisher interface {
	PublishCampaignStatusChanged(ctx context.Context, actor authz.Actor, change events.StatusChange) error
}

var (
	ErrRequestNotFound      = errors.New("audience request not found")
	ErrRequestNotPending    = errors.New("audience request is no longer pending")
	ErrRequestAlreadyClosed = errors.New("audience request was already approved or rejected")
	ErrInvalidReviewStatus  = errors.New("review status must be reviewed, approved or rejected")
	ErrInvalidDateRange     = errors.New("end date must not be before start date")
)

type AudienceProcessor struct {
	store     AudienceRequestStore
	engine    *authz.Engine
	publisher StatusPublisher
	logger    *observability.Logger
}

func New(store AudienceRequestStore, engine *authz.Engine, publisher StatusPublisher, logger *observability.Logger) AudienceProcessor {
	return AudienceProcessor{
		store:     store,
		engine:    engine,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateRequestParams represents a new audience request
type CreateRequestParams struct {
	Name      string
	Audiences []string
	Platforms []string
	Budget    float64
	StartDate *time.Time
	EndDate   *time.Time
	Notes     string
}

// UpdateRequestParams represents an audience request edit. Nil fields are
// unchanged.
type UpdateRequestParams struct {
	Name      *string
	Audiences []string
	Platforms []string
	Budget    *float64
	StartDate *time.Time
	EndDate   *time.Time
	Notes     *string
}

// ReviewResult is the reviewed request and, on approval, the new campaign
type ReviewResult struct {
	Request  store.AudienceRequest `json:"request"`
	Campaign *store.Campaign       `json:"campaign,omitempty"`
}

func (p *AudienceProcessor) CreateRequest(ctx context.Context, actor authz.Actor, params CreateRequestParams) (store.AudienceRequest, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "request_name", Value: params.Name})

	if err := validateDates(params.StartDate, params.EndDate); err != nil {
		return store.AudienceRequest{}, err
	}
	owner := store.User{ID: actor.ID, Email: actor.Email, Role: actor.Role, CompanyID: actor.CompanyID}
	if err := p.engine.Authorize(ctx, actor, authz.OperationInsert, authz.AudienceRequestInsert(owner)); err != nil {
		return store.AudienceRequest{}, err
	}

	request, err := p.store.CreateAudienceRequest(ctx, store.CreateAudienceRequestParams{
		UserID:    actor.ID,
		Name:      params.Name,
		Audiences: params.Audiences,
		Platforms: params.Platforms,
		Budget:    params.Budget,
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
		Notes:     params.Notes,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to create audience request", err)
		return store.AudienceRequest{}, err
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "request_id", Value: request.ID})
	p.logger.Info(ctx, "audience request created")
	return request, nil
}

func (p *AudienceProcessor) GetRequest(ctx context.Context, actor authz.Actor, requestID uuid.UUID) (store.AudienceRequest, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "request_id", Value: requestID})

	request, err := p.store.GetAudienceRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.AudienceRequest{}, ErrRequestNotFound
		}
		p.logger.Error(ctx, "failed to get audience request", err)
		return store.AudienceRequest{}, err
	}
	if err := p.engine.Authorize(ctx, actor, authz.OperationRead, authz.AudienceRequestResource(request)); err != nil {
		return store.AudienceRequest{}, err
	}
	return request, nil
}

// ListRequests returns the caller's requests, plus their company's for
// company admins and all requests for super admins.
func (p *AudienceProcessor) ListRequests(ctx context.Context, actor authz.Actor, status *string) ([]store.AudienceRequest, error) {
	filter := store.AudienceRequestFilter{
		All:    actor.SuperAdmin,
		UserID: actor.ID,
		Status: status,
	}
	if actor.IsCompanyAdmin() {
		filter.CompanyID = actor.CompanyID
	}

	requests, err := p.store.ListAudienceRequests(ctx, filter)
	if err != nil {
		p.logger.Error(ctx, "failed to list audience requests", err)
		return nil, err
	}
	return authz.Filter(p.engine, actor, requests, authz.AudienceRequestResource), nil
}

// UpdateRequest edits a request while it is pending
func (p *AudienceProcessor) UpdateRequest(ctx context.Context, actor authz.Actor, requestID uuid.UUID, params UpdateRequestParams) (store.AudienceRequest, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "request_id", Value: requestID})

	request, err := p.store.UpdateAudienceRequest(ctx, store.UpdateAudienceRequestParams{
		RequestID: requestID,
		Name:      params.Name,
		Audiences: params.Audiences,
		Platforms: params.Platforms,
		Budget:    params.Budget,
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
		Notes:     params.Notes,
		Check: func(current store.AudienceRequest) error {
			if err := p.engine.Authorize(ctx, actor, authz.OperationUpdate, authz.AudienceRequestResource(current)); err != nil {
				return err
			}
			if current.Status != store.AudienceRequestStatusPending {
				return ErrRequestNotPending
			}
			start, end := current.StartDate, current.EndDate
			if params.StartDate != nil {
				start = params.StartDate
			}
			if params.EndDate != nil {
				end = params.EndDate
			}
			return validateDates(start, end)
		},
	})
	if err != nil {
		return store.AudienceRequest{}, p.writeError(ctx, "failed to update audience request", err)
	}
	return request, nil
}

// ReviewRequest records an admin decision. Approval creates a campaign in
// the approved state owned by the requester.
func (p *AudienceProcessor) ReviewRequest(ctx context.Context, actor authz.Actor, requestID uuid.UUID, status, notes string) (ReviewResult, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "request_id", Value: requestID},
		observability.Field{Key: "review_status", Value: status},
	)

	switch status {
	case store.AudienceRequestStatusReviewed, store.AudienceRequestStatusApproved, store.AudienceRequestStatusRejected:
	default:
		return ReviewResult{}, ErrInvalidReviewStatus
	}

	request, campaign, err := p.store.ReviewAudienceRequest(ctx, store.ReviewAudienceRequestParams{
		RequestID:  requestID,
		Status:     status,
		ReviewedBy: actor.ID,
		Notes:      notes,
		Check: func(current store.AudienceRequest) error {
			res := authz.AudienceRequestResource(current)
			if err := p.engine.Authorize(ctx, actor, authz.OperationUpdate, res); err != nil {
				return err
			}
			if !actor.SuperAdmin && !actor.AdminOf(current.OwnerCompanyID) {
				return authz.Denied(actor, authz.OperationUpdate, res, authz.ReasonDenyNotCompanyAdmin)
			}
			if current.Status == store.AudienceRequestStatusApproved || current.Status == store.AudienceRequestStatusRejected {
				return ErrRequestAlreadyClosed
			}
			return nil
		},
	})
	if err != nil {
		return ReviewResult{}, p.writeError(ctx, "failed to review audience request", err)
	}

	p.logger.Info(ctx, "audience request reviewed")
	if campaign == nil {
		return ReviewResult{Request: request}, nil
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "campaign_id", Value: campaign.ID})
	if err := p.publisher.PublishCampaignStatusChanged(ctx, actor, events.StatusChange{
		CampaignID:   campaign.ID,
		CampaignName: campaign.Name,
		OwnerID:      campaign.ClientID,
		To:           campaign.Status,
		Notes:        notes,
	}); err != nil {
		p.logger.Error(ctx, "failed to publish campaign approval", err)
	}
	return ReviewResult{Request: request, Campaign: campaign}, nil
}

func (p *AudienceProcessor) DeleteRequest(ctx context.Context, actor authz.Actor, requestID uuid.UUID) error {
	request, err := p.GetRequest(ctx, actor, requestID)
	if err != nil {
		return err
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "request_id", Value: requestID})
	if err := p.engine.Authorize(ctx, actor, authz.OperationDelete, authz.AudienceRequestResource(request)); err != nil {
		return err
	}
	if request.CampaignID != nil {
		return ErrRequestAlreadyClosed
	}

	if err := p.store.DeleteAudienceRequest(ctx, requestID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrRequestNotFound
		}
		p.logger.Error(ctx, "failed to delete audience request", err)
		return err
	}
	return nil
}

func (p *AudienceProcessor) writeError(ctx context.Context, msg string, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrRequestNotFound
	case errors.Is(err, authz.ErrPermissionDenied),
		errors.Is(err, ErrRequestNotPending),
		errors.Is(err, ErrRequestAlreadyClosed),
		errors.Is(err, ErrInvalidDateRange):
		return err
	}
	p.logger.Error(ctx, msg, err)
	return err
}

func validateDates(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return ErrInvalidDateRange
	}
	return nil
}
