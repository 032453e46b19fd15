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
	"campaign-server/internal/workflow"

	"github.com/google/uuid"
)

// CampaignStore defines the database operations required by CampaignProcessor
type CampaignStore interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (store.User, error)
	CreateCampaign(ctx context.Context, params store.CreateCampaignParams) (store.Campaign, error)
	GetCampaignByID(ctx context.Context, campaignID uuid.UUID) (store.Campaign, error)
	ListCampaigns(ctx context.Context, filter store.CampaignFilter) ([]store.Campaign, error)
	UpdateCampaign(ctx context.Context, params store.UpdateCampaignParams) (store.Campaign, error)
	TransitionCampaign(ctx context.Context, params store.TransitionCampaignParams) (store.Campaign, error)
	ArchiveCampaign(ctx context.Context, params store.ArchiveCampaignParams) (store.Campaign, error)
	ListWorkflowHistory(ctx context.Context, campaignID uuid.UUID) ([]store.CampaignWorkflowHistory, error)
	ListActivityLog(ctx context.Context, campaignID uuid.UUID) ([]store.CampaignActivityLog, error)
}

// StatusPublisher announces campaign status changes
type StatusPublisher interface {
	PublishCampaignStatusChanged(ctx context.Context, actor authz.Actor, change events.StatusChange) error
}

var (
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrOwnerNotFound    = errors.New("campaign owner not found")
	ErrInvalidDateRange = errors.New("end date must not be before start date")
	ErrCampaignArchived = errors.New("campaign is archived")
)

type CampaignProcessor struct {
	store     CampaignStore
	engine    *authz.Engine
	gate      *workflow.Gate
	publisher StatusPublisher
	logger    *observability.Logger
}

func New(store CampaignStore, engine *authz.Engine, gate *workflow.Gate, publisher StatusPublisher, logger *observability.Logger) CampaignProcessor {
	return CampaignProcessor{
		store:     store,
		engine:    engine,
		gate:      gate,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateCampaignParams represents parameters for creating a campaign
type CreateCampaignParams struct {
	// ClientID lets an admin create a campaign for another profile. Defaults
	// to the caller.
	ClientID  *uuid.UUID
	Name      string
	Audiences []string
	Platforms []string
	Budget    float64
	StartDate *time.Time
	EndDate   *time.Time
	Notes     string
}

// UpdateCampaignParams represents a campaign field update. Nil fields are
// unchanged.
type UpdateCampaignParams struct {
	Name      *string
	Audiences []string
	Platforms []string
	Budget    *float64
	StartDate *time.Time
	EndDate   *time.Time
}

// ListCampaignsParams scopes a listing
type ListCampaignsParams struct {
	IncludeArchived bool
	Status          string
}

// CreateCampaign creates a draft campaign owned by the caller or, for
// admins, by a member of their company.
func (p *CampaignProcessor) CreateCampaign(ctx context.Context, actor authz.Actor, params CreateCampaignParams) (store.Campaign, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "campaign_name", Value: params.Name})

	if err := validateDates(params.StartDate, params.EndDate); err != nil {
		return store.Campaign{}, err
	}

	owner := store.User{ID: actor.ID, Email: actor.Email, Role: actor.Role, CompanyID: actor.CompanyID}
	if params.ClientID != nil && *params.ClientID != actor.ID {
		var err error
		owner, err = p.store.GetUserByID(ctx, *params.ClientID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return store.Campaign{}, ErrOwnerNotFound
			}
			p.logger.Error(ctx, "failed to get campaign owner", err)
			return store.Campaign{}, err
		}
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "client_id", Value: owner.ID})
	if err := p.engine.Authorize(ctx, actor, authz.OperationInsert, authz.CampaignInsert(owner)); err != nil {
		return store.Campaign{}, err
	}

	campaign, err := p.store.CreateCampaign(ctx, store.CreateCampaignParams{
		ClientID:  owner.ID,
		Name:      params.Name,
		Audiences: params.Audiences,
		Platforms: params.Platforms,
		Budget:    params.Budget,
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
		Status:    store.CampaignStatusDraft,
		CreatedBy: actor.ID,
		Notes:     params.Notes,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to create campaign", err)
		return store.Campaign{}, err
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "campaign_id", Value: campaign.ID})
	p.logger.Info(ctx, "campaign created")
	return campaign, nil
}

// GetCampaign retrieves a campaign the caller may read
func (p *CampaignProcessor) GetCampaign(ctx context.Context, actor authz.Actor, campaignID uuid.UUID) (store.Campaign, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "campaign_id", Value: campaignID})

	campaign, err := p.getCampaign(ctx, campaignID)
	if err != nil {
		return store.Campaign{}, err
	}
	if err := p.engine.Authorize(ctx, actor, authz.OperationRead, authz.CampaignResource(campaign)); err != nil {
		return store.Campaign{}, err
	}
	return campaign, nil
}

// ListCampaigns returns the caller's own campaigns, plus their company's
// campaigns for company admins and every campaign for super admins.
func (p *CampaignProcessor) ListCampaigns(ctx context.Context, actor authz.Actor, params ListCampaignsParams) ([]store.Campaign, error) {
	filter := store.CampaignFilter{
		All:             actor.SuperAdmin,
		ClientID:        actor.ID,
		IncludeArchived: params.IncludeArchived,
	}
	if actor.IsCompanyAdmin() {
		filter.CompanyID = actor.CompanyID
	}

	campaigns, err := p.store.ListCampaigns(ctx, filter)
	if err != nil {
		p.logger.Error(ctx, "failed to list campaigns", err)
		return nil, err
	}

	visible := authz.Filter(p.engine, actor, campaigns, authz.CampaignResource)
	if params.Status == "" {
		return visible, nil
	}
	out := make([]store.Campaign, 0, len(visible))
	for _, c := range visible {
		if c.Status == params.Status {
			out = append(out, c)
		}
	}
	return out, nil
}

// UpdateCampaign updates campaign fields. Each changed field is recorded in
// the activity log.
func (p *CampaignProcessor) UpdateCampaign(ctx context.Context, actor authz.Actor, campaignID uuid.UUID, params UpdateCampaignParams) (store.Campaign, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "campaign_id", Value: campaignID})

	campaign, err := p.store.UpdateCampaign(ctx, store.UpdateCampaignParams{
		CampaignID: campaignID,
		UpdatedBy:  actor.ID,
		Name:       params.Name,
		Audiences:  params.Audiences,
		Platforms:  params.Platforms,
		Budget:     params.Budget,
		StartDate:  params.StartDate,
		EndDate:    params.EndDate,
		Check: func(current store.Campaign) error {
			if err := p.engine.Authorize(ctx, actor, authz.OperationUpdate, authz.CampaignResource(current)); err != nil {
				return err
			}
			if current.Archived {
				return ErrCampaignArchived
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
		return store.Campaign{}, p.writeError(ctx, "failed to update campaign", err)
	}
	return campaign, nil
}

// TransitionCampaign moves a campaign along the workflow graph. The edge,
// the row-level update permission and the workflow role gate are checked
// against the locked row.
func (p *CampaignProcessor) TransitionCampaign(ctx context.Context, actor authz.Actor, campaignID uuid.UUID, toStatus, notes string) (store.Campaign, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "campaign_id", Value: campaignID},
		observability.Field{Key: "to_status", Value: toStatus},
	)

	if !workflow.IsValidStatus(toStatus) {
		return store.Campaign{}, workflow.ErrUnknownStatus
	}

	var from string
	campaign, err := p.store.TransitionCampaign(ctx, store.TransitionCampaignParams{
		CampaignID: campaignID,
		ToStatus:   toStatus,
		ChangedBy:  actor.ID,
		Notes:      notes,
		Check: func(current store.Campaign) error {
			if err := p.engine.Authorize(ctx, actor, authz.OperationUpdate, authz.CampaignResource(current)); err != nil {
				return err
			}
			if current.Archived {
				return ErrCampaignArchived
			}
			from = current.Status
			return p.gate.Check(actor, current, toStatus)
		},
	})
	if err != nil {
		return store.Campaign{}, p.writeError(ctx, "failed to transition campaign", err)
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "from_status", Value: from})
	p.logger.Info(ctx, "campaign status changed")

	if err := p.publisher.PublishCampaignStatusChanged(ctx, actor, events.StatusChange{
		CampaignID:   campaign.ID,
		CampaignName: campaign.Name,
		OwnerID:      campaign.ClientID,
		From:         from,
		To:           campaign.Status,
		Notes:        notes,
	}); err != nil {
		p.logger.Error(ctx, "failed to publish campaign status change", err)
	}
	return campaign, nil
}

// ArchiveCampaign soft deletes a campaign
func (p *CampaignProcessor) ArchiveCampaign(ctx context.Context, actor authz.Actor, campaignID uuid.UUID) error {
	ctx = observability.WithFields(ctx, observability.Field{Key: "campaign_id", Value: campaignID})

	_, err := p.store.ArchiveCampaign(ctx, store.ArchiveCampaignParams{
		CampaignID: campaignID,
		ArchivedBy: actor.ID,
		Check: func(current store.Campaign) error {
			return p.engine.Authorize(ctx, actor, authz.OperationDelete, authz.CampaignResource(current))
		},
	})
	if err != nil {
		return p.writeError(ctx, "failed to archive campaign", err)
	}

	p.logger.Info(ctx, "campaign archived")
	return nil
}

// GetWorkflowHistory returns the status history of a campaign, oldest first
func (p *CampaignProcessor) GetWorkflowHistory(ctx context.Context, actor authz.Actor, campaignID uuid.UUID) ([]store.CampaignWorkflowHistory, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "campaign_id", Value: campaignID})

	campaign, err := p.getCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if err := p.engine.Authorize(ctx, actor, authz.OperationRead, authz.WorkflowHistoryResource(campaign)); err != nil {
		return nil, err
	}

	history, err := p.store.ListWorkflowHistory(ctx, campaignID)
	if err != nil {
		p.logger.Error(ctx, "failed to list workflow history", err)
		return nil, err
	}
	return history, nil
}

// GetActivityLog returns the activity log of a campaign, oldest first
func (p *CampaignProcessor) GetActivityLog(ctx context.Context, actor authz.Actor, campaignID uuid.UUID) ([]store.CampaignActivityLog, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "campaign_id", Value: campaignID})

	campaign, err := p.getCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if err := p.engine.Authorize(ctx, actor, authz.OperationRead, authz.ActivityLogResource(campaign)); err != nil {
		return nil, err
	}

	activity, err := p.store.ListActivityLog(ctx, campaignID)
	if err != nil {
		p.logger.Error(ctx, "failed to list activity log", err)
		return nil, err
	}
	return activity, nil
}

// NextStatuses returns the statuses the caller may move the campaign to
func (p *CampaignProcessor) NextStatuses(ctx context.Context, actor authz.Actor, campaignID uuid.UUID) ([]string, error) {
	campaign, err := p.GetCampaign(ctx, actor, campaignID)
	if err != nil {
		return nil, err
	}
	if !p.engine.Allowed(actor, authz.OperationUpdate, authz.CampaignResource(campaign)) || campaign.Archived {
		return []string{}, nil
	}

	out := []string{}
	for _, to := range workflow.NextStatuses(campaign.Status) {
		ok, err := p.gate.Allowed(actor, campaign, to)
		if err != nil {
			p.logger.Error(ctx, "failed to evaluate workflow gate", err)
			return nil, err
		}
		if ok {
			out = append(out, to)
		}
	}
	return out, nil
}

func (p *CampaignProcessor) getCampaign(ctx context.Context, campaignID uuid.UUID) (store.Campaign, error) {
	campaign, err := p.store.GetCampaignByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Campaign{}, ErrCampaignNotFound
		}
		p.logger.Error(ctx, "failed to get campaign", err)
		return store.Campaign{}, err
	}
	return campaign, nil
}

// writeError maps store errors of the transactional writes. Errors returned
// by Check callbacks pass through unlogged.
func (p *CampaignProcessor) writeError(ctx context.Context, msg string, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrCampaignNotFound
	case errors.Is(err, authz.ErrPermissionDenied),
		errors.Is(err, workflow.ErrInvalidTransition),
		errors.Is(err, workflow.ErrUnknownStatus),
		errors.Is(err, ErrCampaignArchived),
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
