package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"campaign-server/internal/authz"
	"campaign-server/internal/events"
	"campaign-server/internal/notification/processor"
	"campaign-server/internal/observability"
	"campaign-server/internal/store"
	"campaign-server/internal/workers"

	"github.com/google/uuid"
)

// ActorResolver turns the principal recorded on an event back into an actor
type ActorResolver interface {
	Resolve(ctx context.Context, p authz.Principal) authz.Actor
}

// NotificationCreator writes notifications through the authorization engine
type NotificationCreator interface {
	CreateNotification(ctx context.Context, actor authz.Actor, params processor.CreateNotificationParams) (store.Notification, error)
}

// NotificationEventProcessor notifies campaign owners of status changes. The
// notification is written as the actor that made the change.
type NotificationEventProcessor struct {
	notifications NotificationCreator
	resolver      ActorResolver
	logger        *observability.Logger
}

func NewNotificationEventProcessor(
	notifications NotificationCreator,
	resolver ActorResolver,
	logger *observability.Logger,
) workers.EventProcessor {
	return &NotificationEventProcessor{
		notifications: notifications,
		resolver:      resolver,
		logger:        logger,
	}
}

func (p *NotificationEventProcessor) Name() string {
	return "notification"
}

func (p *NotificationEventProcessor) Process(ctx context.Context, event workers.EventMessage) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "event_id", Value: event.ID},
		observability.Field{Key: "event_type", Value: event.Type},
		observability.Field{Key: "campaign_id", Value: event.CampaignID},
	)

	if event.Type != events.TypeCampaignStatusChanged {
		return nil
	}
	return p.handleStatusChanged(ctx, event)
}

type statusChangedData struct {
	CampaignName string `json:"campaign_name"`
	OwnerID      string `json:"owner_id"`
	FromStatus   string `json:"from_status"`
	ToStatus     string `json:"to_status"`
	Notes        string `json:"notes"`
}

func (p *NotificationEventProcessor) handleStatusChanged(ctx context.Context, event workers.EventMessage) error {
	dataBytes, err := json.Marshal(event.Data)
	if err != nil {
		return workers.Permanent(fmt.Errorf("failed to marshal event data: %w", err))
	}
	var data statusChangedData
	if err := json.Unmarshal(dataBytes, &data); err != nil {
		return workers.Permanent(fmt.Errorf("failed to unmarshal event data: %w", err))
	}

	actorID, err := uuid.Parse(event.ActorID)
	if err != nil {
		return workers.Permanent(fmt.Errorf("invalid actor_id: %w", err))
	}
	ownerID, err := uuid.Parse(data.OwnerID)
	if err != nil {
		return workers.Permanent(fmt.Errorf("invalid owner_id: %w", err))
	}
	campaignID, err := uuid.Parse(event.CampaignID)
	if err != nil {
		return workers.Permanent(fmt.Errorf("invalid campaign_id: %w", err))
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "actor_id", Value: actorID},
		observability.Field{Key: "owner_id", Value: ownerID},
		observability.Field{Key: "to_status", Value: data.ToStatus},
	)

	// Owners are not notified of their own changes.
	if actorID == ownerID {
		return nil
	}

	actor := p.resolver.Resolve(ctx, authz.Principal{ID: actorID, Email: event.ActorEmail})
	_, err = p.notifications.CreateNotification(ctx, actor, processor.CreateNotificationParams{
		RecipientID: ownerID,
		Title:       "Campaign status changed",
		Message:     statusMessage(data),
		Kind:        store.NotificationKindStatusChanged,
		CampaignID:  &campaignID,
	})
	switch {
	case err == nil:
		p.logger.Info(ctx, "status change notification created")
		return nil
	case errors.Is(err, authz.ErrPermissionDenied), errors.Is(err, processor.ErrRecipientNotFound):
		p.logger.InfoWithError(ctx, "dropping status change notification", err)
		return workers.Permanent(err)
	default:
		return fmt.Errorf("failed to create notification: %w", err)
	}
}

func statusMessage(data statusChangedData) string {
	name := data.CampaignName
	if name == "" {
		name = "Your campaign"
	} else {
		name = fmt.Sprintf("%q", name)
	}

	msg := fmt.Sprintf("%s is now %s", name, data.ToStatus)
	if data.FromStatus != "" {
		msg = fmt.Sprintf("%s moved from %s to %s", name, data.FromStatus, data.ToStatus)
	}
	if data.Notes != "" {
		msg += ": " + data.Notes
	}
	return msg
}
