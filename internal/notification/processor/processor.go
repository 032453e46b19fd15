package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"

	"campaign-server/internal/authz"
	"campaign-server/internal/observability"
	"campaign-server/internal/store"

	"github.com/google/uuid"
)

// NotificationStore defines the database operations required by
// NotificationProcessor
type NotificationStore interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (store.User, error)
	CreateNotification(ctx context.Context, params store.CreateNotificationParams) (store.Notification, error)
	GetNotificationByID(ctx context.Context, notificationID uuid.UUID) (store.Notification, error)
	ListNotificationsByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]store.Notification, error)
	MarkNotificationRead(ctx context.Context, notificationID uuid.UUID) (store.Notification, error)
	MarkAllNotificationsRead(ctx context.Context, userID uuid.UUID) (int64, error)
	DeleteNotification(ctx context.Context, notificationID uuid.UUID) error
}

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrRecipientNotFound    = errors.New("recipient not found")
)

type NotificationProcessor struct {
	store  NotificationStore
	engine *authz.Engine
	logger *observability.Logger
}

func New(store NotificationStore, engine *authz.Engine, logger *observability.Logger) NotificationProcessor {
	return NotificationProcessor{
		store:  store,
		engine: engine,
		logger: logger,
	}
}

// CreateNotificationParams represents a notification sent to RecipientID
type CreateNotificationParams struct {
	RecipientID uuid.UUID
	Title       string
	Message     string
	Kind        string
	CampaignID  *uuid.UUID
}

// ListNotifications returns the actor's own notifications, newest first
func (p *NotificationProcessor) ListNotifications(ctx context.Context, actor authz.Actor, unreadOnly bool) ([]store.Notification, error) {
	notifications, err := p.store.ListNotificationsByUser(ctx, actor.ID, unreadOnly)
	if err != nil {
		p.logger.Error(ctx, "failed to list notifications", err)
		return nil, err
	}
	return authz.Filter(p.engine, actor, notifications, authz.NotificationResource), nil
}

// CreateNotification sends a notification. Users notify themselves, company
// admins notify their members and super admins notify anyone.
func (p *NotificationProcessor) CreateNotification(ctx context.Context, actor authz.Actor, params CreateNotificationParams) (store.Notification, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "recipient_id", Value: params.RecipientID},
		observability.Field{Key: "kind", Value: params.Kind},
	)

	recipient, err := p.store.GetUserByID(ctx, params.RecipientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Notification{}, ErrRecipientNotFound
		}
		p.logger.Error(ctx, "failed to get notification recipient", err)
		return store.Notification{}, err
	}
	if err := p.engine.Authorize(ctx, actor, authz.OperationInsert, authz.NotificationInsert(recipient)); err != nil {
		return store.Notification{}, err
	}

	notification, err := p.store.CreateNotification(ctx, store.CreateNotificationParams{
		UserID:     recipient.ID,
		Title:      params.Title,
		Message:    params.Message,
		Kind:       params.Kind,
		CampaignID: params.CampaignID,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to create notification", err)
		return store.Notification{}, err
	}
	return notification, nil
}

func (p *NotificationProcessor) MarkRead(ctx context.Context, actor authz.Actor, notificationID uuid.UUID) (store.Notification, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "notification_id", Value: notificationID})

	if _, err := p.getNotification(ctx, actor, notificationID, authz.OperationUpdate); err != nil {
		return store.Notification{}, err
	}

	notification, err := p.store.MarkNotificationRead(ctx, notificationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Notification{}, ErrNotificationNotFound
		}
		p.logger.Error(ctx, "failed to mark notification read", err)
		return store.Notification{}, err
	}
	return notification, nil
}

// MarkAllRead marks the actor's unread notifications as read and returns how
// many changed
func (p *NotificationProcessor) MarkAllRead(ctx context.Context, actor authz.Actor) (int64, error) {
	own := authz.NotificationResource(store.Notification{UserID: actor.ID, OwnerCompanyID: actor.CompanyID})
	if err := p.engine.Authorize(ctx, actor, authz.OperationUpdate, own); err != nil {
		return 0, err
	}

	count, err := p.store.MarkAllNotificationsRead(ctx, actor.ID)
	if err != nil {
		p.logger.Error(ctx, "failed to mark notifications read", err)
		return 0, err
	}
	return count, nil
}

func (p *NotificationProcessor) DeleteNotification(ctx context.Context, actor authz.Actor, notificationID uuid.UUID) error {
	ctx = observability.WithFields(ctx, observability.Field{Key: "notification_id", Value: notificationID})

	if _, err := p.getNotification(ctx, actor, notificationID, authz.OperationDelete); err != nil {
		return err
	}

	if err := p.store.DeleteNotification(ctx, notificationID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotificationNotFound
		}
		p.logger.Error(ctx, "failed to delete notification", err)
		return err
	}
	return nil
}

func (p *NotificationProcessor) getNotification(ctx context.Context, actor authz.Actor, notificationID uuid.UUID, op authz.Operation) (store.Notification, error) {
	notification, err := p.store.GetNotificationByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Notification{}, ErrNotificationNotFound
		}
		p.logger.Error(ctx, "failed to get notification", err)
		return store.Notification{}, err
	}
	if err := p.engine.Authorize(ctx, actor, op, authz.NotificationResource(notification)); err != nil {
		return store.Notification{}, err
	}
	return notification, nil
}
