package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// CreateNotificationParams represents parameters for creating a notification
type CreateNotificationParams struct {
	UserID     uuid.UUID
	Title      string
	Message    string
	Kind       string
	CampaignID *uuid.UUID
}

const sqlSelectNotification = `
SELECT n.id, n.user_id, n.title, n.message, n.kind, n.campaign_id, n.read, n.created_at,
       u.company_id AS owner_company_id
FROM notifications n
JOIN users u ON u.id = n.user_id
`

const sqlInsertNotification = `
INSERT INTO notifications (user_id, title, message, kind, campaign_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`

// CreateNotification creates an unread notification
func (s *Store) CreateNotification(ctx context.Context, params CreateNotificationParams) (Notification, error) {
	kind := params.Kind
	if kind == "" {
		kind = NotificationKindInfo
	}
	var id uuid.UUID
	err := s.db.GetContext(ctx, &id, sqlInsertNotification,
		params.UserID, params.Title, params.Message, kind, params.CampaignID)
	if err != nil {
		return Notification{}, fmt.Errorf("failed to create notification: %w", err)
	}
	return s.GetNotificationByID(ctx, id)
}

// GetNotificationByID retrieves a notification by ID
func (s *Store) GetNotificationByID(ctx context.Context, notificationID uuid.UUID) (Notification, error) {
	var notification Notification
	err := s.db.GetContext(ctx, &notification, sqlSelectNotification+`WHERE n.id = $1`, notificationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Notification{}, ErrNotFound
		}
		return Notification{}, fmt.Errorf("failed to get notification by id: %w", err)
	}
	return notification, nil
}

// ListNotificationsByUser returns the notifications of a user, newest first
func (s *Store) ListNotificationsByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]Notification, error) {
	notifications := []Notification{}
	err := s.db.SelectContext(ctx, &notifications,
		sqlSelectNotification+`WHERE n.user_id = $1 AND ($2::boolean = FALSE OR n.read = FALSE) ORDER BY n.created_at DESC`,
		userID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

const sqlMarkNotificationRead = `
UPDATE notifications
SET read = TRUE
WHERE id = $1
`

// MarkNotificationRead marks a single notification as read
func (s *Store) MarkNotificationRead(ctx context.Context, notificationID uuid.UUID) (Notification, error) {
	res, err := s.db.ExecContext(ctx, sqlMarkNotificationRead, notificationID)
	if err != nil {
		return Notification{}, fmt.Errorf("failed to mark notification read: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return Notification{}, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return Notification{}, ErrNotFound
	}
	return s.GetNotificationByID(ctx, notificationID)
}

const sqlMarkAllNotificationsRead = `
UPDATE notifications
SET read = TRUE
WHERE user_id = $1 AND read = FALSE
`

// MarkAllNotificationsRead marks every unread notification of a user as read
// and returns how many changed
func (s *Store) MarkAllNotificationsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	res, err := s.db.ExecContext(ctx, sqlMarkAllNotificationsRead, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}

const sqlDeleteNotification = `
DELETE FROM notifications
WHERE id = $1
`

// DeleteNotification removes a notification
func (s *Store) DeleteNotification(ctx context.Context, notificationID uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, sqlDeleteNotification, notificationID)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
