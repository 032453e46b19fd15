package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// activityEntry is one campaign_activity_log row to append
type activityEntry struct {
	CampaignID uuid.UUID
	UserID     uuid.UUID
	Action     string
	Field      *string
	OldValue   *string
	NewValue   *string
}

const sqlInsertWorkflowHistory = `
INSERT INTO campaign_workflow_history (campaign_id, from_status, to_status, notes, changed_by)
VALUES ($1, $2, $3, $4, $5)
`

func insertWorkflowHistory(ctx context.Context, tx *sqlx.Tx, campaignID uuid.UUID, from *string, to, notes string, changedBy uuid.UUID) error {
	if _, err := tx.ExecContext(ctx, sqlInsertWorkflowHistory, campaignID, from, to, notes, changedBy); err != nil {
		return fmt.Errorf("failed to insert workflow history: %w", err)
	}
	return nil
}

const sqlInsertActivityLog = `
INSERT INTO campaign_activity_log (campaign_id, user_id, action, field, old_value, new_value)
VALUES ($1, $2, $3, $4, $5, $6)
`

func insertActivity(ctx context.Context, tx *sqlx.Tx, entries ...activityEntry) error {
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, sqlInsertActivityLog,
			e.CampaignID, e.UserID, e.Action, e.Field, e.OldValue, e.NewValue); err != nil {
			return fmt.Errorf("failed to insert activity log: %w", err)
		}
	}
	return nil
}

const sqlListWorkflowHistory = `
SELECT id, campaign_id, from_status, to_status, notes, changed_by, created_at
FROM campaign_workflow_history
WHERE campaign_id = $1
ORDER BY created_at ASC
`

// ListWorkflowHistory returns the status transitions of a campaign, oldest first
func (s *Store) ListWorkflowHistory(ctx context.Context, campaignID uuid.UUID) ([]CampaignWorkflowHistory, error) {
	history := []CampaignWorkflowHistory{}
	err := s.db.SelectContext(ctx, &history, sqlListWorkflowHistory, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflow history: %w", err)
	}
	return history, nil
}

const sqlListActivityLog = `
SELECT id, campaign_id, user_id, action, field, old_value, new_value, created_at
FROM campaign_activity_log
WHERE campaign_id = $1
ORDER BY created_at ASC
`

// ListActivityLog returns the field-level activity of a campaign, oldest first
func (s *Store) ListActivityLog(ctx context.Context, campaignID uuid.UUID) ([]CampaignActivityLog, error) {
	activity := []CampaignActivityLog{}
	err := s.db.SelectContext(ctx, &activity, sqlListActivityLog, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity log: %w", err)
	}
	return activity, nil
}
