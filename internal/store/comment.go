package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// CreateCommentParams represents parameters for posting a campaign comment
type CreateCommentParams struct {
	CampaignID      uuid.UUID
	UserID          uuid.UUID
	ParentCommentID *uuid.UUID
	Body            string
}

const sqlSelectComment = `
SELECT cc.id, cc.campaign_id, cc.user_id, cc.parent_comment_id, cc.body, cc.created_at, cc.updated_at,
       c.client_id AS campaign_owner_id,
       u.company_id AS campaign_company_id
FROM campaign_comments cc
JOIN campaigns c ON c.id = cc.campaign_id
JOIN users u ON u.id = c.client_id
`

const sqlInsertComment = `
INSERT INTO campaign_comments (campaign_id, user_id, parent_comment_id, body)
VALUES ($1, $2, $3, $4)
RETURNING id
`

// CreateComment posts a comment
func (s *Store) CreateComment(ctx context.Context, params CreateCommentParams) (CampaignComment, error) {
	var id uuid.UUID
	err := s.db.GetContext(ctx, &id, sqlInsertComment,
		params.CampaignID, params.UserID, params.ParentCommentID, params.Body)
	if err != nil {
		return CampaignComment{}, fmt.Errorf("failed to create comment: %w", err)
	}
	return s.GetCommentByID(ctx, id)
}

// GetCommentByID retrieves a comment with its campaign ownership context
func (s *Store) GetCommentByID(ctx context.Context, commentID uuid.UUID) (CampaignComment, error) {
	var comment CampaignComment
	err := s.db.GetContext(ctx, &comment, sqlSelectComment+`WHERE cc.id = $1`, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CampaignComment{}, ErrNotFound
		}
		return CampaignComment{}, fmt.Errorf("failed to get comment by id: %w", err)
	}
	return comment, nil
}

// ListCommentsByCampaign returns the comments of a campaign, oldest first
func (s *Store) ListCommentsByCampaign(ctx context.Context, campaignID uuid.UUID) ([]CampaignComment, error) {
	comments := []CampaignComment{}
	err := s.db.SelectContext(ctx, &comments, sqlSelectComment+`WHERE cc.campaign_id = $1 ORDER BY cc.created_at ASC`, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

const sqlUpdateCommentBody = `
UPDATE campaign_comments
SET body = $2, updated_at = CURRENT_TIMESTAMP
WHERE id = $1
`

// UpdateCommentBody edits the body of a comment
func (s *Store) UpdateCommentBody(ctx context.Context, commentID uuid.UUID, body string) (CampaignComment, error) {
	res, err := s.db.ExecContext(ctx, sqlUpdateCommentBody, commentID, body)
	if err != nil {
		return CampaignComment{}, fmt.Errorf("failed to update comment: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return CampaignComment{}, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return CampaignComment{}, ErrNotFound
	}
	return s.GetCommentByID(ctx, commentID)
}

const sqlDeleteComment = `
DELETE FROM campaign_comments
WHERE id = $1
`

// DeleteComment removes a comment and its replies
func (s *Store) DeleteComment(ctx context.Context, commentID uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, sqlDeleteComment, commentID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
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
