package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// CreateAudienceRequestParams represents parameters for creating an audience request
type CreateAudienceRequestParams struct {
	UserID    uuid.UUID
	Name      string
	Audiences []string
	Platforms []string
	Budget    float64
	StartDate *time.Time
	EndDate   *time.Time
	Notes     string
}

// UpdateAudienceRequestParams represents parameters for editing an audience
// request. Nil fields are left unchanged.
type UpdateAudienceRequestParams struct {
	RequestID uuid.UUID
	Name      *string
	Audiences []string
	Platforms []string
	Budget    *float64
	StartDate *time.Time
	EndDate   *time.Time
	Notes     *string
	Check     func(current AudienceRequest) error
}

// ReviewAudienceRequestParams represents an admin review decision. When
// Status is approved a campaign is created from the request in the same
// transaction.
type ReviewAudienceRequestParams struct {
	RequestID  uuid.UUID
	Status     string
	ReviewedBy uuid.UUID
	Notes      string
	Check      func(current AudienceRequest) error
}

// AudienceRequestFilter scopes an audience request listing
type AudienceRequestFilter struct {
	All       bool
	UserID    uuid.UUID
	CompanyID *uuid.UUID
	Status    *string
}

const sqlSelectAudienceRequest = `
SELECT r.id, r.user_id, r.name, r.audiences, r.platforms, r.budget, r.start_date, r.end_date,
       r.notes, r.status, r.review_notes, r.reviewed_by, r.campaign_id, r.created_at, r.updated_at,
       u.company_id AS owner_company_id
FROM audience_requests r
JOIN users u ON u.id = r.user_id
`

const sqlInsertAudienceRequest = `
INSERT INTO audience_requests (user_id, name, audiences, platforms, budget, start_date, end_date, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id
`

// CreateAudienceRequest creates a pending audience request
func (s *Store) CreateAudienceRequest(ctx context.Context, params CreateAudienceRequestParams) (AudienceRequest, error) {
	var id uuid.UUID
	err := s.db.GetContext(ctx, &id, sqlInsertAudienceRequest,
		params.UserID,
		params.Name,
		pq.StringArray(params.Audiences),
		pq.StringArray(params.Platforms),
		params.Budget,
		params.StartDate,
		params.EndDate,
		params.Notes)
	if err != nil {
		return AudienceRequest{}, fmt.Errorf("failed to create audience request: %w", err)
	}
	return s.GetAudienceRequestByID(ctx, id)
}

// GetAudienceRequestByID retrieves an audience request by ID
func (s *Store) GetAudienceRequestByID(ctx context.Context, requestID uuid.UUID) (AudienceRequest, error) {
	var request AudienceRequest
	err := s.db.GetContext(ctx, &request, sqlSelectAudienceRequest+`WHERE r.id = $1`, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AudienceRequest{}, ErrNotFound
		}
		return AudienceRequest{}, fmt.Errorf("failed to get audience request by id: %w", err)
	}
	return request, nil
}

func getAudienceRequestForUpdate(ctx context.Context, tx *sqlx.Tx, requestID uuid.UUID) (AudienceRequest, error) {
	var request AudienceRequest
	err := tx.GetContext(ctx, &request, sqlSelectAudienceRequest+`WHERE r.id = $1 FOR UPDATE OF r`, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AudienceRequest{}, ErrNotFound
		}
		return AudienceRequest{}, fmt.Errorf("failed to lock audience request: %w", err)
	}
	return request, nil
}

const sqlListAudienceRequestsWhere = `
WHERE ($1::boolean OR r.user_id = $2 OR ($3::uuid IS NOT NULL AND u.company_id = $3))
  AND ($4::text IS NULL OR r.status = $4)
ORDER BY r.created_at DESC
`

// ListAudienceRequests returns the audience requests visible under filter
func (s *Store) ListAudienceRequests(ctx context.Context, filter AudienceRequestFilter) ([]AudienceRequest, error) {
	requests := []AudienceRequest{}
	err := s.db.SelectContext(ctx, &requests, sqlSelectAudienceRequest+sqlListAudienceRequestsWhere,
		filter.All, filter.UserID, filter.CompanyID, filter.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to list audience requests: %w", err)
	}
	return requests, nil
}

const sqlUpdateAudienceRequest = `
UPDATE audience_requests
SET name = COALESCE($2, name),
    audiences = COALESCE($3, audiences),
    platforms = COALESCE($4, platforms),
    budget = COALESCE($5, budget),
    start_date = COALESCE($6, start_date),
    end_date = COALESCE($7, end_date),
    notes = COALESCE($8, notes),
    updated_at = CURRENT_TIMESTAMP
WHERE id = $1
`

// UpdateAudienceRequest edits an audience request
func (s *Store) UpdateAudienceRequest(ctx context.Context, params UpdateAudienceRequestParams) (AudienceRequest, error) {
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		current, err := getAudienceRequestForUpdate(ctx, tx, params.RequestID)
		if err != nil {
			return err
		}
		if params.Check != nil {
			if err := params.Check(current); err != nil {
				return err
			}
		}

		var audiences, platforms interface{}
		if params.Audiences != nil {
			audiences = pq.StringArray(params.Audiences)
		}
		if params.Platforms != nil {
			platforms = pq.StringArray(params.Platforms)
		}
		if _, err := tx.ExecContext(ctx, sqlUpdateAudienceRequest, current.ID,
			params.Name, audiences, platforms, params.Budget, params.StartDate, params.EndDate, params.Notes); err != nil {
			return fmt.Errorf("failed to update audience request: %w", err)
		}
		return nil
	})
	if err != nil {
		return AudienceRequest{}, err
	}
	return s.GetAudienceRequestByID(ctx, params.RequestID)
}

const sqlReviewAudienceRequest = `
UPDATE audience_requests
SET status = $2, review_notes = $3, reviewed_by = $4, campaign_id = COALESCE($5, campaign_id),
    updated_at = CURRENT_TIMESTAMP
WHERE id = $1
`

// ReviewAudienceRequest records a review decision. Approval creates the
// campaign, owned by the requester, in the approved state.
func (s *Store) ReviewAudienceRequest(ctx context.Context, params ReviewAudienceRequestParams) (AudienceRequest, *Campaign, error) {
	var created *Campaign
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		current, err := getAudienceRequestForUpdate(ctx, tx, params.RequestID)
		if err != nil {
			return err
		}
		if params.Check != nil {
			if err := params.Check(current); err != nil {
				return err
			}
		}

		var campaignID *uuid.UUID
		if params.Status == AudienceRequestStatusApproved {
			campaign, err := createCampaignTx(ctx, tx, CreateCampaignParams{
				ClientID:  current.UserID,
				Name:      current.Name,
				Audiences: current.Audiences,
				Platforms: current.Platforms,
				Budget:    current.Budget,
				StartDate: current.StartDate,
				EndDate:   current.EndDate,
				Status:    CampaignStatusApproved,
				RequestID: &current.ID,
				CreatedBy: params.ReviewedBy,
				Notes:     params.Notes,
			})
			if err != nil {
				return err
			}
			created = &campaign
			campaignID = &campaign.ID
		}

		if _, err := tx.ExecContext(ctx, sqlReviewAudienceRequest,
			current.ID, params.Status, params.Notes, params.ReviewedBy, campaignID); err != nil {
			return fmt.Errorf("failed to review audience request: %w", err)
		}
		return nil
	})
	if err != nil {
		return AudienceRequest{}, nil, err
	}

	request, err := s.GetAudienceRequestByID(ctx, params.RequestID)
	if err != nil {
		return AudienceRequest{}, nil, err
	}
	return request, created, nil
}

const sqlDeleteAudienceRequest = `
DELETE FROM audience_requests
WHERE id = $1
`

// DeleteAudienceRequest removes an audience request
func (s *Store) DeleteAudienceRequest(ctx context.Context, requestID uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, sqlDeleteAudienceRequest, requestID)
	if err != nil {
		return fmt.Errorf("failed to delete audience request: %w", err)
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
