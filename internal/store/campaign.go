package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// CreateCampaignParams represents parameters for creating a campaign
type CreateCampaignParams struct {
	ClientID  uuid.UUID
	Name      string
	Audiences []string
	Platforms []string
	Budget    float64
	StartDate *time.Time
	EndDate   *time.Time
	Status    string
	RequestID *uuid.UUID
	// CreatedBy is recorded in the audit trail.
	CreatedBy uuid.UUID
	Notes     string
}

// UpdateCampaignParams represents parameters for updating campaign fields.
// Nil fields are left unchanged.
type UpdateCampaignParams struct {
	CampaignID uuid.UUID
	UpdatedBy  uuid.UUID
	Name       *string
	Audiences  []string
	Platforms  []string
	Budget     *float64
	StartDate  *time.Time
	EndDate    *time.Time
	// Check authorizes the update against the locked current row.
	Check func(current Campaign) error
}

// TransitionCampaignParams represents a workflow status change
type TransitionCampaignParams struct {
	CampaignID uuid.UUID
	ToStatus   string
	ChangedBy  uuid.UUID
	Notes      string
	// Check validates and authorizes the transition against the locked
	// current row.
	Check func(current Campaign) error
}

// ArchiveCampaignParams represents a soft delete of a campaign
type ArchiveCampaignParams struct {
	CampaignID uuid.UUID
	ArchivedBy uuid.UUID
	Check      func(current Campaign) error
}

// CampaignFilter scopes a campaign listing
type CampaignFilter struct {
	All             bool
	ClientID        uuid.UUID
	CompanyID       *uuid.UUID
	IncludeArchived bool
}

const sqlSelectCampaign = `
SELECT c.id, c.name, c.client_id, c.audiences, c.platforms, c.budget, c.start_date, c.end_date,
       c.status, c.archived, c.approved_at, c.request_id, c.created_at, c.updated_at,
       u.company_id AS owner_company_id
FROM campaigns c
JOIN users u ON u.id = c.client_id
`

const sqlInsertCampaign = `
INSERT INTO campaigns (client_id, name, audiences, platforms, budget, start_date, end_date, status, request_id, approved_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, CASE WHEN $8::text = 'approved' THEN CURRENT_TIMESTAMP END)
RETURNING id
`

// CreateCampaign creates a campaign and its initial audit rows
func (s *Store) CreateCampaign(ctx context.Context, params CreateCampaignParams) (Campaign, error) {
	var campaign Campaign
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		campaign, err = createCampaignTx(ctx, tx, params)
		return err
	})
	if err != nil {
		s.logger.Error(ctx, "failed to create campaign", err)
		return Campaign{}, err
	}
	return campaign, nil
}

func createCampaignTx(ctx context.Context, tx *sqlx.Tx, params CreateCampaignParams) (Campaign, error) {
	status := params.Status
	if status == "" {
		status = CampaignStatusDraft
	}

	var id uuid.UUID
	err := tx.GetContext(ctx, &id, sqlInsertCampaign,
		params.ClientID,
		params.Name,
		pq.StringArray(params.Audiences),
		pq.StringArray(params.Platforms),
		params.Budget,
		params.StartDate,
		params.EndDate,
		status,
		params.RequestID)
	if err != nil {
		return Campaign{}, fmt.Errorf("failed to insert campaign: %w", err)
	}

	if err := insertWorkflowHistory(ctx, tx, id, nil, status, params.Notes, params.CreatedBy); err != nil {
		return Campaign{}, err
	}
	if err := insertActivity(ctx, tx, activityEntry{
		CampaignID: id,
		UserID:     params.CreatedBy,
		Action:     ActivityActionCreated,
		NewValue:   &params.Name,
	}); err != nil {
		return Campaign{}, err
	}

	return getCampaignTx(ctx, tx, id, false)
}

func getCampaignTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, forUpdate bool) (Campaign, error) {
	query := sqlSelectCampaign + `WHERE c.id = $1`
	if forUpdate {
		query += ` FOR UPDATE OF c`
	}
	var campaign Campaign
	if err := tx.GetContext(ctx, &campaign, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Campaign{}, ErrNotFound
		}
		return Campaign{}, fmt.Errorf("failed to get campaign: %w", err)
	}
	return campaign, nil
}

// GetCampaignByID retrieves a campaign by ID, archived or not
func (s *Store) GetCampaignByID(ctx context.Context, campaignID uuid.UUID) (Campaign, error) {
	var campaign Campaign
	err := s.db.GetContext(ctx, &campaign, sqlSelectCampaign+`WHERE c.id = $1`, campaignID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Campaign{}, ErrNotFound
		}
		return Campaign{}, fmt.Errorf("failed to get campaign by id: %w", err)
	}
	return campaign, nil
}

const sqlListCampaignsWhere = `
WHERE ($1::boolean OR c.client_id = $2 OR ($3::uuid IS NOT NULL AND u.company_id = $3))
  AND ($4::boolean OR c.archived = FALSE)
ORDER BY c.created_at DESC
`

// ListCampaigns returns the campaigns visible under filter
func (s *Store) ListCampaigns(ctx context.Context, filter CampaignFilter) ([]Campaign, error) {
	campaigns := []Campaign{}
	err := s.db.SelectContext(ctx, &campaigns, sqlSelectCampaign+sqlListCampaignsWhere,
		filter.All, filter.ClientID, filter.CompanyID, filter.IncludeArchived)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, nil
}

const sqlUpdateCampaignFields = `
UPDATE campaigns
SET name = $2, audiences = $3, platforms = $4, budget = $5, start_date = $6, end_date = $7,
    updated_at = CURRENT_TIMESTAMP
WHERE id = $1
`

// UpdateCampaign updates campaign fields and appends one activity row per
// changed field
func (s *Store) UpdateCampaign(ctx context.Context, params UpdateCampaignParams) (Campaign, error) {
	var campaign Campaign
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		current, err := getCampaignTx(ctx, tx, params.CampaignID, true)
		if err != nil {
			return err
		}
		if params.Check != nil {
			if err := params.Check(current); err != nil {
				return err
			}
		}

		next, changes := applyCampaignUpdate(current, params)
		if len(changes) == 0 {
			campaign = current
			return nil
		}

		if _, err := tx.ExecContext(ctx, sqlUpdateCampaignFields,
			current.ID, next.Name, next.Audiences, next.Platforms, next.Budget, next.StartDate, next.EndDate); err != nil {
			return fmt.Errorf("failed to update campaign: %w", err)
		}
		if err := insertActivity(ctx, tx, changes...); err != nil {
			return err
		}

		campaign, err = getCampaignTx(ctx, tx, current.ID, false)
		return err
	})
	if err != nil {
		return Campaign{}, err
	}
	return campaign, nil
}

// applyCampaignUpdate merges params into current and describes every field
// that actually changed
func applyCampaignUpdate(current Campaign, params UpdateCampaignParams) (Campaign, []activityEntry) {
	next := current
	var changes []activityEntry
	record := func(field, oldValue, newValue string) {
		f, o, n := field, oldValue, newValue
		changes = append(changes, activityEntry{
			CampaignID: current.ID,
			UserID:     params.UpdatedBy,
			Action:     ActivityActionUpdated,
			Field:      &f,
			OldValue:   &o,
			NewValue:   &n,
		})
	}

	if params.Name != nil && *params.Name != current.Name {
		record("name", current.Name, *params.Name)
		next.Name = *params.Name
	}
	if params.Audiences != nil && !equalStrings(params.Audiences, current.Audiences) {
		record("audiences", strings.Join(current.Audiences, ","), strings.Join(params.Audiences, ","))
		next.Audiences = pq.StringArray(params.Audiences)
	}
	if params.Platforms != nil && !equalStrings(params.Platforms, current.Platforms) {
		record("platforms", strings.Join(current.Platforms, ","), strings.Join(params.Platforms, ","))
		next.Platforms = pq.StringArray(params.Platforms)
	}
	if params.Budget != nil && *params.Budget != current.Budget {
		record("budget", formatBudget(current.Budget), formatBudget(*params.Budget))
		next.Budget = *params.Budget
	}
	if params.StartDate != nil && !sameDate(params.StartDate, current.StartDate) {
		record("start_date", formatDate(current.StartDate), formatDate(params.StartDate))
		next.StartDate = params.StartDate
	}
	if params.EndDate != nil && !sameDate(params.EndDate, current.EndDate) {
		record("end_date", formatDate(current.EndDate), formatDate(params.EndDate))
		next.EndDate = params.EndDate
	}
	return next, changes
}

const sqlUpdateCampaignStatus = `
UPDATE campaigns
SET status = $2,
    approved_at = CASE WHEN $2::text = 'approved' THEN CURRENT_TIMESTAMP ELSE approved_at END,
    updated_at = CURRENT_TIMESTAMP
WHERE id = $1
`

// TransitionCampaign changes the workflow status and appends one history row
// and one activity row
func (s *Store) TransitionCampaign(ctx context.Context, params TransitionCampaignParams) (Campaign, error) {
	var campaign Campaign
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		current, err := getCampaignTx(ctx, tx, params.CampaignID, true)
		if err != nil {
			return err
		}
		if params.Check != nil {
			if err := params.Check(current); err != nil {
				return err
			}
		}

		if _, err := tx.ExecContext(ctx, sqlUpdateCampaignStatus, current.ID, params.ToStatus); err != nil {
			return fmt.Errorf("failed to update campaign status: %w", err)
		}
		from := current.Status
		if err := insertWorkflowHistory(ctx, tx, current.ID, &from, params.ToStatus, params.Notes, params.ChangedBy); err != nil {
			return err
		}
		field := "status"
		to := params.ToStatus
		if err := insertActivity(ctx, tx, activityEntry{
			CampaignID: current.ID,
			UserID:     params.ChangedBy,
			Action:     ActivityActionStatusChanged,
			Field:      &field,
			OldValue:   &from,
			NewValue:   &to,
		}); err != nil {
			return err
		}

		campaign, err = getCampaignTx(ctx, tx, current.ID, false)
		return err
	})
	if err != nil {
		return Campaign{}, err
	}
	return campaign, nil
}

const sqlArchiveCampaign = `
UPDATE campaigns
SET archived = TRUE, updated_at = CURRENT_TIMESTAMP
WHERE id = $1
`

// ArchiveCampaign soft deletes a campaign. Archiving twice is a no-op.
func (s *Store) ArchiveCampaign(ctx context.Context, params ArchiveCampaignParams) (Campaign, error) {
	var campaign Campaign
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		current, err := getCampaignTx(ctx, tx, params.CampaignID, true)
		if err != nil {
			return err
		}
		if params.Check != nil {
			if err := params.Check(current); err != nil {
				return err
			}
		}
		if current.Archived {
			campaign = current
			return nil
		}

		if _, err := tx.ExecContext(ctx, sqlArchiveCampaign, current.ID); err != nil {
			return fmt.Errorf("failed to archive campaign: %w", err)
		}
		if err := insertActivity(ctx, tx, activityEntry{
			CampaignID: current.ID,
			UserID:     params.ArchivedBy,
			Action:     ActivityActionArchived,
		}); err != nil {
			return err
		}

		campaign, err = getCampaignTx(ctx, tx, current.ID, false)
		return err
	})
	if err != nil {
		return Campaign{}, err
	}
	return campaign, nil
}

func equalStrings(a []string, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return formatDate(a) == formatDate(b)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}

func formatBudget(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
