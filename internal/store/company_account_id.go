package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// CreateCompanyAccountIDParams represents parameters for mapping an external
// ad-platform account to a company
type CreateCompanyAccountIDParams struct {
	CompanyID   uuid.UUID
	Platform    string
	AccountID   string
	AccountName string
	IsActive    bool
}

// UpdateCompanyAccountIDParams represents parameters for updating an account
// id mapping. Nil fields are left unchanged.
type UpdateCompanyAccountIDParams struct {
	AccountName *string
	IsActive    *bool
}

const sqlSelectCompanyAccountIDColumns = `id, company_id, platform, account_id, account_name, is_active, created_at, updated_at`

const sqlCreateCompanyAccountID = `
INSERT INTO company_account_ids (company_id, platform, account_id, account_name, is_active)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + sqlSelectCompanyAccountIDColumns

// CreateCompanyAccountID creates an account id mapping
func (s *Store) CreateCompanyAccountID(ctx context.Context, params CreateCompanyAccountIDParams) (CompanyAccountID, error) {
	var accountID CompanyAccountID
	err := s.db.GetContext(ctx, &accountID, sqlCreateCompanyAccountID,
		params.CompanyID,
		params.Platform,
		params.AccountID,
		params.AccountName,
		params.IsActive)
	if err != nil {
		return CompanyAccountID{}, fmt.Errorf("failed to create company account id: %w", mapWriteError(err))
	}
	return accountID, nil
}

const sqlGetCompanyAccountIDByID = `
SELECT ` + sqlSelectCompanyAccountIDColumns + `
FROM company_account_ids
WHERE id = $1
`

// GetCompanyAccountIDByID retrieves an account id mapping
func (s *Store) GetCompanyAccountIDByID(ctx context.Context, id uuid.UUID) (CompanyAccountID, error) {
	var accountID CompanyAccountID
	err := s.db.GetContext(ctx, &accountID, sqlGetCompanyAccountIDByID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CompanyAccountID{}, ErrNotFound
		}
		return CompanyAccountID{}, fmt.Errorf("failed to get company account id: %w", err)
	}
	return accountID, nil
}

const sqlListCompanyAccountIDs = `
SELECT ` + sqlSelectCompanyAccountIDColumns + `
FROM company_account_ids
WHERE company_id = $1
ORDER BY platform ASC, created_at ASC
`

// ListCompanyAccountIDs returns the account id mappings of a company
func (s *Store) ListCompanyAccountIDs(ctx context.Context, companyID uuid.UUID) ([]CompanyAccountID, error) {
	accountIDs := []CompanyAccountID{}
	err := s.db.SelectContext(ctx, &accountIDs, sqlListCompanyAccountIDs, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list company account ids: %w", err)
	}
	return accountIDs, nil
}

const sqlUpdateCompanyAccountID = `
UPDATE company_account_ids
SET account_name = COALESCE($2, account_name),
    is_active = COALESCE($3, is_active),
    updated_at = CURRENT_TIMESTAMP
WHERE id = $1
RETURNING ` + sqlSelectCompanyAccountIDColumns

// UpdateCompanyAccountID updates an account id mapping
func (s *Store) UpdateCompanyAccountID(ctx context.Context, id uuid.UUID, params UpdateCompanyAccountIDParams) (CompanyAccountID, error) {
	var accountID CompanyAccountID
	err := s.db.GetContext(ctx, &accountID, sqlUpdateCompanyAccountID, id, params.AccountName, params.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CompanyAccountID{}, ErrNotFound
		}
		return CompanyAccountID{}, fmt.Errorf("failed to update company account id: %w", err)
	}
	return accountID, nil
}

const sqlDeleteCompanyAccountID = `
DELETE FROM company_account_ids
WHERE id = $1
`

// DeleteCompanyAccountID removes an account id mapping
func (s *Store) DeleteCompanyAccountID(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, sqlDeleteCompanyAccountID, id)
	if err != nil {
		return fmt.Errorf("failed to delete company account id: %w", err)
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
