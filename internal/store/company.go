package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// CreateCompanyParams represents parameters for creating a company
type CreateCompanyParams struct {
	Name      string
	AccountID *string
}

// UpdateCompanyParams represents parameters for updating a company.
// Nil fields are left unchanged.
type UpdateCompanyParams struct {
	Name      *string
	AccountID *string
}

const sqlSelectCompanyColumns = `id, name, account_id, created_at, updated_at`

const sqlCreateCompany = `
INSERT INTO companies (name, account_id)
VALUES ($1, $2)
RETURNING ` + sqlSelectCompanyColumns

// CreateCompany creates a new company
func (s *Store) CreateCompany(ctx context.Context, params CreateCompanyParams) (Company, error) {
	var company Company
	err := s.db.GetContext(ctx, &company, sqlCreateCompany, params.Name, params.AccountID)
	if err != nil {
		return Company{}, fmt.Errorf("failed to create company: %w", mapWriteError(err))
	}
	return company, nil
}

const sqlGetCompanyByID = `
SELECT ` + sqlSelectCompanyColumns + `
FROM companies
WHERE id = $1
`

// GetCompanyByID retrieves a company by ID
func (s *Store) GetCompanyByID(ctx context.Context, companyID uuid.UUID) (Company, error) {
	var company Company
	err := s.db.GetContext(ctx, &company, sqlGetCompanyByID, companyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Company{}, ErrNotFound
		}
		return Company{}, fmt.Errorf("failed to get company by id: %w", err)
	}
	return company, nil
}

const sqlListCompanies = `
SELECT ` + sqlSelectCompanyColumns + `
FROM companies
ORDER BY name ASC
`

// ListCompanies returns every company
func (s *Store) ListCompanies(ctx context.Context) ([]Company, error) {
	companies := []Company{}
	err := s.db.SelectContext(ctx, &companies, sqlListCompanies)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}

const sqlUpdateCompany = `
UPDATE companies
SET name = COALESCE($2, name),
    account_id = COALESCE($3, account_id),
    updated_at = CURRENT_TIMESTAMP
WHERE id = $1
RETURNING ` + sqlSelectCompanyColumns

// UpdateCompany updates a company
func (s *Store) UpdateCompany(ctx context.Context, companyID uuid.UUID, params UpdateCompanyParams) (Company, error) {
	var company Company
	err := s.db.GetContext(ctx, &company, sqlUpdateCompany, companyID, params.Name, params.AccountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Company{}, ErrNotFound
		}
		return Company{}, fmt.Errorf("failed to update company: %w", mapWriteError(err))
	}
	return company, nil
}

const sqlDeleteCompany = `
DELETE FROM companies
WHERE id = $1
`

// DeleteCompany removes a company. Member profiles become unassigned and
// account ids are removed with it.
func (s *Store) DeleteCompany(ctx context.Context, companyID uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, sqlDeleteCompany, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
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
