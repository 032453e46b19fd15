package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const sqlGetProfileAccess = `
SELECT role, company_id
FROM users
WHERE id = $1
`

// GetProfileAccess is the single-row lookup behind role and company
// resolution. It must stay a plain primary-key read: no joins, no
// authorization.
func (s *Store) GetProfileAccess(ctx context.Context, userID uuid.UUID) (ProfileAccess, error) {
	var access ProfileAccess
	err := s.db.GetContext(ctx, &access, sqlGetProfileAccess, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ProfileAccess{}, ErrNotFound
		}
		return ProfileAccess{}, fmt.Errorf("failed to get profile access: %w", err)
	}
	return access, nil
}

const sqlSelectUserColumns = `id, email, name, role, company_id, created_at, updated_at`

const sqlGetUserByID = `
SELECT ` + sqlSelectUserColumns + `
FROM users
WHERE id = $1
`

// GetUserByID retrieves a profile by id
func (s *Store) GetUserByID(ctx context.Context, userID uuid.UUID) (User, error) {
	var user User
	err := s.db.GetContext(ctx, &user, sqlGetUserByID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

const sqlListUsersByCompany = `
SELECT ` + sqlSelectUserColumns + `
FROM users
WHERE company_id = $1
ORDER BY created_at ASC
`

// ListUsersByCompany returns every profile assigned to the company
func (s *Store) ListUsersByCompany(ctx context.Context, companyID uuid.UUID) ([]User, error) {
	users := []User{}
	err := s.db.SelectContext(ctx, &users, sqlListUsersByCompany, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by company: %w", err)
	}
	return users, nil
}

const sqlListUnassignedUsers = `
SELECT ` + sqlSelectUserColumns + `
FROM users
WHERE company_id IS NULL
ORDER BY created_at ASC
`

// ListUnassignedUsers returns profiles without a company
func (s *Store) ListUnassignedUsers(ctx context.Context) ([]User, error) {
	users := []User{}
	err := s.db.SelectContext(ctx, &users, sqlListUnassignedUsers)
	if err != nil {
		return nil, fmt.Errorf("failed to list unassigned users: %w", err)
	}
	return users, nil
}

const sqlUpdateUserName = `
UPDATE users
SET name = $2, updated_at = CURRENT_TIMESTAMP
WHERE id = $1
RETURNING ` + sqlSelectUserColumns

// UpdateUserName updates the display name of a profile
func (s *Store) UpdateUserName(ctx context.Context, userID uuid.UUID, name string) (User, error) {
	var user User
	err := s.db.GetContext(ctx, &user, sqlUpdateUserName, userID, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("failed to update user name: %w", err)
	}
	return user, nil
}

// UpdateMembershipParams represents a role and company change of a profile
type UpdateMembershipParams struct {
	UserID    uuid.UUID
	Role      UserRole
	CompanyID *uuid.UUID
	// Check authorizes the change against the locked current row.
	Check func(current User) error
}

const sqlGetUserForUpdate = `
SELECT ` + sqlSelectUserColumns + `
FROM users
WHERE id = $1
FOR UPDATE
`

const sqlCountOtherCompanyAdmins = `
SELECT COUNT(*)
FROM users
WHERE company_id = $1 AND role = 'admin' AND id <> $2
`

const sqlUpdateUserMembership = `
UPDATE users
SET role = $2, company_id = $3, updated_at = CURRENT_TIMESTAMP
WHERE id = $1
RETURNING ` + sqlSelectUserColumns

// UpdateUserMembership changes role and company of a profile. The target
// row is locked for the duration of the check, and a change that would
// leave the current company without an admin fails with ErrLastAdmin.
func (s *Store) UpdateUserMembership(ctx context.Context, params UpdateMembershipParams) (User, error) {
	var user User
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var current User
		if err := tx.GetContext(ctx, &current, sqlGetUserForUpdate, params.UserID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to lock user: %w", err)
		}

		if params.Check != nil {
			if err := params.Check(current); err != nil {
				return err
			}
		}

		leavesAdminRole := current.Role == UserRoleAdmin && current.CompanyID != nil &&
			(params.Role != UserRoleAdmin || !sameUUID(params.CompanyID, current.CompanyID))
		if leavesAdminRole {
			var companyID uuid.UUID
			if err := tx.GetContext(ctx, &companyID, sqlLockCompany, *current.CompanyID); err != nil {
				return fmt.Errorf("failed to lock company: %w", err)
			}
			var others int
			if err := tx.GetContext(ctx, &others, sqlCountOtherCompanyAdmins, *current.CompanyID, current.ID); err != nil {
				return fmt.Errorf("failed to count company admins: %w", err)
			}
			if others == 0 {
				return ErrLastAdmin
			}
		}

		if err := tx.GetContext(ctx, &user, sqlUpdateUserMembership,
			params.UserID, params.Role, params.CompanyID); err != nil {
			return fmt.Errorf("failed to update user membership: %w", err)
		}
		return nil
	})
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func sameUUID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
