package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// CreateProfileParams represents parameters for creating an identity together
// with its profile.
type CreateProfileParams struct {
	Email        string
	Name         string
	PasswordHash *string
	CompanyID    *uuid.UUID
	// InviteTokenHash and InviteExpiresAt are set for invited identities.
	InviteTokenHash *string
	InviteExpiresAt *time.Time
	// AssignRole picks the profile role from the number of existing members
	// of CompanyID. It runs inside the creating transaction, after the
	// company row is locked.
	AssignRole func(existingMembers int) UserRole
	// Check authorizes the profile about to be inserted.
	Check func(profile User) error
}

const sqlCreateIdentity = `
INSERT INTO identities (email, password_hash, invite_token_hash, invite_expires_at)
VALUES ($1, $2, $3, $4)
RETURNING id, email, password_hash, invite_token_hash, invite_expires_at, created_at
`

const sqlLockCompany = `
SELECT id FROM companies WHERE id = $1 FOR UPDATE
`

const sqlCountCompanyMembers = `
SELECT COUNT(*) FROM users WHERE company_id = $1
`

const sqlCreateUser = `
INSERT INTO users (id, email, name, role, company_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, email, name, role, company_id, created_at, updated_at
`

// CreateIdentityWithProfile creates the identity and profile rows in one
// transaction. The member count for the bootstrap rule is taken while the
// company row is locked so two concurrent first signups cannot both become
// admin.
func (s *Store) CreateIdentityWithProfile(ctx context.Context, params CreateProfileParams) (User, error) {
	email := normalizeEmail(params.Email)
	var user User
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var identity Identity
		if err := tx.GetContext(ctx, &identity, sqlCreateIdentity,
			email, params.PasswordHash, params.InviteTokenHash, params.InviteExpiresAt); err != nil {
			return fmt.Errorf("failed to create identity: %w", mapWriteError(err))
		}

		members := 0
		if params.CompanyID != nil {
			var companyID uuid.UUID
			if err := tx.GetContext(ctx, &companyID, sqlLockCompany, *params.CompanyID); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return ErrNotFound
				}
				return fmt.Errorf("failed to lock company: %w", err)
			}
			if err := tx.GetContext(ctx, &members, sqlCountCompanyMembers, *params.CompanyID); err != nil {
				return fmt.Errorf("failed to count company members: %w", err)
			}
		}

		role := UserRoleUser
		if params.AssignRole != nil {
			role = params.AssignRole(members)
		}

		if params.Check != nil {
			pending := User{ID: identity.ID, Email: email, Name: params.Name, Role: role, CompanyID: params.CompanyID}
			if err := params.Check(pending); err != nil {
				return err
			}
		}

		if err := tx.GetContext(ctx, &user, sqlCreateUser,
			identity.ID, email, params.Name, role, params.CompanyID); err != nil {
			return fmt.Errorf("failed to create user: %w", mapWriteError(err))
		}
		return nil
	})
	if err != nil {
		return User{}, err
	}
	return user, nil
}

const sqlGetIdentityByEmail = `
SELECT id, email, password_hash, invite_token_hash, invite_expires_at, created_at
FROM identities
WHERE email = $1
`

// GetIdentityByEmail retrieves an identity by email
func (s *Store) GetIdentityByEmail(ctx context.Context, email string) (Identity, error) {
	var identity Identity
	err := s.db.GetContext(ctx, &identity, sqlGetIdentityByEmail, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Identity{}, ErrNotFound
		}
		return Identity{}, fmt.Errorf("failed to get identity by email: %w", err)
	}
	return identity, nil
}

const sqlGetIdentityByID = `
SELECT id, email, password_hash, invite_token_hash, invite_expires_at, created_at
FROM identities
WHERE id = $1
`

// GetIdentityByID retrieves an identity by id
func (s *Store) GetIdentityByID(ctx context.Context, id uuid.UUID) (Identity, error) {
	var identity Identity
	err := s.db.GetContext(ctx, &identity, sqlGetIdentityByID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Identity{}, ErrNotFound
		}
		return Identity{}, fmt.Errorf("failed to get identity by id: %w", err)
	}
	return identity, nil
}

const sqlIdentityEmailExists = `
SELECT EXISTS(SELECT 1 FROM identities WHERE email = $1)
`

// IdentityEmailExists checks whether an identity already uses email
func (s *Store) IdentityEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, sqlIdentityEmailExists, normalizeEmail(email))
	if err != nil {
		return false, fmt.Errorf("failed to check identity email: %w", err)
	}
	return exists, nil
}

const sqlLockPendingIdentity = `
SELECT id, email, password_hash, invite_token_hash, invite_expires_at, created_at
FROM identities
WHERE email = $1 AND password_hash IS NULL
FOR UPDATE
`

const sqlAcceptInvitation = `
UPDATE identities
SET password_hash = $2, invite_token_hash = NULL, invite_expires_at = NULL
WHERE id = $1
RETURNING id, email, password_hash, invite_token_hash, invite_expires_at, created_at
`

// AcceptInvitation sets the password of an invited identity that has not
// chosen one yet. verify sees the locked row and may reject the invite token;
// the token is cleared in the same transaction, so it can be used once.
// Identities that already have a password are reported as ErrNotFound.
func (s *Store) AcceptInvitation(ctx context.Context, email, passwordHash string, verify func(pending Identity) error) (Identity, error) {
	var identity Identity
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var pending Identity
		if err := tx.GetContext(ctx, &pending, sqlLockPendingIdentity, normalizeEmail(email)); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to lock pending identity: %w", err)
		}
		if verify != nil {
			if err := verify(pending); err != nil {
				return err
			}
		}
		if err := tx.GetContext(ctx, &identity, sqlAcceptInvitation, pending.ID, passwordHash); err != nil {
			return fmt.Errorf("failed to set identity password: %w", err)
		}
		return nil
	})
	if err != nil {
		return Identity{}, err
	}
	return identity, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
