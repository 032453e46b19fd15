package authz

import (
	"context"
	"errors"
	"strings"

	"campaign-server/internal/observability"
	"campaign-server/internal/store"

	"github.com/google/uuid"
)

// ProfileLookup reads the role and company of one profile by primary key.
type ProfileLookup interface {
	GetProfileAccess(ctx context.Context, userID uuid.UUID) (store.ProfileAccess, error)
}

// Resolver turns principals into actors. It reads the caller's own profile
// row directly and never evaluates the policy table.
type Resolver struct {
	lookup           ProfileLookup
	superAdminDomain string
	logger           *observability.Logger
}

// NewResolver creates a Resolver. An empty domain disables super-admin
// detection.
func NewResolver(lookup ProfileLookup, superAdminDomain string, logger *observability.Logger) *Resolver {
	return &Resolver{
		lookup:           lookup,
		superAdminDomain: strings.ToLower(strings.TrimPrefix(strings.TrimSpace(superAdminDomain), "@")),
		logger:           logger,
	}
}

// IsSuperAdmin reports whether email belongs to the super-admin domain.
func (r *Resolver) IsSuperAdmin(email string) bool {
	if r.superAdminDomain == "" {
		return false
	}
	email = strings.ToLower(strings.TrimSpace(email))
	return strings.HasSuffix(email, "@"+r.superAdminDomain)
}

// ResolveCompanyID returns the company of the profile, or nil when the
// profile is missing, unassigned or cannot be read.
func (r *Resolver) ResolveCompanyID(ctx context.Context, userID uuid.UUID) *uuid.UUID {
	access, ok := r.access(ctx, userID)
	if !ok {
		return nil
	}
	return access.CompanyID
}

// IsCompanyAdmin reports whether the profile has role admin and a company.
func (r *Resolver) IsCompanyAdmin(ctx context.Context, userID uuid.UUID) bool {
	access, ok := r.access(ctx, userID)
	return ok && access.Role == store.UserRoleAdmin && access.CompanyID != nil
}

// Resolve builds the actor for p with a single profile read. Missing or
// unreadable profiles resolve to role user with no company.
func (r *Resolver) Resolve(ctx context.Context, p Principal) Actor {
	actor := Actor{
		ID:         p.ID,
		Email:      p.Email,
		Role:       store.UserRoleUser,
		SuperAdmin: r.IsSuperAdmin(p.Email),
	}

	access, ok := r.access(ctx, p.ID)
	if !ok {
		return actor
	}
	actor.ProfileFound = true
	actor.CompanyID = access.CompanyID
	if access.Role.Valid() {
		actor.Role = access.Role
	}
	return actor
}

func (r *Resolver) access(ctx context.Context, userID uuid.UUID) (store.ProfileAccess, bool) {
	access, err := r.lookup.GetProfileAccess(ctx, userID)
	if err == nil {
		return access, true
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "user_id", Value: userID})
	if errors.Is(err, store.ErrNotFound) {
		r.logger.Debug(ctx, "no profile for principal")
	} else {
		r.logger.Error(ctx, "failed to resolve profile access", err)
	}
	return store.ProfileAccess{}, false
}
