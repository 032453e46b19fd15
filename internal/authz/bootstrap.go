package authz

import (
	"campaign-server/internal/store"

	"github.com/google/uuid"
)

// InitialRole decides the role of a profile being created. Super-admin
// emails always get super_admin; the first member of an existing company
// becomes its admin; otherwise the requested role applies when it is user or
// admin, and user by default.
func (r *Resolver) InitialRole(email string, requested store.UserRole, companyID *uuid.UUID, existingMembers int) store.UserRole {
	if r.IsSuperAdmin(email) {
		return store.UserRoleSuperAdmin
	}
	if companyID != nil && existingMembers == 0 {
		return store.UserRoleAdmin
	}
	if requested == store.UserRoleAdmin || requested == store.UserRoleUser {
		return requested
	}
	return store.UserRoleUser
}

// RoleAssigner adapts InitialRole to the member count supplied by the store
// inside the profile creation transaction.
func (r *Resolver) RoleAssigner(email string, requested store.UserRole, companyID *uuid.UUID) func(existingMembers int) store.UserRole {
	return func(existingMembers int) store.UserRole {
		return r.InitialRole(email, requested, companyID, existingMembers)
	}
}
