package authz

import (
	"campaign-server/internal/store"

	"github.com/google/uuid"
)

// Operation is a row-level action.
type Operation string

const (
	OperationRead   Operation = "read"
	OperationInsert Operation = "insert"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// Valid reports whether op is one of the four row operations.
func (op Operation) Valid() bool {
	switch op {
	case OperationRead, OperationInsert, OperationUpdate, OperationDelete:
		return true
	}
	return false
}

// Entity names a protected table.
type Entity string

const (
	EntityUserProfile      Entity = "user_profile"
	EntityCompany          Entity = "company"
	EntityCampaign         Entity = "campaign"
	EntityAudienceRequest  Entity = "audience_request"
	EntityNotification     Entity = "notification"
	EntityComment          Entity = "comment"
	EntityCompanyAccountID Entity = "company_account_id"
	EntityWorkflowHistory  Entity = "workflow_history"
	EntityActivityLog      Entity = "activity_log"
)

// Entities lists every protected entity.
var Entities = []Entity{
	EntityUserProfile,
	EntityCompany,
	EntityCampaign,
	EntityAudienceRequest,
	EntityNotification,
	EntityComment,
	EntityCompanyAccountID,
	EntityWorkflowHistory,
	EntityActivityLog,
}

// Principal is the authenticated caller as issued by the identity provider.
type Principal struct {
	ID    uuid.UUID
	Email string
}

// Actor is a Principal with its resolved role and company.
type Actor struct {
	ID           uuid.UUID      `json:"id"`
	Email        string         `json:"email"`
	Role         store.UserRole `json:"role"`
	CompanyID    *uuid.UUID     `json:"company_id,omitempty"`
	SuperAdmin   bool           `json:"super_admin"`
	ProfileFound bool           `json:"profile_found"`
}

// IsCompanyAdmin reports whether the actor administers a company.
func (a Actor) IsCompanyAdmin() bool {
	return a.Role == store.UserRoleAdmin && a.CompanyID != nil
}

// InCompany reports whether the actor belongs to the given company. A nil
// company never matches, so unassigned profiles are peers of nobody.
func (a Actor) InCompany(companyID *uuid.UUID) bool {
	return a.CompanyID != nil && companyID != nil && *a.CompanyID == *companyID
}

// AdminOf reports whether the actor administers the given company.
func (a Actor) AdminOf(companyID *uuid.UUID) bool {
	return a.IsCompanyAdmin() && a.InCompany(companyID)
}

// Resource describes the target row of a decision. Only the fields that the
// entity's rules read need to be set; use the constructors in resource.go.
type Resource struct {
	Entity Entity
	ID     uuid.UUID

	// OwnerID is the owning profile: the profile itself, clientId, userId
	// or the comment author.
	OwnerID uuid.UUID
	// CompanyID is the company the row is scoped to: the profile's company,
	// the company itself, the owner's company or the campaign's company.
	CompanyID *uuid.UUID

	// TargetRole is the current role of a profile row.
	TargetRole store.UserRole
	// Change describes a profile role/company change on update and the
	// requested role on insert.
	Change *ProfileChange

	// AccountIDChanged is set on company updates that modify accountId.
	AccountIDChanged bool

	// CampaignOwnerID is the owner of the campaign a comment belongs to.
	CampaignOwnerID uuid.UUID
}

// ProfileChange is the new role and company of a profile.
type ProfileChange struct {
	Role      store.UserRole
	CompanyID *uuid.UUID
}

// ReasonCode explains a decision.
type ReasonCode string

const (
	ReasonSuperAdmin     ReasonCode = "AUTHZ_ALLOW_SUPER_ADMIN"
	ReasonSelf           ReasonCode = "AUTHZ_ALLOW_SELF"
	ReasonOwner          ReasonCode = "AUTHZ_ALLOW_OWNER"
	ReasonCampaignOwner  ReasonCode = "AUTHZ_ALLOW_CAMPAIGN_OWNER"
	ReasonCompanyMember  ReasonCode = "AUTHZ_ALLOW_COMPANY_MEMBER"
	ReasonCompanyAdmin   ReasonCode = "AUTHZ_ALLOW_COMPANY_ADMIN"
	ReasonCommentAuthor  ReasonCode = "AUTHZ_ALLOW_COMMENT_AUTHOR"
	ReasonNoMatchingRule ReasonCode = "AUTHZ_DENY_NO_MATCHING_RULE"

	ReasonDenyNotSuperAdmin      ReasonCode = "AUTHZ_DENY_SUPER_ADMIN_REQUIRED"
	ReasonDenyNotOwner           ReasonCode = "AUTHZ_DENY_NOT_OWNER"
	ReasonDenyUnassignedActor    ReasonCode = "AUTHZ_DENY_ACTOR_HAS_NO_COMPANY"
	ReasonDenyUnassignedTarget   ReasonCode = "AUTHZ_DENY_TARGET_UNASSIGNED"
	ReasonDenyOtherCompany       ReasonCode = "AUTHZ_DENY_OTHER_COMPANY"
	ReasonDenyNotCompanyAdmin    ReasonCode = "AUTHZ_DENY_NOT_COMPANY_ADMIN"
	ReasonDenyTargetSuperAdmin   ReasonCode = "AUTHZ_DENY_TARGET_IS_SUPER_ADMIN"
	ReasonDenyGrantSuperAdmin    ReasonCode = "AUTHZ_DENY_GRANTS_SUPER_ADMIN"
	ReasonDenySelfEscalation     ReasonCode = "AUTHZ_DENY_SELF_ROLE_OR_COMPANY_CHANGE"
	ReasonDenyCrossCompanyMove   ReasonCode = "AUTHZ_DENY_CROSS_COMPANY_MOVE"
	ReasonDenyAccountIDImmutable ReasonCode = "AUTHZ_DENY_ACCOUNT_ID_IMMUTABLE"
	ReasonDenyAppendOnly         ReasonCode = "AUTHZ_DENY_AUDIT_APPEND_ONLY"
	ReasonDenyNotAuthor          ReasonCode = "AUTHZ_DENY_NOT_AUTHOR"
	ReasonDenyUnknownPair        ReasonCode = "AUTHZ_DENY_UNKNOWN_ENTITY_OPERATION"
	ReasonDenyTransitionRole     ReasonCode = "AUTHZ_DENY_TRANSITION_REQUIRES_ADMIN"
)

// Decision is the outcome of evaluating the policy table.
type Decision struct {
	Allowed bool       `json:"allowed"`
	Rule    string     `json:"rule,omitempty"`
	Reason  ReasonCode `json:"reason"`
}

// RuleEvaluation is one rule's outcome, as reported by Explain.
type RuleEvaluation struct {
	Rule    string     `json:"rule"`
	Matched bool       `json:"matched"`
	Reason  ReasonCode `json:"reason"`
}
