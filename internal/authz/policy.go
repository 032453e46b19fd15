package authz

import (
	"campaign-server/internal/store"

	"github.com/google/uuid"
)

// predicate evaluates one rule. On a miss it returns the reason the rule did
// not apply.
type predicate func(a Actor, r Resource) (bool, ReasonCode)

type rule struct {
	name  string
	allow ReasonCode
	match predicate
}

type ruleKey struct {
	entity Entity
	op     Operation
}

var policy = buildPolicy()

func buildPolicy() map[ruleKey][]rule {
	superAdmin := rule{name: "super_admin", allow: ReasonSuperAdmin, match: isSuperAdmin}
	owner := rule{name: "owner", allow: ReasonOwner, match: isOwner}
	companyMember := rule{name: "company_member", allow: ReasonCompanyMember, match: inRowCompany}
	companyAdmin := rule{name: "company_admin", allow: ReasonCompanyAdmin, match: adminOfRowCompany}
	appendOnly := rule{name: "append_only", allow: ReasonNoMatchingRule, match: never(ReasonDenyAppendOnly)}

	p := map[ruleKey][]rule{
		{EntityUserProfile, OperationRead}: {
			superAdmin,
			{name: "self", allow: ReasonSelf, match: isOwner},
			{name: "company_peer", allow: ReasonCompanyMember, match: inRowCompany},
		},
		{EntityUserProfile, OperationInsert}: {
			superAdmin,
			{name: "self_signup", allow: ReasonSelf, match: selfSignup},
			{name: "company_admin_invite", allow: ReasonCompanyAdmin, match: adminInvite},
		},
		{EntityUserProfile, OperationUpdate}: {
			superAdmin,
			{name: "self_unchanged_role_company", allow: ReasonSelf, match: selfUnchanged},
			{name: "company_admin_manage", allow: ReasonCompanyAdmin, match: adminManage},
			{name: "company_admin_claim_unassigned", allow: ReasonCompanyAdmin, match: adminClaim},
		},
		{EntityUserProfile, OperationDelete}: {
			superAdmin,
			{name: "company_admin_remove", allow: ReasonCompanyAdmin, match: adminRemove},
		},

		{EntityCompany, OperationRead}:   {superAdmin, companyMember},
		{EntityCompany, OperationInsert}: {superAdmin},
		{EntityCompany, OperationUpdate}: {
			superAdmin,
			{name: "company_admin_keeps_account_id", allow: ReasonCompanyAdmin, match: adminKeepsAccountID},
		},
		{EntityCompany, OperationDelete}: {superAdmin},

		{EntityComment, OperationRead}: {
			superAdmin,
			{name: "author", allow: ReasonCommentAuthor, match: isAuthor},
			{name: "campaign_owner", allow: ReasonCampaignOwner, match: isCampaignOwner},
			{name: "campaign_company_member", allow: ReasonCompanyMember, match: inRowCompany},
		},
		{EntityComment, OperationInsert}: {
			superAdmin,
			{name: "campaign_owner_as_author", allow: ReasonCampaignOwner, match: asAuthor(isCampaignOwner)},
			{name: "campaign_company_member_as_author", allow: ReasonCompanyMember, match: asAuthor(inRowCompany)},
		},
		{EntityComment, OperationUpdate}: {
			superAdmin,
			{name: "author", allow: ReasonCommentAuthor, match: isAuthor},
			{name: "campaign_company_admin", allow: ReasonCompanyAdmin, match: adminOfRowCompany},
		},
		{EntityComment, OperationDelete}: {
			superAdmin,
			{name: "author", allow: ReasonCommentAuthor, match: isAuthor},
			{name: "campaign_company_admin", allow: ReasonCompanyAdmin, match: adminOfRowCompany},
		},

		{EntityCompanyAccountID, OperationRead}: {superAdmin, companyMember},
	}

	recipientAdmin := rule{name: "recipient_company_admin", allow: ReasonCompanyAdmin, match: adminOfRowCompany}
	for _, op := range []Operation{OperationRead, OperationInsert, OperationUpdate, OperationDelete} {
		p[ruleKey{EntityCampaign, op}] = []rule{superAdmin, owner, companyAdmin}
		p[ruleKey{EntityAudienceRequest, op}] = []rule{superAdmin, owner, companyAdmin}
		p[ruleKey{EntityNotification, op}] = []rule{superAdmin, owner, recipientAdmin}
		if op != OperationRead {
			p[ruleKey{EntityCompanyAccountID, op}] = []rule{superAdmin, companyAdmin}
		}
	}

	// Audit rows are readable like their campaign and written only as a side
	// effect of campaign mutations.
	for _, entity := range []Entity{EntityWorkflowHistory, EntityActivityLog} {
		p[ruleKey{entity, OperationRead}] = []rule{superAdmin, owner, companyAdmin}
		for _, op := range []Operation{OperationInsert, OperationUpdate, OperationDelete} {
			p[ruleKey{entity, op}] = []rule{appendOnly}
		}
	}

	return p
}

// Can evaluates the policy for one (entity, operation) pair. Rules are
// OR-combined; the first matching rule is reported.
func Can(a Actor, op Operation, r Resource) Decision {
	rules, ok := policy[ruleKey{r.Entity, op}]
	if !ok {
		return Decision{Allowed: false, Reason: ReasonDenyUnknownPair}
	}

	deny := ReasonNoMatchingRule
	for _, rl := range rules {
		matched, reason := rl.match(a, r)
		if matched {
			return Decision{Allowed: true, Rule: rl.name, Reason: rl.allow}
		}
		if specificity(reason) > specificity(deny) {
			deny = reason
		}
	}
	return Decision{Allowed: false, Reason: deny}
}

// Explain evaluates every rule of the pair without short-circuiting.
func Explain(a Actor, op Operation, r Resource) []RuleEvaluation {
	rules := policy[ruleKey{r.Entity, op}]
	out := make([]RuleEvaluation, 0, len(rules))
	for _, rl := range rules {
		matched, reason := rl.match(a, r)
		if matched {
			reason = rl.allow
		}
		out = append(out, RuleEvaluation{Rule: rl.name, Matched: matched, Reason: reason})
	}
	return out
}

// specificity ranks deny reasons so the most informative miss is reported.
func specificity(r ReasonCode) int {
	switch r {
	case ReasonNoMatchingRule:
		return 0
	case ReasonDenyNotSuperAdmin, ReasonDenyNotOwner, ReasonDenyNotAuthor:
		return 1
	case ReasonDenyUnassignedActor, ReasonDenyNotCompanyAdmin, ReasonDenyUnassignedTarget, ReasonDenyOtherCompany:
		return 2
	default:
		return 3
	}
}

func isSuperAdmin(a Actor, _ Resource) (bool, ReasonCode) {
	return a.SuperAdmin, ReasonDenyNotSuperAdmin
}

func isOwner(a Actor, r Resource) (bool, ReasonCode) {
	return a.ID == r.OwnerID, ReasonDenyNotOwner
}

func isAuthor(a Actor, r Resource) (bool, ReasonCode) {
	return a.ID == r.OwnerID, ReasonDenyNotAuthor
}

func isCampaignOwner(a Actor, r Resource) (bool, ReasonCode) {
	return r.CampaignOwnerID != uuid.Nil && a.ID == r.CampaignOwnerID, ReasonDenyNotOwner
}

func never(reason ReasonCode) predicate {
	return func(Actor, Resource) (bool, ReasonCode) { return false, reason }
}

// asAuthor requires the actor to be writing as itself before applying p.
func asAuthor(p predicate) predicate {
	return func(a Actor, r Resource) (bool, ReasonCode) {
		if a.ID != r.OwnerID {
			return false, ReasonDenyNotAuthor
		}
		return p(a, r)
	}
}

func memberOf(a Actor, companyID *uuid.UUID) (bool, ReasonCode) {
	switch {
	case a.CompanyID == nil:
		return false, ReasonDenyUnassignedActor
	case companyID == nil:
		return false, ReasonDenyUnassignedTarget
	case *a.CompanyID != *companyID:
		return false, ReasonDenyOtherCompany
	}
	return true, ""
}

func adminOf(a Actor, companyID *uuid.UUID) (bool, ReasonCode) {
	if ok, reason := memberOf(a, companyID); !ok {
		if reason == ReasonDenyOtherCompany || a.Role == store.UserRoleAdmin {
			return false, reason
		}
		return false, ReasonDenyNotCompanyAdmin
	}
	if a.Role != store.UserRoleAdmin {
		return false, ReasonDenyNotCompanyAdmin
	}
	return true, ""
}

func inRowCompany(a Actor, r Resource) (bool, ReasonCode) {
	return memberOf(a, r.CompanyID)
}

func adminOfRowCompany(a Actor, r Resource) (bool, ReasonCode) {
	return adminOf(a, r.CompanyID)
}

func requestedRole(r Resource) store.UserRole {
	if r.Change != nil {
		return r.Change.Role
	}
	return r.TargetRole
}

// selfSignup lets a new identity insert its own unassigned profile.
// Companies are joined by invitation only.
func selfSignup(a Actor, r Resource) (bool, ReasonCode) {
	if a.ID != r.OwnerID {
		return false, ReasonDenyNotOwner
	}
	if r.CompanyID != nil {
		return false, ReasonDenySelfEscalation
	}
	if requestedRole(r) == store.UserRoleSuperAdmin {
		return false, ReasonDenyGrantSuperAdmin
	}
	return true, ""
}

func adminInvite(a Actor, r Resource) (bool, ReasonCode) {
	if ok, reason := adminOf(a, r.CompanyID); !ok {
		return false, reason
	}
	if requestedRole(r) == store.UserRoleSuperAdmin {
		return false, ReasonDenyGrantSuperAdmin
	}
	return true, ""
}

func selfUnchanged(a Actor, r Resource) (bool, ReasonCode) {
	if a.ID != r.OwnerID {
		return false, ReasonDenyNotOwner
	}
	if r.Change != nil && (r.Change.Role != r.TargetRole || !sameCompany(r.Change.CompanyID, r.CompanyID)) {
		return false, ReasonDenySelfEscalation
	}
	return true, ""
}

func adminManage(a Actor, r Resource) (bool, ReasonCode) {
	if ok, reason := adminOf(a, r.CompanyID); !ok {
		return false, reason
	}
	if r.TargetRole == store.UserRoleSuperAdmin {
		return false, ReasonDenyTargetSuperAdmin
	}
	if r.Change != nil {
		if r.Change.Role == store.UserRoleSuperAdmin {
			return false, ReasonDenyGrantSuperAdmin
		}
		if r.Change.CompanyID != nil && !a.InCompany(r.Change.CompanyID) {
			return false, ReasonDenyCrossCompanyMove
		}
	}
	return true, ""
}

// adminClaim assigns an unassigned profile to the admin's own company.
func adminClaim(a Actor, r Resource) (bool, ReasonCode) {
	if r.CompanyID != nil {
		return false, ReasonNoMatchingRule
	}
	if !a.IsCompanyAdmin() {
		if a.CompanyID == nil {
			return false, ReasonDenyUnassignedActor
		}
		return false, ReasonDenyNotCompanyAdmin
	}
	if r.TargetRole == store.UserRoleSuperAdmin {
		return false, ReasonDenyTargetSuperAdmin
	}
	if r.Change == nil || r.Change.CompanyID == nil || !a.InCompany(r.Change.CompanyID) {
		return false, ReasonDenyCrossCompanyMove
	}
	if r.Change.Role == store.UserRoleSuperAdmin {
		return false, ReasonDenyGrantSuperAdmin
	}
	return true, ""
}

func adminRemove(a Actor, r Resource) (bool, ReasonCode) {
	if ok, reason := adminOf(a, r.CompanyID); !ok {
		return false, reason
	}
	if r.TargetRole == store.UserRoleSuperAdmin {
		return false, ReasonDenyTargetSuperAdmin
	}
	return true, ""
}

func adminKeepsAccountID(a Actor, r Resource) (bool, ReasonCode) {
	if ok, reason := adminOf(a, r.CompanyID); !ok {
		return false, reason
	}
	if r.AccountIDChanged {
		return false, ReasonDenyAccountIDImmutable
	}
	return true, ""
}

func sameCompany(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
