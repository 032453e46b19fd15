package authz

import (
	"campaign-server/internal/store"

	"github.com/google/uuid"
)

// ProfileResource describes an existing profile row.
func ProfileResource(u store.User) Resource {
	return Resource{
		Entity:     EntityUserProfile,
		ID:         u.ID,
		OwnerID:    u.ID,
		CompanyID:  u.CompanyID,
		TargetRole: u.Role,
	}
}

// ProfileUpdate describes a role/company change of an existing profile.
// Name-only updates pass the current role and company.
func ProfileUpdate(u store.User, role store.UserRole, companyID *uuid.UUID) Resource {
	r := ProfileResource(u)
	r.Change = &ProfileChange{Role: role, CompanyID: companyID}
	return r
}

// ProfileInsert describes a profile about to be created.
func ProfileInsert(id uuid.UUID, role store.UserRole, companyID *uuid.UUID) Resource {
	return Resource{
		Entity:     EntityUserProfile,
		ID:         id,
		OwnerID:    id,
		CompanyID:  companyID,
		TargetRole: role,
		Change:     &ProfileChange{Role: role, CompanyID: companyID},
	}
}

// CompanyResource describes a company row.
func CompanyResource(companyID uuid.UUID) Resource {
	return Resource{
		Entity:    EntityCompany,
		ID:        companyID,
		CompanyID: &companyID,
	}
}

// CompanyUpdate describes a company update.
func CompanyUpdate(companyID uuid.UUID, accountIDChanged bool) Resource {
	r := CompanyResource(companyID)
	r.AccountIDChanged = accountIDChanged
	return r
}

// CompanyAccountIDResource describes an account id mapping of a company.
func CompanyAccountIDResource(companyID uuid.UUID, id uuid.UUID) Resource {
	return Resource{
		Entity:    EntityCompanyAccountID,
		ID:        id,
		CompanyID: &companyID,
	}
}

// CampaignResource describes a campaign row, scoped to its owner's company.
func CampaignResource(c store.Campaign) Resource {
	return Resource{
		Entity:    EntityCampaign,
		ID:        c.ID,
		OwnerID:   c.ClientID,
		CompanyID: c.OwnerCompanyID,
	}
}

// CampaignInsert describes a campaign about to be created for owner.
func CampaignInsert(owner store.User) Resource {
	return Resource{
		Entity:    EntityCampaign,
		OwnerID:   owner.ID,
		CompanyID: owner.CompanyID,
	}
}

// WorkflowHistoryResource describes the workflow history of a campaign.
func WorkflowHistoryResource(c store.Campaign) Resource {
	r := CampaignResource(c)
	r.Entity = EntityWorkflowHistory
	return r
}

// ActivityLogResource describes the activity log of a campaign.
func ActivityLogResource(c store.Campaign) Resource {
	r := CampaignResource(c)
	r.Entity = EntityActivityLog
	return r
}

// AudienceRequestResource describes an audience request row.
func AudienceRequestResource(ar store.AudienceRequest) Resource {
	return Resource{
		Entity:    EntityAudienceRequest,
		ID:        ar.ID,
		OwnerID:   ar.UserID,
		CompanyID: ar.OwnerCompanyID,
	}
}

// AudienceRequestInsert describes an audience request about to be created.
func AudienceRequestInsert(owner store.User) Resource {
	return Resource{
		Entity:    EntityAudienceRequest,
		OwnerID:   owner.ID,
		CompanyID: owner.CompanyID,
	}
}

// NotificationResource describes a notification row.
func NotificationResource(n store.Notification) Resource {
	return Resource{
		Entity:    EntityNotification,
		ID:        n.ID,
		OwnerID:   n.UserID,
		CompanyID: n.OwnerCompanyID,
	}
}

// NotificationInsert describes a notification about to be sent to recipient.
func NotificationInsert(recipient store.User) Resource {
	return Resource{
		Entity:    EntityNotification,
		OwnerID:   recipient.ID,
		CompanyID: recipient.CompanyID,
	}
}

// CommentResource describes a comment row, scoped to its campaign.
func CommentResource(cm store.CampaignComment) Resource {
	return Resource{
		Entity:          EntityComment,
		ID:              cm.ID,
		OwnerID:         cm.UserID,
		CompanyID:       cm.CampaignCompanyID,
		CampaignOwnerID: cm.CampaignOwnerID,
	}
}

// CommentInsert describes a comment authorID is about to post on campaign.
func CommentInsert(authorID uuid.UUID, campaign store.Campaign) Resource {
	return Resource{
		Entity:          EntityComment,
		OwnerID:         authorID,
		CompanyID:       campaign.OwnerCompanyID,
		CampaignOwnerID: campaign.ClientID,
	}
}
