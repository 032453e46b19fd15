package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Identity is the credential record of the identity provider.
type Identity struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	Email           string     `db:"email" json:"email"`
	PasswordHash    *string    `db:"password_hash" json:"-"`
	InviteTokenHash *string    `db:"invite_token_hash" json:"-"`
	InviteExpiresAt *time.Time `db:"invite_expires_at" json:"-"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

// User is a profile row. ID equals the identity id.
type User struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	Email     string     `db:"email" json:"email"`
	Name      string     `db:"name" json:"name"`
	Role      UserRole   `db:"role" json:"role"`
	CompanyID *uuid.UUID `db:"company_id" json:"company_id,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// ProfileAccess is the minimal projection used for role and company
// resolution.
type ProfileAccess struct {
	Role      UserRole   `db:"role"`
	CompanyID *uuid.UUID `db:"company_id"`
}

type Company struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	AccountID *string   `db:"account_id" json:"account_id,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type CompanyAccountID struct {
	ID          uuid.UUID `db:"id" json:"id"`
	CompanyID   uuid.UUID `db:"company_id" json:"company_id"`
	Platform    string    `db:"platform" json:"platform"`
	AccountID   string    `db:"account_id" json:"account_id"`
	AccountName string    `db:"account_name" json:"account_name"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type Campaign struct {
	ID         uuid.UUID      `db:"id" json:"id"`
	Name       string         `db:"name" json:"name"`
	ClientID   uuid.UUID      `db:"client_id" json:"client_id"`
	Audiences  pq.StringArray `db:"audiences" json:"audiences"`
	Platforms  pq.StringArray `db:"platforms" json:"platforms"`
	Budget     float64        `db:"budget" json:"budget"`
	StartDate  *time.Time     `db:"start_date" json:"start_date,omitempty"`
	EndDate    *time.Time     `db:"end_date" json:"end_date,omitempty"`
	Status     string         `db:"status" json:"status"`
	Archived   bool           `db:"archived" json:"archived"`
	ApprovedAt *time.Time     `db:"approved_at" json:"approved_at,omitempty"`
	RequestID  *uuid.UUID     `db:"request_id" json:"request_id,omitempty"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at" json:"updated_at"`

	// Company of the owning profile at read time (joined, not stored).
	OwnerCompanyID *uuid.UUID `db:"owner_company_id" json:"-"`
}

type AudienceRequest struct {
	ID          uuid.UUID      `db:"id" json:"id"`
	UserID      uuid.UUID      `db:"user_id" json:"user_id"`
	Name        string         `db:"name" json:"name"`
	Audiences   pq.StringArray `db:"audiences" json:"audiences"`
	Platforms   pq.StringArray `db:"platforms" json:"platforms"`
	Budget      float64        `db:"budget" json:"budget"`
	StartDate   *time.Time     `db:"start_date" json:"start_date,omitempty"`
	EndDate     *time.Time     `db:"end_date" json:"end_date,omitempty"`
	Notes       string         `db:"notes" json:"notes"`
	Status      string         `db:"status" json:"status"`
	ReviewNotes string         `db:"review_notes" json:"review_notes"`
	ReviewedBy  *uuid.UUID     `db:"reviewed_by" json:"reviewed_by,omitempty"`
	CampaignID  *uuid.UUID     `db:"campaign_id" json:"campaign_id,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`

	OwnerCompanyID *uuid.UUID `db:"owner_company_id" json:"-"`
}

type CampaignComment struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	CampaignID      uuid.UUID  `db:"campaign_id" json:"campaign_id"`
	UserID          uuid.UUID  `db:"user_id" json:"user_id"`
	ParentCommentID *uuid.UUID `db:"parent_comment_id" json:"parent_comment_id,omitempty"`
	Body            string     `db:"body" json:"body"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`

	// Ownership context of the parent campaign (joined).
	CampaignOwnerID   uuid.UUID  `db:"campaign_owner_id" json:"-"`
	CampaignCompanyID *uuid.UUID `db:"campaign_company_id" json:"-"`
}

type CampaignWorkflowHistory struct {
	ID         uuid.UUID `db:"id" json:"id"`
	CampaignID uuid.UUID `db:"campaign_id" json:"campaign_id"`
	FromStatus *string   `db:"from_status" json:"from_status,omitempty"`
	ToStatus   string    `db:"to_status" json:"to_status"`
	Notes      string    `db:"notes" json:"notes"`
	ChangedBy  uuid.UUID `db:"changed_by" json:"changed_by"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type CampaignActivityLog struct {
	ID         uuid.UUID `db:"id" json:"id"`
	CampaignID uuid.UUID `db:"campaign_id" json:"campaign_id"`
	UserID     uuid.UUID `db:"user_id" json:"user_id"`
	Action     string    `db:"action" json:"action"`
	Field      *string   `db:"field" json:"field,omitempty"`
	OldValue   *string   `db:"old_value" json:"old_value,omitempty"`
	NewValue   *string   `db:"new_value" json:"new_value,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type Notification struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	UserID     uuid.UUID  `db:"user_id" json:"user_id"`
	Title      string     `db:"title" json:"title"`
	Message    string     `db:"message" json:"message"`
	Kind       string     `db:"kind" json:"kind"`
	CampaignID *uuid.UUID `db:"campaign_id" json:"campaign_id,omitempty"`
	Read       bool       `db:"read" json:"read"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`

	OwnerCompanyID *uuid.UUID `db:"owner_company_id" json:"-"`
}
