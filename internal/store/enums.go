package store

// UserRole is the role column of a profile.
type UserRole string

// User role ENUMs
const (
	UserRoleUser       UserRole = "user"
	UserRoleAdmin      UserRole = "admin"
	UserRoleSuperAdmin UserRole = "super_admin"
)

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleUser, UserRoleAdmin, UserRoleSuperAdmin:
		return true
	}
	return false
}

// Campaign status ENUMs
const (
	CampaignStatusDraft           = "draft"
	CampaignStatusSubmitted       = "submitted"
	CampaignStatusPendingReview   = "pending_review"
	CampaignStatusApproved        = "approved"
	CampaignStatusInProgress      = "in_progress"
	CampaignStatusWaitingOnClient = "waiting_on_client"
	CampaignStatusDelivered       = "delivered"
	CampaignStatusLive            = "live"
	CampaignStatusPaused          = "paused"
	CampaignStatusCompleted       = "completed"
	CampaignStatusFailed          = "failed"
)

// Audience request ENUMs
const (
	AudienceRequestStatusPending  = "pending"
	AudienceRequestStatusReviewed = "reviewed"
	AudienceRequestStatusApproved = "approved"
	AudienceRequestStatusRejected = "rejected"
)

// Activity log actions
const (
	ActivityActionCreated       = "created"
	ActivityActionUpdated       = "updated"
	ActivityActionStatusChanged = "status_changed"
	ActivityActionArchived      = "archived"
)

// Notification kinds
const (
	NotificationKindInfo          = "info"
	NotificationKindStatusChanged = "campaign_status_changed"
	NotificationKindComment       = "comment"
	NotificationKindInvite        = "invite"
)
