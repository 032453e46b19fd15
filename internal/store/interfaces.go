package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Storer defines all public methods available on the Store
type Storer interface {
	// Database
	DB() *sqlx.DB
	Ping(ctx context.Context) error

	// Identity operations
	CreateIdentityWithProfile(ctx context.Context, params CreateProfileParams) (User, error)
	GetIdentityByEmail(ctx context.Context, email string) (Identity, error)
	GetIdentityByID(ctx context.Context, id uuid.UUID) (Identity, error)
	IdentityEmailExists(ctx context.Context, email string) (bool, error)
	AcceptInvitation(ctx context.Context, email, passwordHash string, verify func(pending Identity) error) (Identity, error)

	// Profile operations
	GetProfileAccess(ctx context.Context, userID uuid.UUID) (ProfileAccess, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (User, error)
	ListUsersByCompany(ctx context.Context, companyID uuid.UUID) ([]User, error)
	ListUnassignedUsers(ctx context.Context) ([]User, error)
	UpdateUserName(ctx context.Context, userID uuid.UUID, name string) (User, error)
	UpdateUserMembership(ctx context.Context, params UpdateMembershipParams) (User, error)

	// Company operations
	CreateCompany(ctx context.Context, params CreateCompanyParams) (Company, error)
	GetCompanyByID(ctx context.Context, companyID uuid.UUID) (Company, error)
	ListCompanies(ctx context.Context) ([]Company, error)
	UpdateCompany(ctx context.Context, companyID uuid.UUID, params UpdateCompanyParams) (Company, error)
	DeleteCompany(ctx context.Context, companyID uuid.UUID) error

	// Company account id operations
	CreateCompanyAccountID(ctx context.Context, params CreateCompanyAccountIDParams) (CompanyAccountID, error)
	GetCompanyAccountIDByID(ctx context.Context, id uuid.UUID) (CompanyAccountID, error)
	ListCompanyAccountIDs(ctx context.Context, companyID uuid.UUID) ([]CompanyAccountID, error)
	UpdateCompanyAccountID(ctx context.Context, id uuid.UUID, params UpdateCompanyAccountIDParams) (CompanyAccountID, error)
	DeleteCompanyAccountID(ctx context.Context, id uuid.UUID) error

	// Campaign operations
	CreateCampaign(ctx context.Context, params CreateCampaignParams) (Campaign, error)
	GetCampaignByID(ctx context.Context, campaignID uuid.UUID) (Campaign, error)
	ListCampaigns(ctx context.Context, filter CampaignFilter) ([]Campaign, error)
	UpdateCampaign(ctx context.Context, params UpdateCampaignParams) (Campaign, error)
	TransitionCampaign(ctx context.Context, params TransitionCampaignParams) (Campaign, error)
	ArchiveCampaign(ctx context.Context, params ArchiveCampaignParams) (Campaign, error)
	ListWorkflowHistory(ctx context.Context, campaignID uuid.UUID) ([]CampaignWorkflowHistory, error)
	ListActivityLog(ctx context.Context, campaignID uuid.UUID) ([]CampaignActivityLog, error)

	// Audience request operations
	CreateAudienceRequest(ctx context.Context, params CreateAudienceRequestParams) (AudienceRequest, error)
	GetAudienceRequestByID(ctx context.Context, requestID uuid.UUID) (AudienceRequest, error)
	ListAudienceRequests(ctx context.Context, filter AudienceRequestFilter) ([]AudienceRequest, error)
	UpdateAudienceRequest(ctx context.Context, params UpdateAudienceRequestParams) (AudienceRequest, error)
	ReviewAudienceRequest(ctx context.Context, params ReviewAudienceRequestParams) (AudienceRequest, *Campaign, error)
	DeleteAudienceRequest(ctx context.Context, requestID uuid.UUID) error

	// Comment operations
	CreateComment(ctx context.Context, params CreateCommentParams) (CampaignComment, error)
	GetCommentByID(ctx context.Context, commentID uuid.UUID) (CampaignComment, error)
	ListCommentsByCampaign(ctx context.Context, campaignID uuid.UUID) ([]CampaignComment, error)
	UpdateCommentBody(ctx context.Context, commentID uuid.UUID, body string) (CampaignComment, error)
	DeleteComment(ctx context.Context, commentID uuid.UUID) error

	// Notification operations
	CreateNotification(ctx context.Context, params CreateNotificationParams) (Notification, error)
	GetNotificationByID(ctx context.Context, notificationID uuid.UUID) (Notification, error)
	ListNotificationsByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]Notification, error)
	MarkNotificationRead(ctx context.Context, notificationID uuid.UUID) (Notification, error)
	MarkAllNotificationsRead(ctx context.Context, userID uuid.UUID) (int64, error)
	DeleteNotification(ctx context.Context, notificationID uuid.UUID) error
}

var _ Storer = (*Store)(nil)
