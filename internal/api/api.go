package api

import (
	"net/http"

	audienceHandler "campaign-server/internal/audience/handler"
	authHandler "campaign-server/internal/auth/handler"
	authzHandler "campaign-server/internal/authz/handler"
	campaignHandler "campaign-server/internal/campaign/handler"
	commentHandler "campaign-server/internal/comment/handler"
	companyHandler "campaign-server/internal/company/handler"
	notificationHandler "campaign-server/internal/notification/handler"
	"campaign-server/internal/ratelimit"
	teamHandler "campaign-server/internal/team/handler"

	"github.com/gin-gonic/gin"
)

type API struct {
	router              *gin.RouterGroup
	rateLimiter         *ratelimit.Service
	authHandler         authHandler.Handler
	authzHandler        authzHandler.Handler
	teamHandler         teamHandler.Handler
	companyHandler      companyHandler.Handler
	campaignHandler     campaignHandler.Handler
	audienceHandler     audienceHandler.Handler
	commentHandler      commentHandler.Handler
	notificationHandler notificationHandler.Handler
}

func New(
	router *gin.RouterGroup,
	rateLimiter *ratelimit.Service,
	authHandler authHandler.Handler,
	authzHandler authzHandler.Handler,
	teamHandler teamHandler.Handler,
	companyHandler companyHandler.Handler,
	campaignHandler campaignHandler.Handler,
	audienceHandler audienceHandler.Handler,
	commentHandler commentHandler.Handler,
	notificationHandler notificationHandler.Handler,
) API {
	return API{
		router:              router,
		rateLimiter:         rateLimiter,
		authHandler:         authHandler,
		authzHandler:        authzHandler,
		teamHandler:         teamHandler,
		companyHandler:      companyHandler,
		campaignHandler:     campaignHandler,
		audienceHandler:     audienceHandler,
		commentHandler:      commentHandler,
		notificationHandler: notificationHandler,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()
	apiGroup := a.router.Group("/api")
	{
		authGroup := apiGroup.Group("/auth")
		authGroup.POST("/login/email", a.authHandler.HandleEmailLogin)
		authGroup.POST("/signup/email", a.authHandler.HandleEmailSignup)
		authGroup.POST("/accept-invite", a.authHandler.HandleAcceptInvite)
		authGroup.GET("/google/callback", a.authHandler.HandleGoogleOauthCallback)
	}
	protectedGroup := apiGroup.Group("/protected", a.authHandler.HandleJWTMiddleware, a.rateLimiter.Middleware())
	{
		protectedGroup.GET("/me", a.authHandler.HandleGetMe)

		debugGroup := protectedGroup.Group("/debug")
		debugGroup.GET("/whoami", a.authzHandler.HandleWhoAmI)
		debugGroup.POST("/explain", a.authzHandler.HandleExplain)

		teamGroup := protectedGroup.Group("/team")
		teamGroup.GET("/members", a.teamHandler.HandleListMembers)
		teamGroup.POST("/invite", a.teamHandler.HandleInviteMember)
		teamGroup.PUT("/members/:user_id/role", a.teamHandler.HandleUpdateRole)
		teamGroup.POST("/members/:user_id/assign", a.teamHandler.HandleAssignMember)
		teamGroup.PUT("/members/:user_id", a.teamHandler.HandleUpdateMember)
		teamGroup.DELETE("/members/:user_id", a.teamHandler.HandleRemoveMember)

		protectedGroup.GET("/unassigned-users", a.companyHandler.HandleListUnassignedUsers)
		companyGroup := protectedGroup.Group("/companies")
		companyGroup.GET("", a.companyHandler.HandleListCompanies)
		companyGroup.POST("", a.companyHandler.HandleCreateCompany)
		companyGroup.GET("/:company_id", a.companyHandler.HandleGetCompany)
		companyGroup.PUT("/:company_id", a.companyHandler.HandleUpdateCompany)
		companyGroup.DELETE("/:company_id", a.companyHandler.HandleDeleteCompany)
		companyGroup.GET("/:company_id/account-ids", a.companyHandler.HandleListAccountIDs)
		companyGroup.POST("/:company_id/account-ids", a.companyHandler.HandleCreateAccountID)
		companyGroup.PUT("/:company_id/account-ids/:account_id_id", a.companyHandler.HandleUpdateAccountID)
		companyGroup.DELETE("/:company_id/account-ids/:account_id_id", a.companyHandler.HandleDeleteAccountID)

		campaignGroup := protectedGroup.Group("/campaigns")
		campaignGroup.GET("", a.campaignHandler.HandleListCampaigns)
		campaignGroup.POST("", a.campaignHandler.HandleCreateCampaign)
		campaignGroup.GET("/:campaign_id", a.campaignHandler.HandleGetCampaign)
		campaignGroup.PUT("/:campaign_id", a.campaignHandler.HandleUpdateCampaign)
		campaignGroup.DELETE("/:campaign_id", a.campaignHandler.HandleArchiveCampaign)
		campaignGroup.POST("/:campaign_id/transitions", a.campaignHandler.HandleTransitionCampaign)
		campaignGroup.GET("/:campaign_id/next-statuses", a.campaignHandler.HandleGetNextStatuses)
		campaignGroup.GET("/:campaign_id/history", a.campaignHandler.HandleGetWorkflowHistory)
		campaignGroup.GET("/:campaign_id/activity", a.campaignHandler.HandleGetActivityLog)
		campaignGroup.GET("/:campaign_id/comments", a.commentHandler.HandleListComments)
		campaignGroup.POST("/:campaign_id/comments", a.commentHandler.HandleCreateComment)
		campaignGroup.PUT("/:campaign_id/comments/:comment_id", a.commentHandler.HandleUpdateComment)
		campaignGroup.DELETE("/:campaign_id/comments/:comment_id", a.commentHandler.HandleDeleteComment)

		audienceGroup := protectedGroup.Group("/audience-requests")
		audienceGroup.GET("", a.audienceHandler.HandleListRequests)
		audienceGroup.POST("", a.audienceHandler.HandleCreateRequest)
		audienceGroup.GET("/:request_id", a.audienceHandler.HandleGetRequest)
		audienceGroup.PUT("/:request_id", a.audienceHandler.HandleUpdateRequest)
		audienceGroup.DELETE("/:request_id", a.audienceHandler.HandleDeleteRequest)
		audienceGroup.POST("/:request_id/review", a.audienceHandler.HandleReviewRequest)

		notificationGroup := protectedGroup.Group("/notifications")
		notificationGroup.GET("", a.notificationHandler.HandleListNotifications)
		notificationGroup.POST("", a.notificationHandler.HandleCreateNotification)
		notificationGroup.PUT("/read-all", a.notificationHandler.HandleMarkAllRead)
		notificationGroup.PUT("/:notification_id/read", a.notificationHandler.HandleMarkRead)
		notificationGroup.DELETE("/:notification_id", a.notificationHandler.HandleDeleteNotification)
	}
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
}
