package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"campaign-server/internal/apierrors"
	"campaign-server/internal/auth/processor"
	"campaign-server/internal/authz"
	"campaign-server/internal/observability"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authProcessor processor.AuthProcessor
	resolver      *authz.Resolver
	webAppURI     string
	logger        *observability.Logger
}

type EmailSignupRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	Name         string `json:"name" binding:"required,max=255"`
	CaptchaToken string `json:"captcha_token"`
}

type EmailLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type AcceptInviteRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Token        string `json:"token" binding:"required"`
	Password     string `json:"password" binding:"required,min=8"`
	CaptchaToken string `json:"captcha_token"`
}

func New(authProcessor processor.AuthProcessor, resolver *authz.Resolver, webAppURI string, logger *observability.Logger) Handler {
	return Handler{authProcessor: authProcessor, resolver: resolver, webAppURI: webAppURI, logger: logger}
}

func (h *Handler) HandleEmailLogin(c *gin.Context) {
	ctx := c.Request.Context()
	var req EmailLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	token, err := h.authProcessor.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *Handler) HandleEmailSignup(c *gin.Context) {
	ctx := c.Request.Context()
	var req EmailSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	user, err := h.authProcessor.Signup(ctx, processor.SignupParams{
		Email:        req.Email,
		Password:     req.Password,
		Name:         req.Name,
		CaptchaToken: req.CaptchaToken,
		RemoteIP:     c.ClientIP(),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) HandleAcceptInvite(c *gin.Context) {
	ctx := c.Request.Context()
	var req AcceptInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	token, err := h.authProcessor.AcceptInvite(ctx, processor.AcceptInviteParams{
		Email:        req.Email,
		Token:        req.Token,
		Password:     req.Password,
		CaptchaToken: req.CaptchaToken,
		RemoteIP:     c.ClientIP(),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// HandleGoogleOauthCallback completes the Google sign in and hands the
// session token to the web app.
func (h *Handler) HandleGoogleOauthCallback(c *gin.Context) {
	ctx := c.Request.Context()
	code := c.Query("code")
	if code == "" {
		apierrors.BadRequest(c, apierrors.CodeInvalidInput, "Authorization code is missing")
		return
	}

	token, err := h.authProcessor.SignInWithGoogle(ctx, code)
	if err != nil {
		h.handleError(c, err)
		return
	}

	redirectURL, err := url.Parse(strings.TrimRight(h.webAppURI, "/") + "/oauth/signedin")
	if err != nil {
		apierrors.InternalError(c, err)
		return
	}
	query := redirectURL.Query()
	query.Set("token", token)
	redirectURL.RawQuery = query.Encode()

	c.Redirect(http.StatusFound, redirectURL.String())
}

// HandleJWTMiddleware authenticates the bearer token and resolves the
// caller's role and company once per request.
func (h *Handler) HandleJWTMiddleware(c *gin.Context) {
	ctx := c.Request.Context()
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		apierrors.Unauthorized(c, "Authorization token is missing or invalid")
		return
	}

	claims, err := h.authProcessor.ValidateJWTToken(ctx, strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		apierrors.Unauthorized(c, "Authorization token is missing or invalid")
		return
	}
	principal, err := claims.Principal()
	if err != nil {
		apierrors.Unauthorized(c, "Authorization token is missing or invalid")
		return
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "user_id", Value: principal.ID})
	ctx = authz.WithPrincipal(ctx, principal)
	ctx = authz.WithActor(ctx, h.resolver.Resolve(ctx, principal))
	c.Request = c.Request.WithContext(ctx)
	c.Set("User-ID", principal.ID.String())
	c.Next()
}

func (h *Handler) HandleGetMe(c *gin.Context) {
	ctx := c.Request.Context()
	actor, ok := authz.ActorFromContext(ctx)
	if !ok {
		apierrors.Unauthorized(c, "Authentication required")
		return
	}

	me, err := h.authProcessor.GetMe(ctx, actor)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, me)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, processor.ErrEmailAlreadyExists):
		apierrors.Conflict(c, apierrors.CodeEmailExists, "Email already exists")
	case errors.Is(err, processor.ErrInvalidCredentials):
		apierrors.Unauthorized(c, "Invalid email or password")
	case errors.Is(err, processor.ErrInviteNotFound):
		apierrors.NotFound(c, "No pending invitation for this email")
	case errors.Is(err, processor.ErrProfileNotFound):
		apierrors.NotFound(c, "Profile not found")
	case errors.Is(err, processor.ErrInvalidInviteToken):
		apierrors.BadRequest(c, apierrors.CodeInvalidInvite, "Invitation link is invalid")
	case errors.Is(err, processor.ErrInviteExpired):
		apierrors.BadRequest(c, apierrors.CodeInviteExpired, "Invitation link has expired")
	case errors.Is(err, processor.ErrCaptchaFailed):
		apierrors.BadRequest(c, apierrors.CodeCaptchaFailed, "Captcha verification failed")
	case errors.Is(err, processor.ErrFailedSignIn):
		apierrors.Unauthorized(c, "Sign in failed")
	case errors.Is(err, processor.ErrGoogleSignInOff):
		apierrors.NotFound(c, "Google sign in is not configured")
	default:
		apierrors.RespondWithError(c, err)
	}
}
