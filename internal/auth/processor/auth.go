package processor

import (
	"context"
	"errors"
	"time"

	"campaign-server/internal/authz"
	"campaign-server/internal/invitation"
	"campaign-server/internal/observability"
	"campaign-server/internal/store"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInviteNotFound      = errors.New("no pending invitation for email")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrInvalidJWTToken     = errors.New("invalid jwt token")
	ErrParseJWTToken       = errors.New("failed to parse jwt token")
	ErrExpiredToken        = errors.New("token expired")
	ErrFailedSignIn        = errors.New("failed to sign in")
	ErrMissingTokenSubject = errors.New("token has no valid subject")
	ErrInvalidInviteToken  = errors.New("invalid invitation token")
	ErrInviteExpired       = errors.New("invitation expired")
	ErrCaptchaFailed       = errors.New("captcha verification failed")
	ErrGoogleSignInOff     = errors.New("google sign in is not configured")
)

// Config holds the token settings of the identity provider
type Config struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type AuthProcessor struct {
	store             AuthStore
	engine            *authz.Engine
	resolver          *authz.Resolver
	config            Config
	captcha           CaptchaVerifier
	googleOauthClient GoogleOAuthClient
	logger            *observability.Logger
	now               func() time.Time
}

// New creates an AuthProcessor. captcha and googleOauthClient may be nil:
// a nil captcha skips verification and a nil googleOauthClient disables
// Google sign in.
func New(
	store AuthStore,
	engine *authz.Engine,
	resolver *authz.Resolver,
	config Config,
	captcha CaptchaVerifier,
	googleOauthClient GoogleOAuthClient,
	logger *observability.Logger,
) AuthProcessor {
	if config.TokenTTL <= 0 {
		config.TokenTTL = 24 * time.Hour
	}
	return AuthProcessor{
		store:             store,
		engine:            engine,
		resolver:          resolver,
		config:            config,
		captcha:           captcha,
		googleOauthClient: googleOauthClient,
		logger:            logger,
		now:               time.Now,
	}
}

// SignupParams represents an email signup. Self signups never join a
// company; existing companies are joined by invitation only.
type SignupParams struct {
	Email        string
	Password     string
	Name         string
	CaptchaToken string
	RemoteIP     string
}

// AcceptInviteParams represents the acceptance of an invitation link
type AcceptInviteParams struct {
	Email        string
	Token        string
	Password     string
	CaptchaToken string
	RemoteIP     string
}

// Me is the caller's profile together with the resolved actor
type Me struct {
	Profile store.User  `json:"profile"`
	Actor   authz.Actor `json:"actor"`
}

// Signup creates an identity and its profile. The role follows the
// first-user-admin rule and the profile insert is authorized as the new
// identity before it is committed.
func (p *AuthProcessor) Signup(ctx context.Context, params SignupParams) (store.User, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "email", Value: params.Email})

	if err := p.verifyCaptcha(ctx, params.CaptchaToken, params.RemoteIP); err != nil {
		return store.User{}, err
	}

	exists, err := p.store.IdentityEmailExists(ctx, params.Email)
	if err != nil {
		p.logger.Error(ctx, "failed to check if email exists", err)
		return store.User{}, err
	}
	if exists {
		return store.User{}, ErrEmailAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		p.logger.Error(ctx, "failed to hash password", err)
		return store.User{}, err
	}
	hash := string(hashed)

	user, err := p.store.CreateIdentityWithProfile(ctx, p.selfProfile(ctx, params.Email, params.Name, &hash))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrConflict):
			return store.User{}, ErrEmailAlreadyExists
		case errors.Is(err, authz.ErrPermissionDenied):
			return store.User{}, err
		}
		p.logger.Error(ctx, "failed to create user", err)
		return store.User{}, err
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "user_id", Value: user.ID},
		observability.Field{Key: "role", Value: user.Role},
	)
	p.logger.Info(ctx, "user signed up")
	return user, nil
}

// Login verifies the password and issues a token
func (p *AuthProcessor) Login(ctx context.Context, email string, password string) (string, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "email", Value: email})

	identity, err := p.store.GetIdentityByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		p.logger.Error(ctx, "failed to get identity by email", err)
		return "", err
	}
	if identity.PasswordHash == nil {
		// Invited identities log in only after accepting the invitation.
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*identity.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return p.GenerateToken(ctx, authz.Principal{ID: identity.ID, Email: identity.Email})
}

// AcceptInvite verifies the invitation token, sets the password of the
// invited identity and signs it in. The token is checked and cleared in the
// transaction that sets the password.
func (p *AuthProcessor) AcceptInvite(ctx context.Context, params AcceptInviteParams) (string, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "email", Value: params.Email})

	if params.Token == "" {
		return "", ErrInvalidInviteToken
	}
	if err := p.verifyCaptcha(ctx, params.CaptchaToken, params.RemoteIP); err != nil {
		return "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		p.logger.Error(ctx, "failed to hash password", err)
		return "", err
	}

	identity, err := p.store.AcceptInvitation(ctx, params.Email, string(hashed), func(pending store.Identity) error {
		if pending.InviteTokenHash == nil || !invitation.Matches(*pending.InviteTokenHash, params.Token) {
			return ErrInvalidInviteToken
		}
		if invitation.Expired(pending.InviteExpiresAt, p.now()) {
			return ErrInviteExpired
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return "", ErrInviteNotFound
		case errors.Is(err, ErrInvalidInviteToken), errors.Is(err, ErrInviteExpired):
			return "", err
		}
		p.logger.Error(ctx, "failed to accept invitation", err)
		return "", err
	}

	p.logger.Info(ctx, "invitation accepted")
	return p.GenerateToken(ctx, authz.Principal{ID: identity.ID, Email: identity.Email})
}

// selfProfile builds the profile insert of an identity signing itself up.
// The profile starts unassigned and is authorized as the new identity.
func (p *AuthProcessor) selfProfile(ctx context.Context, email, name string, passwordHash *string) store.CreateProfileParams {
	return store.CreateProfileParams{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		AssignRole:   p.resolver.RoleAssigner(email, store.UserRoleUser, nil),
		Check: func(profile store.User) error {
			self := authz.Actor{
				ID:         profile.ID,
				Email:      profile.Email,
				Role:       store.UserRoleUser,
				SuperAdmin: p.resolver.IsSuperAdmin(profile.Email),
			}
			return p.engine.Authorize(ctx, self, authz.OperationInsert,
				authz.ProfileInsert(profile.ID, profile.Role, profile.CompanyID))
		},
	}
}

func (p *AuthProcessor) verifyCaptcha(ctx context.Context, token, remoteIP string) error {
	if p.captcha == nil || !p.captcha.IsEnabled() {
		return nil
	}
	if err := p.captcha.Verify(ctx, token, remoteIP); err != nil {
		p.logger.InfoWithError(ctx, "captcha rejected", err)
		return ErrCaptchaFailed
	}
	return nil
}

// GetMe returns the caller's own profile
func (p *AuthProcessor) GetMe(ctx context.Context, actor authz.Actor) (Me, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "user_id", Value: actor.ID})

	user, err := p.store.GetUserByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Me{}, ErrProfileNotFound
		}
		p.logger.Error(ctx, "failed to get user by id", err)
		return Me{}, err
	}
	if err := p.engine.Authorize(ctx, actor, authz.OperationRead, authz.ProfileResource(user)); err != nil {
		return Me{}, err
	}
	return Me{Profile: user, Actor: actor}, nil
}
