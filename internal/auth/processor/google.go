package processor

import (
	"context"
	"errors"

	"campaign-server/internal/authz"
	"campaign-server/internal/observability"
	"campaign-server/internal/store"
)

// SignInWithGoogle exchanges an authorization code for a session token.
// Unknown verified emails get a passwordless identity with an unassigned
// profile, created under the same bootstrap rule as email signup.
func (p *AuthProcessor) SignInWithGoogle(ctx context.Context, code string) (string, error) {
	if p.googleOauthClient == nil {
		return "", ErrGoogleSignInOff
	}

	token, err := p.googleOauthClient.GetAccessToken(ctx, code)
	if err != nil {
		p.logger.InfoWithError(ctx, "failed to get access token", err)
		return "", ErrFailedSignIn
	}

	userInfo, err := p.googleOauthClient.GetUserInfo(ctx, token.AccessToken)
	if err != nil {
		p.logger.InfoWithError(ctx, "failed to get user info", err)
		return "", ErrFailedSignIn
	}
	if userInfo.Email == "" || !userInfo.EmailVerified {
		return "", ErrFailedSignIn
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "email", Value: userInfo.Email})

	identity, err := p.store.GetIdentityByEmail(ctx, userInfo.Email)
	if err == nil {
		return p.GenerateToken(ctx, authz.Principal{ID: identity.ID, Email: identity.Email})
	}
	if !errors.Is(err, store.ErrNotFound) {
		p.logger.Error(ctx, "failed to get identity by email", err)
		return "", ErrFailedSignIn
	}

	user, err := p.store.CreateIdentityWithProfile(ctx, p.selfProfile(ctx, userInfo.Email, userInfo.DisplayName(), nil))
	if err != nil {
		if !errors.Is(err, store.ErrConflict) {
			p.logger.Error(ctx, "failed to create user on google sign in", err)
			return "", ErrFailedSignIn
		}
		// A concurrent sign in created the identity first.
		identity, err := p.store.GetIdentityByEmail(ctx, userInfo.Email)
		if err != nil {
			p.logger.Error(ctx, "failed to get identity by email", err)
			return "", ErrFailedSignIn
		}
		return p.GenerateToken(ctx, authz.Principal{ID: identity.ID, Email: identity.Email})
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "user_id", Value: user.ID},
		observability.Field{Key: "role", Value: user.Role},
	)
	p.logger.Info(ctx, "user signed up with google")
	return p.GenerateToken(ctx, authz.Principal{ID: user.ID, Email: user.Email})
}
