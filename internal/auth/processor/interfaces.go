package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=interfaces.go -destination=mocks_test.go -package=processor

import (
	"context"

	"campaign-server/internal/clients/googleoauth"
	"campaign-server/internal/store"

	"github.com/google/uuid"
)

// AuthStore defines the database operations required by AuthProcessor
type AuthStore interface {
	IdentityEmailExists(ctx context.Context, email string) (bool, error)
	CreateIdentityWithProfile(ctx context.Context, params store.CreateProfileParams) (store.User, error)
	GetIdentityByEmail(ctx context.Context, email string) (store.Identity, error)
	AcceptInvitation(ctx context.Context, email, passwordHash string, verify func(pending store.Identity) error) (store.Identity, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (store.User, error)
}

// CaptchaVerifier checks the captcha token sent with public auth forms
type CaptchaVerifier interface {
	Verify(ctx context.Context, token string, remoteIP string) error
	IsEnabled() bool
}

// GoogleOAuthClient defines the OAuth operations required by AuthProcessor
type GoogleOAuthClient interface {
	GetAccessToken(ctx context.Context, code string) (googleoauth.TokenResponse, error)
	GetUserInfo(ctx context.Context, token string) (googleoauth.UserInfo, error)
}
