package googleoauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"campaign-server/internal/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient("client-id", "client-secret", "https://api.example.com/api/auth/google/callback", observability.NewNopLogger())
	c.tokenURL = srv.URL + "/token"
	c.userInfoURL = srv.URL + "/userinfo"
	return c
}

func TestGetAccessToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("code") != "good-code" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_grant", "error_description": "Bad Request"})
			return
		}
		assert.Equal(t, "client-id", r.PostForm.Get("client_id"))
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		_ = json.NewEncoder(w).Encode(TokenResponse{AccessToken: "access", IDToken: "id"})
	})
	c := newTestClient(t, mux)

	token, err := c.GetAccessToken(context.Background(), "good-code")
	require.NoError(t, err)
	assert.Equal(t, "access", token.AccessToken)

	_, err = c.GetAccessToken(context.Background(), "bad-code")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bad Request")
}

func TestGetUserInfo(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"sub":"123","email":"dana@acme.com","email_verified":true,"given_name":"Dana","family_name":"Lee"}`))
	})
	c := newTestClient(t, mux)

	info, err := c.GetUserInfo(context.Background(), "access")
	require.NoError(t, err)
	assert.Equal(t, "dana@acme.com", info.Email)
	assert.True(t, info.EmailVerified)
	assert.Equal(t, "Dana Lee", info.DisplayName())

	_, err = c.GetUserInfo(context.Background(), "expired")
	assert.Error(t, err)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Dana Lee", UserInfo{Name: "Dana Lee", FirstName: "X"}.DisplayName())
	assert.Equal(t, "dana@acme.com", UserInfo{Email: "dana@acme.com"}.DisplayName())
}
