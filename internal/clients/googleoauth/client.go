package googleoauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"campaign-server/internal/observability"
)

const (
	defaultTokenURL    = "https://oauth2.googleapis.com/token"
	defaultUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"
)

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token"`
}

type UserInfo struct {
	ID            string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	FirstName     string `json:"given_name"`
	LastName      string `json:"family_name"`
}

// DisplayName prefers the full name and falls back to the email.
func (u UserInfo) DisplayName() string {
	if name := strings.TrimSpace(u.Name); name != "" {
		return name
	}
	if name := strings.TrimSpace(u.FirstName + " " + u.LastName); name != "" {
		return name
	}
	return u.Email
}

type Client struct {
	clientID     string
	clientSecret string
	redirectURL  string
	tokenURL     string
	userInfoURL  string
	logger       *observability.Logger
	httpClient   *http.Client
}

func NewClient(clientID, clientSecret, redirectURL string, logger *observability.Logger) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURL:  redirectURL,
		tokenURL:     defaultTokenURL,
		userInfoURL:  defaultUserInfoURL,
		logger:       logger,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) GetAccessToken(ctx context.Context, code string) (TokenResponse, error) {
	form := url.Values{}
	form.Set("code", code)
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("redirect_uri", c.redirectURL)
	form.Set("grant_type", "authorization_code")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		c.logger.InfoWithError(ctx, "failed to create request", err)
		return TokenResponse{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error(ctx, "failed to make request", err)
		return TokenResponse{}, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.InfoWithError(ctx, "failed to read response body", err)
		return TokenResponse{}, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResponse struct {
			Error            string `json:"error"`
			ErrorDescription string `json:"error_description"`
		}
		if err := json.Unmarshal(body, &errorResponse); err != nil {
			c.logger.InfoWithError(ctx, "failed to unmarshal response body", err)
			return TokenResponse{}, fmt.Errorf("failed to get access token: status %d", resp.StatusCode)
		}
		c.logger.Error(ctx, "failed to get access token",
			fmt.Errorf("error: %s, description: %s", errorResponse.Error, errorResponse.ErrorDescription))
		return TokenResponse{}, fmt.Errorf("failed to get access token: %s", errorResponse.ErrorDescription)
	}

	var tokenResponse TokenResponse
	if err := json.Unmarshal(body, &tokenResponse); err != nil {
		c.logger.InfoWithError(ctx, "failed to unmarshal response body", err)
		return TokenResponse{}, fmt.Errorf("failed to unmarshal response body: %w", err)
	}
	return tokenResponse, nil
}

func (c *Client) GetUserInfo(ctx context.Context, token string) (UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userInfoURL, nil)
	if err != nil {
		c.logger.InfoWithError(ctx, "failed to create request", err)
		return UserInfo{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.InfoWithError(ctx, "failed to make request", err)
		return UserInfo{}, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return UserInfo{}, fmt.Errorf("failed to get user info: status %d", resp.StatusCode)
	}

	var userInfo UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		c.logger.InfoWithError(ctx, "failed to unmarshal response body", err)
		return UserInfo{}, fmt.Errorf("failed to unmarshal response body: %w", err)
	}
	return userInfo, nil
}
