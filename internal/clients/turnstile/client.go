package turnstile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"campaign-server/internal/observability"
)

const defaultVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

var (
	ErrInvalidToken     = errors.New("invalid captcha token")
	ErrVerificationFail = errors.New("captcha verification failed")
)

// VerifyResponse represents the response from the Cloudflare siteverify API
type VerifyResponse struct {
	Success     bool     `json:"success"`
	ErrorCodes  []string `json:"error-codes,omitempty"`
	ChallengeTS string   `json:"challenge_ts,omitempty"`
	Hostname    string   `json:"hostname,omitempty"`
	Action      string   `json:"action,omitempty"`
}

// Client verifies Turnstile tokens sent with signup and invite acceptance
type Client struct {
	secretKey  string
	verifyURL  string
	httpClient *http.Client
	logger     *observability.Logger
}

// NewClient creates a Turnstile client. An empty secret key disables it.
func NewClient(secretKey string, logger *observability.Logger) *Client {
	return &Client{
		secretKey: secretKey,
		verifyURL: defaultVerifyURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Verify validates a Turnstile token. Returns nil if valid.
func (c *Client) Verify(ctx context.Context, token string, remoteIP string) error {
	if token == "" {
		return ErrInvalidToken
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "captcha_type", Value: "turnstile"})

	payload := map[string]string{
		"secret":   c.secretKey,
		"response": token,
	}
	if remoteIP != "" {
		payload["remoteip"] = remoteIP
	}

	body, err := json.Marshal(payload)
	if err != nil {
		c.logger.Error(ctx, "failed to marshal turnstile request", err)
		return fmt.Errorf("failed to prepare verification request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, bytes.NewReader(body))
	if err != nil {
		c.logger.Error(ctx, "failed to create turnstile request", err)
		return fmt.Errorf("failed to create verification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error(ctx, "failed to call turnstile API", err)
		return fmt.Errorf("failed to verify captcha: %w", err)
	}
	defer resp.Body.Close()

	var verifyResp VerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&verifyResp); err != nil {
		c.logger.Error(ctx, "failed to parse turnstile response", err)
		return fmt.Errorf("failed to parse verification response: %w", err)
	}

	if !verifyResp.Success {
		c.logger.Info(ctx, fmt.Sprintf("turnstile verification failed: %v", verifyResp.ErrorCodes))
		return ErrVerificationFail
	}
	return nil
}

// IsEnabled returns true if the client has a secret key configured
func (c *Client) IsEnabled() bool {
	return c != nil && c.secretKey != ""
}
