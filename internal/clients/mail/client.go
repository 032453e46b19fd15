package mail

import (
	"context"
	"fmt"
	"html"
	"strings"

	"campaign-server/internal/observability"

	"github.com/resendlabs/resend-go"
)

// ConfigurationError reports a missing or invalid setting of the mail
// provider. It is not retryable by the end user.
type ConfigurationError struct {
	Setting string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("mail provider misconfigured: %s %s", e.Setting, e.Reason)
}

// Invitation is the content of a team invitation email.
type Invitation struct {
	To          string
	Name        string
	CompanyName string
	InvitedBy   string
	AcceptURL   string
}

type ResendClient struct {
	client *resend.Client
	sender string
	logger *observability.Logger
}

// NewResendClient creates the mail client. An empty apiKey yields a client
// whose sends fail with *ConfigurationError, so the API can start without
// mail configured.
func NewResendClient(apiKey, sender string, logger *observability.Logger) *ResendClient {
	c := &ResendClient{sender: sender, logger: logger}
	if strings.TrimSpace(apiKey) != "" {
		c.client = resend.NewClient(apiKey)
	}
	return c
}

// Configured reports whether emails can be sent.
func (c *ResendClient) Configured() error {
	if c.client == nil {
		return &ConfigurationError{Setting: "RESEND_API_KEY", Reason: "is not set"}
	}
	if strings.TrimSpace(c.sender) == "" {
		return &ConfigurationError{Setting: "DEFAULT_EMAIL_SENDER_ADDRESS", Reason: "is not set"}
	}
	return nil
}

func (c *ResendClient) SendEmail(ctx context.Context, to, subject, htmlContent string) (string, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "email_to", Value: to},
		observability.Field{Key: "email_subject", Value: subject},
	)

	if err := c.Configured(); err != nil {
		c.logger.Error(ctx, "mail provider is not configured", err)
		return "", err
	}

	params := &resend.SendEmailRequest{
		From:    c.sender,
		To:      []string{to},
		Subject: subject,
		Html:    htmlContent,
	}

	res, err := c.client.Emails.Send(params)
	if err != nil {
		c.logger.Error(ctx, "failed to send email", err)
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	c.logger.Info(ctx, "email sent successfully")
	return res.Id, nil
}

// SendInvitation emails a team invitation.
func (c *ResendClient) SendInvitation(ctx context.Context, inv Invitation) (string, error) {
	subject := fmt.Sprintf("You have been invited to join %s", inv.CompanyName)
	return c.SendEmail(ctx, inv.To, subject, renderInvitation(inv))
}

func renderInvitation(inv Invitation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hi %s,</p>", html.EscapeString(inv.Name))
	fmt.Fprintf(&b, "<p>%s invited you to join <strong>%s</strong>.</p>",
		html.EscapeString(inv.InvitedBy), html.EscapeString(inv.CompanyName))
	fmt.Fprintf(&b, `<p><a href="%s">Accept the invitation</a> and choose a password.</p>`,
		html.EscapeString(inv.AcceptURL))
	return b.String()
}
