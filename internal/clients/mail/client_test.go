package mail

import (
	"context"
	"errors"
	"strings"
	"testing"

	"campaign-server/internal/observability"
)

func TestSendEmail_WithoutAPIKey(t *testing.T) {
	c := NewResendClient("", "no-reply@boostdata.io", observability.NewNopLogger())

	_, err := c.SendInvitation(context.Background(), Invitation{To: "a@acme.com", CompanyName: "Acme"})

	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if cfgErr.Setting != "RESEND_API_KEY" {
		t.Errorf("expected RESEND_API_KEY, got %s", cfgErr.Setting)
	}
}

func TestConfigured_MissingSender(t *testing.T) {
	c := NewResendClient("re_test", " ", observability.NewNopLogger())

	var cfgErr *ConfigurationError
	if !errors.As(c.Configured(), &cfgErr) {
		t.Fatal("expected ConfigurationError")
	}
	if cfgErr.Setting != "DEFAULT_EMAIL_SENDER_ADDRESS" {
		t.Errorf("unexpected setting %s", cfgErr.Setting)
	}
}

func TestRenderInvitation_EscapesInput(t *testing.T) {
	body := renderInvitation(Invitation{
		Name:        "<script>",
		CompanyName: "Acme & Co",
		InvitedBy:   "Dana",
		AcceptURL:   "https://app.example.com/accept?email=a@acme.com",
	})

	if strings.Contains(body, "<script>") {
		t.Error("name was not escaped")
	}
	if !strings.Contains(body, "Acme &amp; Co") {
		t.Errorf("company not rendered: %s", body)
	}
}
