package turnstile

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"campaign-server/internal/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient("secret", observability.NewNopLogger())
	c.verifyURL = srv.URL
	return c
}

func TestVerify(t *testing.T) {
	t.Run("accepted token", func(t *testing.T) {
		var got map[string]string
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_ = json.NewEncoder(w).Encode(VerifyResponse{Success: true})
		})

		require.NoError(t, c.Verify(context.Background(), "tok", "10.0.0.1"))
		assert.Equal(t, "secret", got["secret"])
		assert.Equal(t, "tok", got["response"])
		assert.Equal(t, "10.0.0.1", got["remoteip"])
	})

	t.Run("rejected token", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(VerifyResponse{Success: false, ErrorCodes: []string{"invalid-input-response"}})
		})

		err := c.Verify(context.Background(), "tok", "")
		assert.True(t, errors.Is(err, ErrVerificationFail))
	})

	t.Run("empty token never leaves the process", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("unexpected request")
		})

		err := c.Verify(context.Background(), "", "")
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})
}

func TestIsEnabled(t *testing.T) {
	assert.True(t, NewClient("secret", observability.NewNopLogger()).IsEnabled())
	assert.False(t, NewClient("", observability.NewNopLogger()).IsEnabled())

	var nilClient *Client
	assert.False(t, nilClient.IsEnabled())
}
