package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResendSenderDoesNotMutateSharedState(t *testing.T) {
	var payload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	// built without the constructor, so HTTPClient starts nil
	sender := &ResendEmailSender{
		APIKey:   "key",
		From:     "noreply@respocu.edu",
		SiteURL:  "https://respocu.edu",
		Endpoint: server.URL,
	}
	require.NoError(t, sender.SendVerificationEmail(context.Background(), "user@x.com", "sealed"))

	// send uses a local fallback client; the shared sender stays untouched
	assert.Nil(t, sender.HTTPClient)
	assert.Equal(t, []any{"user@x.com"}, payload["to"])
	assert.Contains(t, payload["text"], "https://respocu.edu/auth/verify?token=sealed")
}

func TestResendSenderRequiresAPIKey(t *testing.T) {
	sender := &ResendEmailSender{From: "noreply@respocu.edu", SiteURL: "https://respocu.edu"}
	assert.Error(t, sender.SendForgotEmail(context.Background(), "user@x.com", "sealed"))
}
