package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const resendEndpoint = "https://api.resend.com/emails"

// ResendEmailSender delivers verification and reset links over the Resend
// HTTP API. Both link styles land on the same verification route; the
// forgot link adds forgot=true so the route can tell the flows apart.
// A single sender is shared across requests, so send must not write to it.
type ResendEmailSender struct {
	APIKey     string
	HTTPClient *http.Client
	From       string
	SiteURL    string

	// Endpoint overrides the Resend API URL; empty means the real one.
	Endpoint string
}

func NewResendEmailSender(apiKey string, from string, siteURL string) *ResendEmailSender {
	return &ResendEmailSender{
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		From:       from,
		SiteURL:    strings.TrimRight(siteURL, "/"),
	}
}

func (s *ResendEmailSender) SendVerificationEmail(ctx context.Context, email string, token string) error {
	if strings.TrimSpace(s.APIKey) == "" {
		return errors.New("email sender not configured")
	}
	link := fmt.Sprintf("%s/auth/verify?token=%s", s.SiteURL, token)
	subject := "RESPOCU - Email Verification"
	text := fmt.Sprintf("Hello, please verify your email by clicking on the link below:\n\n%s", link)
	return s.send(ctx, email, subject, text)
}

func (s *ResendEmailSender) SendForgotEmail(ctx context.Context, email string, token string) error {
	if strings.TrimSpace(s.APIKey) == "" {
		return errors.New("email sender not configured")
	}
	link := fmt.Sprintf("%s/auth/verify?token=%s&forgot=true", s.SiteURL, token)
	subject := "RESPOCU - Password Reset"
	text := fmt.Sprintf("Hello, clicking the link below will delete your account. "+
		"Your published studies are retained, and you can recreate your account "+
		"using the same email to set a new password:\n\n%s", link)
	return s.send(ctx, email, subject, text)
}

func (s *ResendEmailSender) send(ctx context.Context, to string, subject string, text string) error {
	client := s.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	endpoint := s.Endpoint
	if endpoint == "" {
		endpoint = resendEndpoint
	}
	payload := map[string]any{
		"from":    s.From,
		"to":      []string{to},
		"subject": subject,
		"text":    text,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return err
	}
	request.Header.Set("Authorization", "Bearer "+s.APIKey)
	request.Header.Set("Content-Type", "application/json")
	response, err := client.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()
	if response.StatusCode >= 300 {
		return fmt.Errorf("resend email failed with status %d", response.StatusCode)
	}
	return nil
}
