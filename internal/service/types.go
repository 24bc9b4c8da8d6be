package service

import "context"

// EmailSender delivers the verification and reset links. The token rides
// in the link's query string; delivery failures propagate to the caller.
type EmailSender interface {
	SendVerificationEmail(ctx context.Context, email string, token string) error
	SendForgotEmail(ctx context.Context, email string, token string) error
}
