package service

import (
	"context"
	"strings"

	"github.com/mihkuno/RESPOCU/internal/entity"
	"github.com/mihkuno/RESPOCU/internal/repository"
	"github.com/mihkuno/RESPOCU/internal/token"
	"github.com/mihkuno/RESPOCU/internal/utils"
)

// AuthService drives the signup-verification and forgot-password flows on
// top of the token codec and the account store. Token and parse failures
// are folded into the outcome status; store failures propagate as errors.
type AuthService struct {
	accounts    repository.AccountRepository
	codec       *token.Codec
	emailSender EmailSender
}

func NewAuthService(
	accounts repository.AccountRepository,
	codec *token.Codec,
	emailSender EmailSender,
) *AuthService {
	return &AuthService{
		accounts:    accounts,
		codec:       codec,
		emailSender: emailSender,
	}
}

// Signup checks that the email is unclaimed, mints a verify token and
// mails the verification link. No account is created until the link is
// redeemed.
func (s *AuthService) Signup(ctx context.Context, email string, password string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return ErrInvalidInput
	}

	email = utils.NormalizeEmail(email)
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if account != nil {
		return ErrAccountExists
	}

	verifyToken, err := s.codec.Mint(token.Verify, token.Claims{Email: email, Password: password})
	if err != nil {
		return err
	}

	if s.emailSender == nil {
		return nil
	}
	return s.emailSender.SendVerificationEmail(ctx, email, verifyToken)
}

// Login matches the stored credentials exactly and mints a fresh access
// token carrying the account's type.
func (s *AuthService) Login(ctx context.Context, email string, password string) (string, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return "", ErrInvalidInput
	}

	email = utils.NormalizeEmail(email)
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if account == nil {
		return "", ErrAccountNotFound
	}
	if account.Password != password {
		return "", ErrInvalidCredentials
	}

	return s.mintAccessToken(account)
}

// Forgot mints a forgot token for an existing account and mails the reset
// link. The link destroys the account on redemption; re-signup with the
// same email is the reset path.
func (s *AuthService) Forgot(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrInvalidInput
	}

	email = utils.NormalizeEmail(email)
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if account == nil {
		return ErrAccountNotFound
	}

	forgotToken, err := s.codec.Mint(token.Forgot, token.Claims{Email: email})
	if err != nil {
		return err
	}

	if s.emailSender == nil {
		return nil
	}
	return s.emailSender.SendForgotEmail(ctx, email, forgotToken)
}

// VerifySignup redeems a verify token. It creates the account and returns
// the fresh access token alongside StatusValid; an account that already
// exists yields StatusExisting with no side effect. Tokens stay redeemable
// until expiry; there is no single-use marker.
func (s *AuthService) VerifySignup(ctx context.Context, sealed string) (token.Status, string, error) {
	claims, err := s.codec.Open(token.Verify, sealed)
	if err != nil {
		return token.StatusInvalid, "", nil
	}
	if claims.Expired(s.codec.Now()) {
		return token.StatusExpired, "", nil
	}

	account, err := s.accounts.FindByEmail(ctx, claims.Email)
	if err != nil {
		return token.StatusInvalid, "", err
	}
	if account != nil {
		return token.StatusExisting, "", nil
	}

	created := &entity.Account{
		Email:    claims.Email,
		Password: claims.Password,
		Type:     entity.AccountTypeUser,
	}
	if err := s.accounts.Create(ctx, created); err != nil {
		return token.StatusInvalid, "", err
	}

	accessToken, err := s.mintAccessToken(created)
	if err != nil {
		return token.StatusInvalid, "", err
	}
	return token.StatusValid, accessToken, nil
}

// VerifyForgot redeems a forgot token by deleting the account, so the
// user can re-sign up with the same email and a new password. An
// in-place password update is deliberately not what this does.
func (s *AuthService) VerifyForgot(ctx context.Context, sealed string) (token.Status, error) {
	claims, err := s.codec.Open(token.Forgot, sealed)
	if err != nil {
		return token.StatusInvalid, nil
	}
	if claims.Expired(s.codec.Now()) {
		return token.StatusExpired, nil
	}

	account, err := s.accounts.FindByEmail(ctx, claims.Email)
	if err != nil {
		return token.StatusInvalid, err
	}
	if account == nil {
		return token.StatusInvalid, nil
	}

	if err := s.accounts.DeleteByEmail(ctx, claims.Email); err != nil {
		return token.StatusInvalid, err
	}
	return token.StatusValid, nil
}

// ValidateAccess opens an access token and re-checks the store for a
// matching email and password. It never creates or deletes accounts.
func (s *AuthService) ValidateAccess(ctx context.Context, sealed string) (token.Status, error) {
	claims, err := s.codec.Open(token.Access, sealed)
	if err != nil {
		return token.StatusInvalid, nil
	}
	if claims.Expired(s.codec.Now()) {
		return token.StatusExpired, nil
	}

	account, err := s.accounts.FindByCredentials(ctx, claims.Email, claims.Password)
	if err != nil {
		return token.StatusInvalid, err
	}
	if account == nil {
		return token.StatusInvalid, nil
	}
	return token.StatusValid, nil
}

func (s *AuthService) mintAccessToken(account *entity.Account) (string, error) {
	return s.codec.Mint(token.Access, token.Claims{
		Email:    account.Email,
		Password: account.Password,
		Type:     string(account.Type),
	})
}
