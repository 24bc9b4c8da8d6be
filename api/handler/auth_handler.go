package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/mihkuno/RESPOCU/api/middleware"
	"github.com/mihkuno/RESPOCU/internal/dto"
	"github.com/mihkuno/RESPOCU/internal/service"
	"github.com/mihkuno/RESPOCU/internal/token"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// VerifyEmailCookieName is display-only: the verify page shows "we sent a
// link to X" from it. It grants nothing.
const VerifyEmailCookieName = "email_to_verify"

const verifyEmailCookieMaxAge = 600

type AuthHandler struct {
	Service      *service.AuthService
	Validate     *validator.Validate
	CookieDomain string
}

func NewAuthHandler(svc *service.AuthService, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{
		Service:  svc,
		Validate: validate,
	}
}

func (h *AuthHandler) Signup(c echo.Context) error {
	var req dto.SignupRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Service.Signup(c.Request().Context(), req.Email, req.Password); err != nil {
		return writeServiceError(c, err)
	}
	h.setVerifyEmailCookie(c, req.Email)
	return c.NoContent(http.StatusAccepted)
}

// Verify redeems the token from the email link. The forgot=true query
// parameter selects the forgot flow; otherwise it is a signup
// verification. Always responds 200 with {"status": ...}.
func (h *AuthHandler) Verify(c echo.Context) error {
	sealed := c.QueryParam("token")

	if c.QueryParam("forgot") == "true" {
		status, err := h.Service.VerifyForgot(c.Request().Context(), sealed)
		if err != nil {
			return writeError(c, http.StatusInternalServerError, err)
		}
		if status == token.StatusValid {
			h.clearVerifyEmailCookie(c)
		}
		return c.JSON(http.StatusOK, dto.StatusResponse{Status: status})
	}

	status, accessToken, err := h.Service.VerifySignup(c.Request().Context(), sealed)
	if err != nil {
		return writeError(c, http.StatusInternalServerError, err)
	}
	if status == token.StatusValid {
		h.setSessionCookie(c, accessToken)
		h.clearVerifyEmailCookie(c)
	}
	return c.JSON(http.StatusOK, dto.StatusResponse{Status: status})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	accessToken, err := h.Service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeServiceError(c, err)
	}
	h.setSessionCookie(c, accessToken)
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) Forgot(c echo.Context) error {
	var req dto.ForgotRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Service.Forgot(c.Request().Context(), req.Email); err != nil {
		return writeServiceError(c, err)
	}
	h.setVerifyEmailCookie(c, req.Email)
	return c.NoContent(http.StatusAccepted)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	h.clearSessionCookie(c)
	return c.NoContent(http.StatusNoContent)
}

// Session is the store-checking validation entry point the gate
// deliberately skips: it re-checks the cookie's email and password
// against the account store.
func (h *AuthHandler) Session(c echo.Context) error {
	cookie, err := c.Cookie(middleware.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusOK, dto.StatusResponse{Status: token.StatusInvalid})
	}
	status, err := h.Service.ValidateAccess(c.Request().Context(), cookie.Value)
	if err != nil {
		return writeError(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, dto.StatusResponse{Status: status})
}

// The session cookie is httpOnly but carries no Secure or SameSite
// attributes, matching the existing deployment.
func (h *AuthHandler) setSessionCookie(c echo.Context, accessToken string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    accessToken,
		Path:     "/",
		Domain:   h.CookieDomain,
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func (h *AuthHandler) setVerifyEmailCookie(c echo.Context, email string) {
	c.SetCookie(&http.Cookie{
		Name:   VerifyEmailCookieName,
		Value:  email,
		Path:   "/",
		Domain: h.CookieDomain,
		MaxAge: verifyEmailCookieMaxAge,
	})
}

func (h *AuthHandler) clearVerifyEmailCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:   VerifyEmailCookieName,
		Value:  "",
		Path:   "/",
		Domain: h.CookieDomain,
		MaxAge: -1,
	})
}

func (h *AuthHandler) validate(payload any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(payload)
}

func decodeJSON(c echo.Context, target any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeError(c echo.Context, status int, err error) error {
	return c.JSON(status, map[string]string{"message": err.Error()})
}

func writeServiceError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrNotPublisher):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrAccountExists), errors.Is(err, service.ErrStudyExists):
		status = http.StatusConflict
	case errors.Is(err, service.ErrAccountNotFound), errors.Is(err, service.ErrStudyNotFound):
		status = http.StatusNotFound
	}
	return writeError(c, status, err)
}
