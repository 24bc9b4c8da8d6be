package middleware

import (
	"net/http"

	"github.com/mihkuno/RESPOCU/internal/token"

	"github.com/labstack/echo/v4"
)

// SessionCookieName is the cookie carrying the sealed access token.
const SessionCookieName = "token"

// SessionGate runs on every request before the protected handlers. It
// opens the access-token cookie and attaches the caller's identity to the
// request context. Missing, malformed and expired tokens all soft-fail:
// the request continues unauthenticated and downstream logic decides
// access. The gate never touches the account store.
type SessionGate struct {
	Codec *token.Codec
}

func (g SessionGate) Gate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if g.Codec == nil {
			return next(c)
		}
		cookie, err := c.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			return next(c)
		}
		claims, err := g.Codec.Open(token.Access, cookie.Value)
		if err != nil {
			return next(c)
		}
		if claims.Expired(g.Codec.Now()) {
			return next(c)
		}
		SetIdentity(c, Identity{Email: claims.Email, Role: claims.Type})
		return next(c)
	}
}

// RequireAuth rejects requests the gate left unauthenticated.
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := IdentityFromContext(c); !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		return next(c)
	}
}
