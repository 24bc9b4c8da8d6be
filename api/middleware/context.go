package middleware

import "github.com/labstack/echo/v4"

const (
	contextEmailKey = "auth_email"
	contextRoleKey  = "auth_role"
)

// Identity is what the session gate attaches for downstream handlers.
// Typed accessors replace the string-keyed header side channel.
type Identity struct {
	Email string
	Role  string
}

func SetIdentity(c echo.Context, identity Identity) {
	c.Set(contextEmailKey, identity.Email)
	c.Set(contextRoleKey, identity.Role)
}

func IdentityFromContext(c echo.Context) (Identity, bool) {
	email, ok := c.Get(contextEmailKey).(string)
	if !ok || email == "" {
		return Identity{}, false
	}
	role, _ := c.Get(contextRoleKey).(string)
	return Identity{Email: email, Role: role}, true
}
