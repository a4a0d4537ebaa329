package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"instantcredit-backend/internal/usecase/auth"
)

// Context keys for the authenticated identity.
const (
	ContextUserID = "auth_user_id"
	ContextRole   = "auth_role"
)

// JWT authenticates the request from the Authorization bearer token and
// stores the acting user's id and role on the context.
func JWT(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			const prefix = "Bearer "
			if !strings.HasPrefix(header, prefix) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			claims, err := auth.ParseToken(secret, strings.TrimSpace(header[len(prefix):]))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
			}
			c.Set(ContextUserID, claims.Subject)
			c.Set(ContextRole, claims.Role)
			return next(c)
		}
	}
}

// RequireRole guards a route group; run it after JWT.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if Role(c) != role {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "insufficient role"})
			}
			return next(c)
		}
	}
}

// UserID returns the authenticated user's public id, or "" before JWT ran.
func UserID(c echo.Context) string {
	v, _ := c.Get(ContextUserID).(string)
	return v
}

func Role(c echo.Context) string {
	v, _ := c.Get(ContextRole).(string)
	return v
}
