package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireAuth rejects requests whose caller Identify cannot confirm.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, _, err := Identify(c); err != nil {
				return deny(c, err)
			}
			return next(c)
		}
	}
}

// RequireRole enforces that the verified caller has one of roles.
// Anonymous or rejected callers get 401, known callers with another role
// get 403.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			_, role, err := Identify(c)
			if err != nil {
				return deny(c, err)
			}
			if !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
