package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireUser is the strict variant used when an upstream proxy performs the
// actual authentication: it reads the user id from the X-User-Id header or
// WP_UID cookie and rejects requests without one. When enabled=false it
// passes through (use DevLogin instead).
func RequireUser(enabled bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !enabled {
				return next(c)
			}
			uid := c.Request().Header.Get("X-User-Id")
			if uid == "" {
				if ck, err := c.Cookie("WP_UID"); err == nil {
					uid = ck.Value
				}
			}
			if uid == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing user identity"})
			}
			c.Set("uid", uid)
			return next(c)
		}
	}
}
