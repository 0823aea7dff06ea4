package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/corptravel/travel-order-service/pkg/token"
)

const userIDContextKey = "auth.user_id"

// JWTAuth resolves the bearer token to a user id and stores it on the request
// context. Every protected handler reads the caller through CurrentUserID.
func JWTAuth(tokens *token.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			const prefix = "Bearer "
			if !strings.HasPrefix(header, prefix) {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthenticated.")
			}

			userID, err := tokens.Parse(strings.TrimPrefix(header, prefix))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthenticated.")
			}

			c.Set(userIDContextKey, userID)
			return next(c)
		}
	}
}

// CurrentUserID returns the authenticated caller set by JWTAuth, or 0.
func CurrentUserID(c echo.Context) uint {
	id, _ := c.Get(userIDContextKey).(uint)
	return id
}

// SetCurrentUserID seeds the caller id; used by tests.
func SetCurrentUserID(c echo.Context, id uint) {
	c.Set(userIDContextKey, id)
}
