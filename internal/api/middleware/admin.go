package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopkart/storefront-api/internal/core/domain"
)

// AdminOnly rejects requests whose resolved identity is absent or not an
// administrator. The flag is read fresh from the identity the Auth
// middleware loaded this request, never from the token.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get(CtxUser).(*domain.User)
			if user == nil || !user.IsAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "not authorized as admin")
			}
			return next(c)
		}
	}
}
