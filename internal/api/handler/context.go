package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apimiddleware "github.com/shopkart/storefront-api/internal/api/middleware"
	"github.com/shopkart/storefront-api/internal/core/domain"
)

// ctxUserID extracts the identifier the Auth middleware embedded in the
// context. Its absence means the middleware never ran on this route.
func ctxUserID(c echo.Context) (string, error) {
	id, _ := c.Get(apimiddleware.CtxUserID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "not authorized, no token")
	}
	return id, nil
}

// ctxUser returns the resolved identity, or nil when the token's subject no
// longer exists. Callers that need the record reload it through the service
// so "not found" surfaces as 404 there.
func ctxUser(c echo.Context) *domain.User {
	user, _ := c.Get(apimiddleware.CtxUser).(*domain.User)
	return user
}
