package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/shopkart/storefront-api/internal/core/domain"
)

// Context keys set by the Auth middleware.
const (
	// CtxUserID is always set on success: the identifier embedded in the token.
	CtxUserID = "userID"
	// CtxUser is the resolved identity, absent when the user no longer exists.
	CtxUser = "user"
)

// tokenCookie is the cookie consulted when no Authorization header is present.
const tokenCookie = "token"

// UserResolver loads the identity a verified token refers to.
type UserResolver interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// RevocationChecker reports the revocation cutoff recorded for a user, or
// the zero time when none exists.
type RevocationChecker interface {
	RevokedAt(ctx context.Context, userID string) (time.Time, error)
}

// Auth resolves the session token into an identity on the request context.
//
// The token is read from the Authorization header (Bearer scheme) or, when
// the header is absent or not Bearer-shaped, from the "token" cookie; a
// Bearer header wins when both are present.
// Signature, expiry, and the revocation cutoff are all verified here. A
// subject that no longer resolves to a user is not an error at this gate:
// downstream handlers observe an absent identity.
func Auth(jwtSecret string, users UserResolver, revocations RevocationChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized, no token")
			}

			claims := jwt.RegisteredClaims{}
			tkn, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
				if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid || claims.Subject == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized, token failed")
			}

			if revocations != nil && claims.IssuedAt != nil {
				// Fail open on lookup errors: revocation is a hardening
				// measure, not a dependency the whole API hangs off.
				if cutoff, err := revocations.RevokedAt(c.Request().Context(), claims.Subject); err == nil {
					if !cutoff.IsZero() && claims.IssuedAt.Time.Before(cutoff) {
						return echo.NewHTTPError(http.StatusUnauthorized, "not authorized, token failed")
					}
				}
			}

			c.Set(CtxUserID, claims.Subject)

			user, err := users.FindByID(c.Request().Context(), claims.Subject)
			switch {
			case err == nil:
				c.Set(CtxUser, user)
			case errors.Is(err, domain.ErrUserNotFound):
				// Identity vanished after issuance; downstream decides.
			default:
				return err
			}

			return next(c)
		}
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
	}

	// A header that did not carry a Bearer token (absent, or another
	// scheme entirely) falls through to the cookie.
	if cookie, err := c.Cookie(tokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}
