package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/shopkart/storefront-api/internal/core/domain"
)

const testSecret = "unit-test-secret"

type resolverStub struct {
	users map[string]*domain.User
	err   error
}

func (r *resolverStub) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

type revocationStub struct {
	cutoff time.Time
	err    error
}

func (r *revocationStub) RevokedAt(context.Context, string) (time.Time, error) {
	return r.cutoff, r.err
}

func signToken(t *testing.T, secret, subject string, issuedAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return token
}

// invoke runs the Auth middleware against a request and reports the context
// it produced plus the middleware's verdict.
func invoke(t *testing.T, mw echo.MiddlewareFunc, decorate func(*http.Request)) (echo.Context, error, bool) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	if decorate != nil {
		decorate(req)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	nextCalled := false
	err := mw(func(echo.Context) error {
		nextCalled = true
		return nil
	})(c)
	return c, err, nextCalled
}

func TestAuth_ValidBearerToken(t *testing.T) {
	alice := &domain.User{ID: "user-1", Name: "Alice"}
	mw := Auth(testSecret, &resolverStub{users: map[string]*domain.User{"user-1": alice}}, nil)
	token := signToken(t, testSecret, "user-1", time.Now())

	c, err, nextCalled := invoke(t, mw, func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	})
	if err != nil {
		t.Fatalf("expected pass-through, got %v", err)
	}
	if !nextCalled {
		t.Fatal("next handler not called")
	}
	if got := c.Get(CtxUserID); got != "user-1" {
		t.Fatalf("CtxUserID = %v, want user-1", got)
	}
	if got, _ := c.Get(CtxUser).(*domain.User); got != alice {
		t.Fatalf("CtxUser = %v, want alice", got)
	}
}

func TestAuth_CookieFallback(t *testing.T) {
	alice := &domain.User{ID: "user-1"}
	mw := Auth(testSecret, &resolverStub{users: map[string]*domain.User{"user-1": alice}}, nil)
	token := signToken(t, testSecret, "user-1", time.Now())

	c, err, _ := invoke(t, mw, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "token", Value: token})
	})
	if err != nil {
		t.Fatalf("cookie token rejected: %v", err)
	}
	if got := c.Get(CtxUserID); got != "user-1" {
		t.Fatalf("CtxUserID = %v, want user-1", got)
	}
}

func TestAuth_NonBearerHeaderFallsBackToCookie(t *testing.T) {
	alice := &domain.User{ID: "user-1"}
	mw := Auth(testSecret, &resolverStub{users: map[string]*domain.User{"user-1": alice}}, nil)
	token := signToken(t, testSecret, "user-1", time.Now())

	for _, header := range []string{"Basic dXNlcjpwYXNz", "Token abc", "Bearer"} {
		c, err, nextCalled := invoke(t, mw, func(r *http.Request) {
			r.Header.Set(echo.HeaderAuthorization, header)
			r.AddCookie(&http.Cookie{Name: "token", Value: token})
		})
		if err != nil || !nextCalled {
			t.Fatalf("header %q: cookie token rejected: err=%v nextCalled=%v", header, err, nextCalled)
		}
		if got := c.Get(CtxUserID); got != "user-1" {
			t.Fatalf("header %q: CtxUserID = %v, want user-1", header, got)
		}
	}
}

func TestAuth_BearerHeaderWinsOverCookie(t *testing.T) {
	alice := &domain.User{ID: "user-1"}
	mw := Auth(testSecret, &resolverStub{users: map[string]*domain.User{"user-1": alice}}, nil)
	cookieToken := signToken(t, testSecret, "user-1", time.Now())

	_, err, _ := invoke(t, mw, func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer not-a-jwt")
		r.AddCookie(&http.Cookie{Name: "token", Value: cookieToken})
	})
	assertHTTPError(t, err, http.StatusUnauthorized, "not authorized, token failed")
}

func TestAuth_MissingToken(t *testing.T) {
	mw := Auth(testSecret, &resolverStub{}, nil)
	_, err, nextCalled := invoke(t, mw, nil)
	assertHTTPError(t, err, http.StatusUnauthorized, "not authorized, no token")
	if nextCalled {
		t.Fatal("next handler called without a token")
	}
}

func TestAuth_BadSignature(t *testing.T) {
	mw := Auth(testSecret, &resolverStub{}, nil)
	token := signToken(t, "some-other-secret", "user-1", time.Now())

	_, err, _ := invoke(t, mw, func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	})
	assertHTTPError(t, err, http.StatusUnauthorized, "not authorized, token failed")
}

func TestAuth_ExpiredToken(t *testing.T) {
	mw := Auth(testSecret, &resolverStub{}, nil)
	token := signToken(t, testSecret, "user-1", time.Now().Add(-2*time.Hour))

	_, err, _ := invoke(t, mw, func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	})
	assertHTTPError(t, err, http.StatusUnauthorized, "not authorized, token failed")
}

func TestAuth_RevokedBeforeCutoff(t *testing.T) {
	issued := time.Now().Add(-time.Minute)
	mw := Auth(testSecret, &resolverStub{}, &revocationStub{cutoff: time.Now()})
	token := signToken(t, testSecret, "user-1", issued)

	_, err, _ := invoke(t, mw, func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	})
	assertHTTPError(t, err, http.StatusUnauthorized, "not authorized, token failed")
}

func TestAuth_IssuedAfterCutoff(t *testing.T) {
	alice := &domain.User{ID: "user-1"}
	mw := Auth(testSecret,
		&resolverStub{users: map[string]*domain.User{"user-1": alice}},
		&revocationStub{cutoff: time.Now().Add(-time.Hour)})
	token := signToken(t, testSecret, "user-1", time.Now())

	_, err, nextCalled := invoke(t, mw, func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	})
	if err != nil || !nextCalled {
		t.Fatalf("fresh token rejected by stale cutoff: err=%v nextCalled=%v", err, nextCalled)
	}
}

func TestAuth_RevocationLookupFailsOpen(t *testing.T) {
	alice := &domain.User{ID: "user-1"}
	mw := Auth(testSecret,
		&resolverStub{users: map[string]*domain.User{"user-1": alice}},
		&revocationStub{err: errors.New("redis down")})
	token := signToken(t, testSecret, "user-1", time.Now())

	_, err, nextCalled := invoke(t, mw, func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	})
	if err != nil || !nextCalled {
		t.Fatalf("revocation outage must not block: err=%v nextCalled=%v", err, nextCalled)
	}
}

func TestAuth_VanishedUserProceedsWithoutIdentity(t *testing.T) {
	mw := Auth(testSecret, &resolverStub{}, nil)
	token := signToken(t, testSecret, "user-gone", time.Now())

	c, err, nextCalled := invoke(t, mw, func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	})
	if err != nil || !nextCalled {
		t.Fatalf("vanished user must reach the handler: err=%v nextCalled=%v", err, nextCalled)
	}
	if got := c.Get(CtxUserID); got != "user-gone" {
		t.Fatalf("CtxUserID = %v, want user-gone", got)
	}
	if c.Get(CtxUser) != nil {
		t.Fatal("CtxUser set for a vanished user")
	}
}

func TestAuth_ResolverFailure(t *testing.T) {
	mw := Auth(testSecret, &resolverStub{err: errors.New("mongo down")}, nil)
	token := signToken(t, testSecret, "user-1", time.Now())

	_, err, nextCalled := invoke(t, mw, func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	})
	if err == nil || nextCalled {
		t.Fatalf("resolver failure must surface: err=%v nextCalled=%v", err, nextCalled)
	}
	if _, ok := err.(*echo.HTTPError); ok {
		t.Fatalf("infrastructure failure mapped to HTTP error too early: %v", err)
	}
}

func assertHTTPError(t *testing.T, err error, code int, message string) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != code {
		t.Fatalf("status = %d, want %d", he.Code, code)
	}
	if he.Message != message {
		t.Fatalf("message = %v, want %q", he.Message, message)
	}
}
