package handler_test

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shopkart/storefront-api/internal/api"
	"github.com/shopkart/storefront-api/internal/api/handler"
	apimiddleware "github.com/shopkart/storefront-api/internal/api/middleware"
	"github.com/shopkart/storefront-api/internal/core/domain"
	"github.com/shopkart/storefront-api/internal/core/ports"
)

// stubAuthService returns canned results; err wins when set.
type stubAuthService struct {
	result *ports.AuthResult
	err    error
}

func (s *stubAuthService) IssueToken(*domain.User) (string, error) {
	return s.result.Token, s.err
}

func (s *stubAuthService) Register(context.Context, ports.RegisterInput) (*ports.AuthResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubAuthService) Login(context.Context, string, string) (*ports.AuthResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

// stubUserService records the arguments handlers pass through.
type stubUserService struct {
	user      *domain.User
	result    *ports.AuthResult
	addresses []domain.Address
	wishlist  []domain.Product
	users     []domain.User
	err       error

	gotUserID    string
	gotProductID string
	gotAddress   domain.Address
	gotPage      int
	gotLimit     int
}

func (s *stubUserService) GetProfile(_ context.Context, userID string) (*domain.User, error) {
	s.gotUserID = userID
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *stubUserService) UpdateProfile(_ context.Context, userID string, _ ports.UpdateProfileInput) (*ports.AuthResult, error) {
	s.gotUserID = userID
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubUserService) AddAddress(_ context.Context, userID string, addr domain.Address) ([]domain.Address, error) {
	s.gotUserID = userID
	s.gotAddress = addr
	if s.err != nil {
		return nil, s.err
	}
	return s.addresses, nil
}

func (s *stubUserService) GetWishlist(_ context.Context, userID string) ([]domain.Product, error) {
	s.gotUserID = userID
	if s.err != nil {
		return nil, s.err
	}
	return s.wishlist, nil
}

func (s *stubUserService) AddToWishlist(_ context.Context, userID, productID string) ([]domain.Product, error) {
	s.gotUserID = userID
	s.gotProductID = productID
	if s.err != nil {
		return nil, s.err
	}
	return s.wishlist, nil
}

func (s *stubUserService) RemoveFromWishlist(_ context.Context, userID, productID string) ([]domain.Product, error) {
	s.gotUserID = userID
	s.gotProductID = productID
	if s.err != nil {
		return nil, s.err
	}
	return s.wishlist, nil
}

func (s *stubUserService) ListUsers(_ context.Context, page, limit int) ([]domain.User, error) {
	s.gotPage = page
	s.gotLimit = limit
	if s.err != nil {
		return nil, s.err
	}
	return s.users, nil
}

// stubCatalogService serves a fixed catalog and records review submissions.
type stubCatalogService struct {
	products []domain.Product
	err      error

	gotProductID string
	gotReview    ports.ReviewInput
}

func (s *stubCatalogService) ListProducts(context.Context, string) ([]domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}

func (s *stubCatalogService) FeaturedProducts(context.Context) ([]domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}

func (s *stubCatalogService) GetProduct(context.Context, string) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &s.products[0], nil
}

func (s *stubCatalogService) AddReview(_ context.Context, productID string, in ports.ReviewInput) error {
	s.gotProductID = productID
	s.gotReview = in
	return s.err
}

// newTestServer wires an echo instance the way the router does: the shared
// validator and the central error handler, minus the real middleware stack.
func newTestServer() *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())
	return e
}

// asIdentity stands in for the auth middleware: it stamps the request context
// with a resolved identity before the handler runs.
func asIdentity(user *domain.User) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if user != nil {
				c.Set(apimiddleware.CtxUserID, user.ID)
				c.Set(apimiddleware.CtxUser, user)
			}
			return next(c)
		}
	}
}

func perform(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}
