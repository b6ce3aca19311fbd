package ports

import (
	"context"

	"github.com/shopkart/storefront-api/internal/core/domain"
)

// RegisterInput holds everything needed to create an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// AuthResult pairs a freshly signed session token with the non-secret
// profile fields it was issued for.
type AuthResult struct {
	Token string
	User  *domain.User
}

// TokenIssuer signs a session token binding the user's identifier.
type TokenIssuer interface {
	IssueToken(user *domain.User) (string, error)
}

// AuthService implements the credential and session contract: registration
// doubles as login, and both return a 30-day bearer token.
type AuthService interface {
	TokenIssuer
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}
