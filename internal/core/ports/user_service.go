package ports

import (
	"context"

	"github.com/shopkart/storefront-api/internal/core/domain"
)

// UpdateProfileInput is a partial profile update. Empty fields keep their
// stored value; a non-empty Password is re-hashed before persistence.
type UpdateProfileInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// UserService owns the mutable state of a user record: profile fields,
// postal addresses, and the wishlist.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	// UpdateProfile merges the supplied fields and issues a fresh session
	// token for the updated record.
	UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*AuthResult, error)
	// AddAddress appends an address, clearing other default flags first when
	// the new address declares itself default. Returns the full collection.
	AddAddress(ctx context.Context, userID string, addr domain.Address) ([]domain.Address, error)
	GetWishlist(ctx context.Context, userID string) ([]domain.Product, error)
	AddToWishlist(ctx context.Context, userID, productID string) ([]domain.Product, error)
	RemoveFromWishlist(ctx context.Context, userID, productID string) ([]domain.Product, error)
	// ListUsers returns every user, passwords excluded. Admin only; the gate
	// lives in the transport layer.
	ListUsers(ctx context.Context, page, limit int) ([]domain.User, error)
}
