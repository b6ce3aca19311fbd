package ports

import (
	"context"

	"github.com/shopkart/storefront-api/internal/core/domain"
)

// ProfileUpdate carries the mutable profile fields for a partial update.
// Empty fields are left untouched by the repository (shallow merge).
type ProfileUpdate struct {
	Name         string
	Email        string
	Phone        string
	PasswordHash string
}

// UserRepository defines the persistence surface for user records.
// All mutations are single-document atomic writes.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindAll returns users ordered by creation time. A limit of 0 disables
	// paging and returns everything.
	FindAll(ctx context.Context, page, limit int) ([]domain.User, error)
	UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) error
	// ReplaceAddresses overwrites the whole addresses array in one write so a
	// concurrent reader never observes a partially updated collection.
	ReplaceAddresses(ctx context.Context, id string, addresses []domain.Address) error
	AddWishlistItem(ctx context.Context, id, productID string) error
	RemoveWishlistItem(ctx context.Context, id, productID string) error
}
