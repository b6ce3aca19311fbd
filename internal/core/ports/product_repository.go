package ports

import (
	"context"

	"github.com/shopkart/storefront-api/internal/core/domain"
)

// ProductRepository defines the read/review surface of the catalog collection.
type ProductRepository interface {
	// FindAll lists products, optionally filtered by category.
	FindAll(ctx context.Context, category string) ([]domain.Product, error)
	FindFeatured(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	// FindByIDs resolves wishlist references to full product records.
	// Unknown IDs are skipped, not errors.
	FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
	// AddReview appends the review and persists the recomputed aggregate
	// rating in one document write.
	AddReview(ctx context.Context, productID string, review domain.Review, rating float64, numReviews int) error
}
