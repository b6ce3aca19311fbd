package ports

import (
	"context"

	"github.com/shopkart/storefront-api/internal/core/domain"
)

// ReviewInput carries a customer review submission. UserID and UserName come
// from the resolved identity, never from the request body.
type ReviewInput struct {
	UserID   string
	UserName string
	Rating   int
	Comment  string
}

// CatalogService exposes the public read surface of the product catalog
// plus review ingestion.
type CatalogService interface {
	ListProducts(ctx context.Context, category string) ([]domain.Product, error)
	FeaturedProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	AddReview(ctx context.Context, productID string, in ReviewInput) error
}
