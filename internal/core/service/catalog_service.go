package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shopkart/storefront-api/internal/core/domain"
	"github.com/shopkart/storefront-api/internal/core/ports"
	"github.com/shopkart/storefront-api/internal/pkg/metrics"
)

// CatalogCache is a read-through cache for catalog listings (Redis).
// Implementations swallow backend errors: a cache miss is the worst case.
type CatalogCache interface {
	GetProducts(ctx context.Context, key string) ([]domain.Product, bool)
	SetProducts(ctx context.Context, key string, products []domain.Product)
}

// CatalogService serves the public product read surface and review ingestion.
type CatalogService struct {
	products ports.ProductRepository
	cache    CatalogCache
	log      zerolog.Logger
}

func NewCatalogService(products ports.ProductRepository, cache CatalogCache, log zerolog.Logger) *CatalogService {
	return &CatalogService{products: products, cache: cache, log: log}
}

// ListProducts lists the catalog, optionally filtered by category.
func (s *CatalogService) ListProducts(ctx context.Context, category string) ([]domain.Product, error) {
	key := "catalog:all"
	if category != "" {
		key = "catalog:category:" + category
	}
	return s.cached(ctx, key, func() ([]domain.Product, error) {
		return s.products.FindAll(ctx, category)
	})
}

// FeaturedProducts lists products flagged for the home page.
func (s *CatalogService) FeaturedProducts(ctx context.Context) ([]domain.Product, error) {
	return s.cached(ctx, "catalog:featured", func() ([]domain.Product, error) {
		return s.products.FindFeatured(ctx)
	})
}

// GetProduct returns a single product by ID. Uncached: detail reads carry
// review state that must be current after a review post.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

// AddReview appends a review and recomputes the aggregate rating, persisted
// as a single document write.
func (s *CatalogService) AddReview(ctx context.Context, productID string, in ports.ReviewInput) error {
	if in.Rating < 1 || in.Rating > 5 || in.Comment == "" {
		return domain.ErrInvalidInput
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}

	review := domain.Review{
		ID:        primitive.NewObjectID().Hex(),
		UserID:    in.UserID,
		Name:      in.UserName,
		Rating:    in.Rating,
		Comment:   in.Comment,
		CreatedAt: time.Now().UTC(),
	}

	numReviews := product.NumReviews + 1
	rating := (product.Rating*float64(product.NumReviews) + float64(in.Rating)) / float64(numReviews)

	if err := s.products.AddReview(ctx, productID, review, rating, numReviews); err != nil {
		return err
	}

	s.log.Info().Str("product_id", productID).Str("user_id", in.UserID).Int("rating", in.Rating).Msg("review added")
	return nil
}

func (s *CatalogService) cached(ctx context.Context, key string, load func() ([]domain.Product, error)) ([]domain.Product, error) {
	if s.cache != nil {
		if products, ok := s.cache.GetProducts(ctx, key); ok {
			metrics.CatalogCacheTotal.WithLabelValues("hit").Inc()
			return products, nil
		}
		metrics.CatalogCacheTotal.WithLabelValues("miss").Inc()
	}

	products, err := load()
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetProducts(ctx, key, products)
	}
	return products, nil
}
