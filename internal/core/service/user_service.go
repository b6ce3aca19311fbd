package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/shopkart/storefront-api/internal/core/domain"
	"github.com/shopkart/storefront-api/internal/core/ports"
	"github.com/shopkart/storefront-api/internal/pkg/metrics"
)

// TokenRevoker records a revocation cutoff for a user; session resolution
// rejects tokens issued before it. Backed by Redis.
type TokenRevoker interface {
	Revoke(ctx context.Context, userID string, at time.Time) error
}

// UserService owns profile, address, and wishlist mutations.
type UserService struct {
	users    ports.UserRepository
	products ports.ProductRepository
	tokens   ports.TokenIssuer
	revoker  TokenRevoker
	log      zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	products ports.ProductRepository,
	tokens ports.TokenIssuer,
	revoker TokenRevoker,
	log zerolog.Logger,
) *UserService {
	return &UserService{
		users:    users,
		products: products,
		tokens:   tokens,
		revoker:  revoker,
		log:      log,
	}
}

// GetProfile returns the user record for the resolved identity.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// UpdateProfile shallow-merges the supplied fields into the stored record.
// An email change is re-checked for uniqueness; a password change re-hashes
// and revokes tokens issued before the change. A fresh session token is
// returned alongside the updated fields either way.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ports.UpdateProfileInput) (*ports.AuthResult, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Email != "" && in.Email != user.Email {
		other, err := s.users.FindByEmail(ctx, in.Email)
		if err == nil && other.ID != user.ID {
			return nil, domain.ErrEmailTaken
		}
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
	}

	upd := ports.ProfileUpdate{
		Name:  in.Name,
		Email: in.Email,
		Phone: in.Phone,
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		upd.PasswordHash = string(hash)
	}

	if err := s.users.UpdateProfile(ctx, userID, upd); err != nil {
		return nil, err
	}

	if upd.PasswordHash != "" && s.revoker != nil {
		// Invalidate outstanding sessions. Best effort: a Redis outage must
		// not fail the profile update itself.
		if err := s.revoker.Revoke(ctx, userID, time.Now().UTC()); err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("token revocation failed")
		} else {
			metrics.TokensRevokedTotal.Inc()
		}
	}

	updated, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.IssueToken(updated)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Bool("password_changed", upd.PasswordHash != "").Msg("profile updated")
	return &ports.AuthResult{Token: token, User: updated}, nil
}

// AddAddress appends an address. A new default clears every existing default
// flag first; the repository persists the whole collection in one write so
// readers never observe two defaults or a transiently missing default.
func (s *UserService) AddAddress(ctx context.Context, userID string, addr domain.Address) ([]domain.Address, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	addresses := user.AppendAddress(addr)
	if err := s.users.ReplaceAddresses(ctx, userID, addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// GetWishlist resolves the user's wishlist references to full products.
func (s *UserService) GetWishlist(ctx context.Context, userID string) ([]domain.Product, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, user.Wishlist)
}

// AddToWishlist adds a product reference with set semantics: an already
// present reference is rejected, not silently ignored.
func (s *UserService) AddToWishlist(ctx context.Context, userID, productID string) ([]domain.Product, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.InWishlist(productID) {
		return nil, domain.ErrWishlistDuplicate
	}

	if err := s.users.AddWishlistItem(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.resolve(ctx, append(user.Wishlist, productID))
}

// RemoveFromWishlist removes a product reference if present. Removing an
// absent reference is a no-op, not an error.
func (s *UserService) RemoveFromWishlist(ctx context.Context, userID, productID string) ([]domain.Product, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.users.RemoveWishlistItem(ctx, userID, productID); err != nil {
		return nil, err
	}

	remaining := make([]string, 0, len(user.Wishlist))
	for _, id := range user.Wishlist {
		if id != productID {
			remaining = append(remaining, id)
		}
	}
	return s.resolve(ctx, remaining)
}

// ListUsers returns every user record, password hashes excluded by the
// domain type's marshalling. limit=0 disables paging.
func (s *UserService) ListUsers(ctx context.Context, page, limit int) ([]domain.User, error) {
	return s.users.FindAll(ctx, page, limit)
}

func (s *UserService) resolve(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}
	return s.products.FindByIDs(ctx, ids)
}
