package service

import (
	"context"
	"strconv"
	"time"

	"github.com/shopkart/storefront-api/internal/core/domain"
	"github.com/shopkart/storefront-api/internal/core/ports"
)

// stubUserRepo is an in-memory ports.UserRepository with the same observable
// semantics as the Mongo implementation.
type stubUserRepo struct {
	users  map[string]*domain.User // keyed by ID
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Addresses = append([]domain.Address(nil), u.Addresses...)
	clone.Wishlist = append([]string(nil), u.Wishlist...)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = "user-" + strconv.Itoa(r.nextID)
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindAll(_ context.Context, page, limit int) ([]domain.User, error) {
	all := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, *cloneUser(u))
	}
	return all, nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id string, upd ports.ProfileUpdate) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if upd.Name != "" {
		u.Name = upd.Name
	}
	if upd.Email != "" {
		u.Email = upd.Email
	}
	if upd.Phone != "" {
		u.Phone = upd.Phone
	}
	if upd.PasswordHash != "" {
		u.PasswordHash = upd.PasswordHash
	}
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *stubUserRepo) ReplaceAddresses(_ context.Context, id string, addresses []domain.Address) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Addresses = append([]domain.Address(nil), addresses...)
	return nil
}

func (r *stubUserRepo) AddWishlistItem(_ context.Context, id, productID string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if u.InWishlist(productID) {
		return domain.ErrWishlistDuplicate
	}
	u.Wishlist = append(u.Wishlist, productID)
	return nil
}

func (r *stubUserRepo) RemoveWishlistItem(_ context.Context, id, productID string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	remaining := u.Wishlist[:0]
	for _, pid := range u.Wishlist {
		if pid != productID {
			remaining = append(remaining, pid)
		}
	}
	u.Wishlist = remaining
	return nil
}

// stubProductRepo serves a fixed catalog and counts repository hits so cache
// behavior is observable.
type stubProductRepo struct {
	products map[string]domain.Product
	findAlls int
	reviews  map[string][]domain.Review
	rating   float64
	numRevs  int
}

func newStubProductRepo(products ...domain.Product) *stubProductRepo {
	r := &stubProductRepo{
		products: make(map[string]domain.Product),
		reviews:  make(map[string][]domain.Review),
	}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *stubProductRepo) FindAll(_ context.Context, category string) ([]domain.Product, error) {
	r.findAlls++
	out := []domain.Product{}
	for _, p := range r.products {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) FindFeatured(_ context.Context) ([]domain.Product, error) {
	r.findAlls++
	out := []domain.Product{}
	for _, p := range r.products {
		if p.IsFeatured {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (r *stubProductRepo) FindByIDs(_ context.Context, ids []string) ([]domain.Product, error) {
	out := []domain.Product{}
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) AddReview(_ context.Context, productID string, review domain.Review, rating float64, numReviews int) error {
	if _, ok := r.products[productID]; !ok {
		return domain.ErrProductNotFound
	}
	r.reviews[productID] = append(r.reviews[productID], review)
	r.rating = rating
	r.numRevs = numReviews
	return nil
}

// stubIssuer signs nothing: it returns a deterministic marker per user so
// tests can assert a fresh token was issued.
type stubIssuer struct{ issued int }

func (s *stubIssuer) IssueToken(user *domain.User) (string, error) {
	s.issued++
	return "token-" + user.ID + "-" + strconv.Itoa(s.issued), nil
}

// stubRevoker records revocation calls.
type stubRevoker struct {
	revoked []string
}

func (s *stubRevoker) Revoke(_ context.Context, userID string, _ time.Time) error {
	s.revoked = append(s.revoked, userID)
	return nil
}

// stubCache is an in-memory CatalogCache.
type stubCache struct {
	entries map[string][]domain.Product
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string][]domain.Product)}
}

func (s *stubCache) GetProducts(_ context.Context, key string) ([]domain.Product, bool) {
	ps, ok := s.entries[key]
	return ps, ok
}

func (s *stubCache) SetProducts(_ context.Context, key string, products []domain.Product) {
	s.entries[key] = products
}
