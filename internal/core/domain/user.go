package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidInput       = errors.New("invalid user data")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrWishlistDuplicate  = errors.New("product already in wishlist")
)

// Address is a postal address attached to a user profile.
// At most one address per user carries IsDefault=true.
type Address struct {
	Line1      string `json:"addressLine1"`
	Line2      string `json:"addressLine2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	IsDefault  bool   `json:"isDefault"`
}

// User is the sole persistent identity in the storefront. The password hash
// never leaves the server: it is excluded from every JSON response.
type User struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone,omitempty"`
	IsAdmin      bool      `json:"isAdmin"`
	Addresses    []Address `json:"addresses"`
	Wishlist     []string  `json:"wishlist"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// InWishlist reports whether the product reference is already present.
func (u *User) InWishlist(productID string) bool {
	for _, id := range u.Wishlist {
		if id == productID {
			return true
		}
	}
	return false
}

// AppendAddress returns the user's addresses with addr appended. When addr
// declares itself default, the flag is cleared on every existing address
// first, so the single-default invariant holds in the returned slice. The
// caller persists the whole slice as one document write.
func (u *User) AppendAddress(addr Address) []Address {
	addrs := make([]Address, len(u.Addresses), len(u.Addresses)+1)
	copy(addrs, u.Addresses)
	if addr.IsDefault {
		for i := range addrs {
			addrs[i].IsDefault = false
		}
	}
	return append(addrs, addr)
}
