package handler

import (
	"github.com/shopkart/storefront-api/internal/core/domain"
)

// errorResponse documents the error envelope in swagger annotations; the
// actual rendering happens in the central error handler.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

type addressRequest struct {
	AddressLine1 string `json:"addressLine1" validate:"required"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"         validate:"required"`
	State        string `json:"state"        validate:"required"`
	PostalCode   string `json:"postalCode"   validate:"required"`
	Country      string `json:"country"      validate:"required"`
	IsDefault    bool   `json:"isDefault"`
}

type wishlistRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

// --- Response types ---

// userResponse is the non-secret profile view returned by auth endpoints.
type userResponse struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	IsAdmin bool   `json:"isAdmin"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// profileUpdateResponse flattens the updated fields next to the new token.
// Existing clients read the fields at the top level, not under "user".
type profileUpdateResponse struct {
	Token   string `json:"token"`
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	IsAdmin bool   `json:"isAdmin"`
}

type addressesResponse struct {
	Addresses []domain.Address `json:"addresses"`
}

type wishlistResponse struct {
	Wishlist []domain.Product `json:"wishlist"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		IsAdmin: u.IsAdmin,
	}
}
