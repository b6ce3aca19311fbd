package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/shopkart/storefront-api/internal/core/domain"
	"github.com/shopkart/storefront-api/internal/core/ports"
	"github.com/shopkart/storefront-api/internal/pkg/metrics"
)

// UserHandler serves profile, address, wishlist, and admin user routes.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// GetProfile returns the resolved identity's record, password excluded.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /profile [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.users.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile applies a partial update and returns a fresh session token.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to update (all optional)"
// @Success      200   {object}  profileUpdateResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.users.UpdateProfile(c.Request().Context(), userID, ports.UpdateProfileInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileUpdateResponse{
		Token:   result.Token,
		ID:      result.User.ID,
		Name:    result.User.Name,
		Email:   result.User.Email,
		Phone:   result.User.Phone,
		IsAdmin: result.User.IsAdmin,
	})
}

// AddAddress appends an address to the profile.
//
// @Summary      Add an address
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addressRequest  true  "Address"
// @Success      201   {object}  addressesResponse
// @Failure      404   {object}  errorResponse
// @Router       /address [post]
func (h *UserHandler) AddAddress(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req addressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	addresses, err := h.users.AddAddress(c.Request().Context(), userID, domain.Address{
		Line1:      req.AddressLine1,
		Line2:      req.AddressLine2,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		IsDefault:  req.IsDefault,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, addressesResponse{Addresses: addresses})
}

// GetWishlist returns the wishlist with references resolved to products.
//
// @Summary      Get wishlist
// @Tags         wishlist
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  wishlistResponse
// @Failure      404  {object}  errorResponse
// @Router       /wishlist [get]
func (h *UserHandler) GetWishlist(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	wishlist, err := h.users.GetWishlist(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, wishlistResponse{Wishlist: wishlist})
}

// AddToWishlist adds a product reference; duplicates are rejected.
//
// @Summary      Add a product to the wishlist
// @Tags         wishlist
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      wishlistRequest  true  "Product reference"
// @Success      201   {object}  wishlistResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /wishlist [post]
func (h *UserHandler) AddToWishlist(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req wishlistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	wishlist, err := h.users.AddToWishlist(c.Request().Context(), userID, req.ProductID)
	if err != nil {
		if err == domain.ErrWishlistDuplicate {
			metrics.WishlistOpsTotal.WithLabelValues("add", "duplicate").Inc()
		} else {
			metrics.WishlistOpsTotal.WithLabelValues("add", "error").Inc()
		}
		return err
	}

	metrics.WishlistOpsTotal.WithLabelValues("add", "ok").Inc()
	return c.JSON(http.StatusCreated, wishlistResponse{Wishlist: wishlist})
}

// RemoveFromWishlist removes a product reference, idempotently.
//
// @Summary      Remove a product from the wishlist
// @Tags         wishlist
// @Produce      json
// @Security     BearerAuth
// @Param        itemId  path      string  true  "Product ID"
// @Success      200     {object}  wishlistResponse
// @Failure      404     {object}  errorResponse
// @Router       /wishlist/{itemId} [delete]
func (h *UserHandler) RemoveFromWishlist(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	wishlist, err := h.users.RemoveFromWishlist(c.Request().Context(), userID, c.Param("itemId"))
	if err != nil {
		metrics.WishlistOpsTotal.WithLabelValues("remove", "error").Inc()
		return err
	}

	metrics.WishlistOpsTotal.WithLabelValues("remove", "ok").Inc()
	return c.JSON(http.StatusOK, wishlistResponse{Wishlist: wishlist})
}

// ListUsers returns every user record; admin only.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (1-based)"
// @Param        limit  query     int  false  "Page size; omit for everything"
// @Success      200    {array}   domain.User
// @Failure      403    {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	users, err := h.users.ListUsers(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}
