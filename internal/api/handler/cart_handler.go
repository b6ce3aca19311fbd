package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// CartHandler serves the cart routes. The cart lives client-side in this
// MVP; these endpoints return static placeholders so the route surface is
// stable for when persistence lands.
type CartHandler struct{}

func NewCartHandler() *CartHandler {
	return &CartHandler{}
}

type cartResponse struct {
	Items []any `json:"items"`
}

// Get handles GET /cart.
func (h *CartHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, cartResponse{Items: []any{}})
}

// AddItem handles POST /cart.
func (h *CartHandler) AddItem(c echo.Context) error {
	return c.JSON(http.StatusCreated, messageResponse{Message: "Item added to cart"})
}

// UpdateItem handles PUT /cart/:id.
func (h *CartHandler) UpdateItem(c echo.Context) error {
	return c.JSON(http.StatusOK, messageResponse{Message: "Cart updated"})
}

// RemoveItem handles DELETE /cart/:id.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	return c.JSON(http.StatusOK, messageResponse{Message: "Item removed from cart"})
}

// Clear handles DELETE /cart.
func (h *CartHandler) Clear(c echo.Context) error {
	return c.JSON(http.StatusOK, messageResponse{Message: "Cart cleared"})
}
