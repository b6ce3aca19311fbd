package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// OrderHandler serves the order routes. Same MVP placeholder contract as
// the cart: orders are assembled client-side for now.
type OrderHandler struct{}

func NewOrderHandler() *OrderHandler {
	return &OrderHandler{}
}

// Create handles POST /orders.
func (h *OrderHandler) Create(c echo.Context) error {
	return c.JSON(http.StatusCreated, messageResponse{Message: "Order created"})
}

// List handles GET /orders.
func (h *OrderHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, []any{})
}

// Get handles GET /orders/:id.
func (h *OrderHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{})
}
