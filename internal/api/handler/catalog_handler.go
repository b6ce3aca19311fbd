package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopkart/storefront-api/internal/core/ports"
)

// CatalogHandler serves the public product routes and review submission.
type CatalogHandler struct {
	catalog ports.CatalogService
}

func NewCatalogHandler(catalog ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// List returns the catalog, optionally filtered by category.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        category  query     string  false  "Category filter"
// @Success      200       {array}   domain.Product
// @Router       /products [get]
func (h *CatalogHandler) List(c echo.Context) error {
	products, err := h.catalog.ListProducts(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Featured returns the products flagged for the home page.
//
// @Summary      List featured products
// @Tags         products
// @Produce      json
// @Success      200  {array}  domain.Product
// @Router       /products/featured [get]
func (h *CatalogHandler) Featured(c echo.Context) error {
	products, err := h.catalog.FeaturedProducts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Get returns a single product.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [get]
func (h *CatalogHandler) Get(c echo.Context) error {
	product, err := h.catalog.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// AddReview records a review from the resolved identity.
//
// @Summary      Add a product review
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Product ID"
// @Param        body  body      reviewRequest  true  "Review"
// @Success      201   {object}  messageResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /products/{id}/reviews [post]
func (h *CatalogHandler) AddReview(c echo.Context) error {
	user := ctxUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authorized, token failed")
	}

	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.catalog.AddReview(c.Request().Context(), c.Param("id"), ports.ReviewInput{
		UserID:   user.ID,
		UserName: user.Name,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: "Review added"})
}
