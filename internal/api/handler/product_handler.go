package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/parfumerie/storefront/internal/api/metrics"
	"github.com/parfumerie/storefront/internal/core/domain"
	"github.com/parfumerie/storefront/internal/core/ports"
)

// ProductHandler serves catalog routes under /api/products.
type ProductHandler struct {
	products ports.ProductService
}

func NewProductHandler(products ports.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// List returns the whole catalog, including sold-out products.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Success      200  {array}  domain.Product
// @Router       /api/products [get]
// @Router       /api/products/admin [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.products.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Get returns a product by id.
//
// @Summary      Get a product by id
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  messageResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.products.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// GetBySlug returns a product by slug.
//
// @Summary      Get a product by slug
// @Tags         products
// @Produce      json
// @Param        slug  path      string  true  "Product slug"
// @Success      200   {object}  domain.Product
// @Failure      404   {object}  messageResponse
// @Router       /api/products/slug/{slug} [get]
func (h *ProductHandler) GetBySlug(c echo.Context) error {
	product, err := h.products.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Search filters by name and category.
//
// @Summary      Search products
// @Tags         products
// @Produce      json
// @Param        query     query     string  false  "Name fragment, or all"
// @Param        category  query     string  false  "Category, or all"
// @Success      200       {object}  searchResponse
// @Router       /api/products/search [get]
func (h *ProductHandler) Search(c echo.Context) error {
	products, err := h.products.Search(c.Request().Context(), domain.SearchFilter{
		Query:    c.QueryParam("query"),
		Category: c.QueryParam("category"),
	})
	if err != nil {
		return err
	}
	metrics.SearchResults.Observe(float64(len(products)))
	return c.JSON(http.StatusOK, searchResponse{Products: products})
}

// Categories lists the distinct categories.
//
// @Summary      List categories
// @Tags         products
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/products/categories [get]
func (h *ProductHandler) Categories(c echo.Context) error {
	categories, err := h.products.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

// Create inserts a placeholder product for the admin to edit.
//
// @Summary      Create a sample product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  productCreatedResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	product, err := h.products.CreateSample(c.Request().Context())
	if err != nil {
		return err
	}
	metrics.CatalogMutationsTotal.WithLabelValues(metrics.OperationCreate).Inc()
	return c.JSON(http.StatusOK, productCreatedResponse{Message: "Product Created", Product: product})
}

// Update replaces the editable fields of a product.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Product id"
// @Param        body  body      productRequest  true  "Product fields"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	var req productRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.products.Update(c.Request().Context(), c.Param("id"), req.fields()); err != nil {
		return err
	}
	metrics.CatalogMutationsTotal.WithLabelValues(metrics.OperationUpdate).Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Product Updated"})
}

// Delete removes a product.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.products.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.CatalogMutationsTotal.WithLabelValues(metrics.OperationDelete).Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Product Deleted"})
}
