package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/parfumerie/storefront/internal/api/metrics"
	"github.com/parfumerie/storefront/internal/core/ports"
)

type SeedHandler struct {
	seed ports.SeedService
}

func NewSeedHandler(seed ports.SeedService) *SeedHandler {
	return &SeedHandler{seed: seed}
}

// Seed wipes products and users and reloads the fixtures.
//
// @Summary      Reseed the store
// @Tags         seed
// @Produce      json
// @Success      200  {object}  seedResponse
// @Router       /api/seed [get]
func (h *SeedHandler) Seed(c echo.Context) error {
	result, err := h.seed.Seed(c.Request().Context())
	if err != nil {
		return err
	}
	metrics.CatalogMutationsTotal.WithLabelValues(metrics.OperationSeed).Inc()
	return c.JSON(http.StatusOK, seedResponse{
		CreatedProducts: result.Products,
		CreatedUsers:    result.Users,
	})
}
