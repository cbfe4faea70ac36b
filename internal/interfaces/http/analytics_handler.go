package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/figures-ledger/internal/application/analytics"
	"github.com/jhoicas/figures-ledger/internal/application/dto"
)

// AnalyticsHandler métricas globales de la colección.
type AnalyticsHandler struct {
	uc *analytics.SummaryUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.SummaryUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen global: figuras, stock, valor al costo y ventas
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  dto.CollectionSummaryDTO
// @Router       /api/analytics/summary [get]
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
