package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/figures-ledger/internal/application/dto"
	appledger "github.com/jhoicas/figures-ledger/internal/application/ledger"
	"github.com/jhoicas/figures-ledger/internal/domain"
)

// MovementHandler maneja las peticiones HTTP del ledger: registrar movimientos
// y consultar agregado y detalle de ventas.
type MovementHandler struct {
	recorder   *appledger.RecordMovementUseCase
	aggregator *appledger.AggregatorUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(recorder *appledger.RecordMovementUseCase, aggregator *appledger.AggregatorUseCase) *MovementHandler {
	return &MovementHandler{recorder: recorder, aggregator: aggregator}
}

// Record godoc
// @Summary      Registrar movimiento de stock (IN/OUT)
// @Description  Las salidas exigen sale_price y pasan el chequeo de stock;
//               un rechazo por stock insuficiente no escribe nada en el log.
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "figure_id, kind (IN/OUT), quantity, sale_price (salidas)"
// @Success      201   {object}  dto.AggregateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.recorder.Record(c.Context(), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "figura no encontrada"})
		}
		if err == domain.ErrInsufficientStock {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Aggregate godoc
// @Summary      Agregado actual de una figura (plegado del log)
// @Tags         movements
// @Produce      json
// @Param        id   path  string  true  "ID de la figura"
// @Success      200  {object}  dto.AggregateResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/figures/{id}/aggregate [get]
func (h *MovementHandler) Aggregate(c *fiber.Ctx) error {
	out, err := h.aggregator.Aggregate(c.Context(), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "figura no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Sales godoc
// @Summary      Detalle de ventas de una figura (cronológico ascendente)
// @Tags         movements
// @Produce      json
// @Param        id   path  string  true  "ID de la figura"
// @Success      200  {object}  dto.SalesHistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/figures/{id}/sales [get]
func (h *MovementHandler) Sales(c *fiber.Ctx) error {
	out, err := h.aggregator.SalesHistory(c.Context(), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "figura no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
