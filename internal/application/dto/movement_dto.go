package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordMovementRequest body para POST /api/movements.
// SalePrice es obligatorio (y no negativo) en salidas; se ignora en entradas.
type RecordMovementRequest struct {
	FigureID  string           `json:"figure_id" validate:"required"`
	Kind      string           `json:"kind" validate:"required,oneof=IN OUT"`
	Quantity  int64            `json:"quantity" validate:"required,min=1"`
	SalePrice *decimal.Decimal `json:"sale_price,omitempty"`
}

// AggregateResponse agregado derivado de una figura tras plegar su historial.
type AggregateResponse struct {
	FigureID   string          `json:"figure_id"`
	Quantity   int64           `json:"qty"`
	TotalSales decimal.Decimal `json:"total_sales"`
}

// SalesLineDTO línea del detalle de ventas (solo movimientos OUT).
type SalesLineDTO struct {
	UnitPrice decimal.Decimal `json:"sale_price"`
	Quantity  int64           `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
	MovedAt   time.Time       `json:"moved_at"`
}

// SalesHistoryResponse detalle de ventas en orden cronológico ascendente.
type SalesHistoryResponse struct {
	FigureID string         `json:"figure_id"`
	Items    []SalesLineDTO `json:"items"`
	Total    int            `json:"total"`
}
