package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateFigureRequest entrada para crear una figura con su stock inicial.
// El movimiento IN semilla se registra en la misma transacción que el alta.
type CreateFigureRequest struct {
	Manufacturer    string          `json:"manufacturer" validate:"required,min=1,max=200"`
	Brand           string          `json:"brand" validate:"required,min=1,max=200"`
	Character       string          `json:"character" validate:"required,min=1,max=200"`
	ModelName       string          `json:"model_name" validate:"required,min=1,max=200"`
	IP              string          `json:"ip" validate:"max=120"`
	CostPrice       decimal.Decimal `json:"cost_price"`
	InitialQuantity int64           `json:"initial_quantity" validate:"required,min=1"`
	ImageURL        string          `json:"image_url"`
}

// UpdateFigureRequest entrada parcial para editar una figura: solo atributos
// descriptivos, costo e imagen. Quantity (opcional) es un objetivo de stock:
// se traduce en un movimiento compensatorio IN/OUT por la diferencia, nunca en
// una escritura directa del contador.
type UpdateFigureRequest struct {
	Manufacturer *string          `json:"manufacturer" validate:"omitempty,min=1,max=200"`
	Brand        *string          `json:"brand" validate:"omitempty,min=1,max=200"`
	Character    *string          `json:"character" validate:"omitempty,min=1,max=200"`
	ModelName    *string          `json:"model_name" validate:"omitempty,min=1,max=200"`
	IP           *string          `json:"ip" validate:"omitempty,max=120"`
	CostPrice    *decimal.Decimal `json:"cost_price"`
	ImageURL     *string          `json:"image_url"`
	Quantity     *int64           `json:"quantity" validate:"omitempty,min=0"`
}

// FigureResponse salida de una figura con su agregado derivado.
type FigureResponse struct {
	ID           string          `json:"id"`
	Manufacturer string          `json:"manufacturer"`
	Brand        string          `json:"brand"`
	Character    string          `json:"character"`
	ModelName    string          `json:"model_name"`
	IP           string          `json:"ip,omitempty"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	ImageURL     string          `json:"image_url,omitempty"`
	Quantity     int64           `json:"qty"`
	TotalSales   decimal.Decimal `json:"total_sales"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// FigureListResponse listado de figuras con agregados.
type FigureListResponse struct {
	Items []FigureResponse `json:"items"`
	Total int              `json:"total"`
}

// ListFiguresFilter filtros exactos por query params (los cinco facetables).
type ListFiguresFilter struct {
	Manufacturer string `query:"manufacturer"`
	Brand        string `query:"brand"`
	Character    string `query:"character"`
	ModelName    string `query:"model_name"`
	IP           string `query:"ip"`
}

// FiltersResponse opciones de todas las facetas en una sola llamada
// (puebla los selectores de la UI).
type FiltersResponse struct {
	Manufacturer []string `json:"manufacturer"`
	Brand        []string `json:"brand"`
	Character    []string `json:"character"`
	ModelName    []string `json:"model_name"`
	IP           []string `json:"ip"`
}
