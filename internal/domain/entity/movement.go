package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida (venta)
)

// Movement representa un movimiento de stock inmutable contra una figura.
// El log es append-only: un movimiento nunca se edita ni se borra; deshacer
// es registrar un movimiento compensatorio del tipo contrario.
type Movement struct {
	ID        string
	Seq       int64 // secuencia de inserción asignada por el adaptador; desempata timestamps iguales
	FigureID  string
	Kind      string          // IN u OUT
	Quantity  int64           // estrictamente positivo
	SalePrice decimal.Decimal // precio unitario de venta; cero en entradas
	MovedAt   time.Time
}

// IsOut indica si el movimiento es una salida.
func (m *Movement) IsOut() bool { return m.Kind == MovementTypeOUT }

// LineTotal devuelve SalePrice * Quantity (cero para entradas).
func (m *Movement) LineTotal() decimal.Decimal {
	if !m.IsOut() {
		return decimal.Zero
	}
	return m.SalePrice.Mul(decimal.NewFromInt(m.Quantity))
}
