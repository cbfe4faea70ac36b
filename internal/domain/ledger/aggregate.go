// Package ledger contiene la lógica pura de agregación del log de movimientos
// (servicio de dominio): plegado de historial, chequeo de admisión y detalle
// de ventas. No toca persistencia ni transporte.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/figures-ledger/internal/domain"
	"github.com/jhoicas/figures-ledger/internal/domain/entity"
)

// Aggregate es la proyección derivada de una figura:
// Quantity = Σ entradas − Σ salidas; TotalSales = Σ (salida.qty × salida.precio).
type Aggregate struct {
	Quantity   int64
	TotalSales decimal.Decimal
}

// Zero devuelve el agregado inicial (0, 0.00).
func Zero() Aggregate {
	return Aggregate{Quantity: 0, TotalSales: decimal.Zero}
}

// Apply aplica un movimiento sobre el agregado y devuelve el resultado.
// No valida: la admisión ocurre antes del append (ver Admit).
func Apply(cur Aggregate, m *entity.Movement) Aggregate {
	switch m.Kind {
	case entity.MovementTypeIN:
		cur.Quantity += m.Quantity
	case entity.MovementTypeOUT:
		cur.Quantity -= m.Quantity
		cur.TotalSales = cur.TotalSales.Add(m.LineTotal())
	}
	return cur
}

// Fold pliega el historial de izquierda a derecha (orden cronológico).
// Devuelve ErrInvalidInput si algún prefijo deja la cantidad negativa:
// un log así está corrupto, la admisión nunca debió dejarlo pasar.
func Fold(movs []*entity.Movement) (Aggregate, error) {
	agg := Zero()
	for _, m := range movs {
		agg = Apply(agg, m)
		if agg.Quantity < 0 {
			return Zero(), domain.ErrInvalidInput
		}
	}
	return agg, nil
}

// Admit es el chequeo de admisión previo al append de un movimiento.
// Orden de validación: (1) cantidad positiva, (2) salidas con precio presente
// y no negativo, (3) salidas que no dejen stock negativo.
// El llamador debe ejecutar Admit + append bajo exclusión por figura.
func Admit(cur Aggregate, kind string, quantity int64, salePrice *decimal.Decimal) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	switch kind {
	case entity.MovementTypeIN:
		return nil
	case entity.MovementTypeOUT:
		if salePrice == nil || salePrice.IsNegative() {
			return domain.ErrInvalidInput
		}
		if cur.Quantity-quantity < 0 {
			return domain.ErrInsufficientStock
		}
		return nil
	}
	return domain.ErrInvalidInput
}

// SalesLine es una línea del detalle de ventas de una figura.
type SalesLine struct {
	UnitPrice decimal.Decimal
	Quantity  int64
	LineTotal decimal.Decimal
	MovedAt   time.Time
}

// SalesLines devuelve el subconjunto OUT del historial en orden cronológico
// ascendente, con el total por línea ya calculado. La capa de presentación
// puede invertir el orden si quiere mostrar lo más reciente primero.
func SalesLines(movs []*entity.Movement) []SalesLine {
	lines := make([]SalesLine, 0)
	for _, m := range movs {
		if !m.IsOut() {
			continue
		}
		lines = append(lines, SalesLine{
			UnitPrice: m.SalePrice,
			Quantity:  m.Quantity,
			LineTotal: m.LineTotal(),
			MovedAt:   m.MovedAt,
		})
	}
	return lines
}
