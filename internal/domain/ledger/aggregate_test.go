package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/figures-ledger/internal/domain"
	"github.com/jhoicas/figures-ledger/internal/domain/entity"
	"github.com/jhoicas/figures-ledger/internal/domain/ledger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func in(qty int64) *entity.Movement {
	return &entity.Movement{
		Kind:      entity.MovementTypeIN,
		Quantity:  qty,
		SalePrice: decimal.Zero,
		MovedAt:   time.Now(),
	}
}

func out(qty int64, price string) *entity.Movement {
	return &entity.Movement{
		Kind:      entity.MovementTypeOUT,
		Quantity:  qty,
		SalePrice: decimal.RequireFromString(price),
		MovedAt:   time.Now(),
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Fold
// ──────────────────────────────────────────────────────────────────────────────

func TestFold_HistorialVacio(t *testing.T) {
	agg, err := ledger.Fold(nil)
	require.NoError(t, err)
	assert.EqualValues(t, 0, agg.Quantity)
	assert.True(t, agg.TotalSales.IsZero())
}

// Escenario de referencia: 5 entradas, venta de 2 a 15.00, entrada de 4.
func TestFold_EscenarioEntradasYVentas(t *testing.T) {
	movs := []*entity.Movement{in(5), out(2, "15.00"), in(4)}

	agg, err := ledger.Fold(movs)
	require.NoError(t, err)
	assert.EqualValues(t, 7, agg.Quantity)
	assert.True(t, agg.TotalSales.Equal(dec("30.00")),
		"total_sales = 2 × 15.00, la entrada posterior no lo altera")
}

func TestFold_EntradasNoCambianVentas(t *testing.T) {
	movs := []*entity.Movement{in(3), out(1, "9.50")}
	before, err := ledger.Fold(movs)
	require.NoError(t, err)

	after, err := ledger.Fold(append(movs, in(10)))
	require.NoError(t, err)

	assert.True(t, before.TotalSales.Equal(after.TotalSales))
	assert.EqualValues(t, before.Quantity+10, after.Quantity)
}

func TestFold_VariasVentasAcumulan(t *testing.T) {
	movs := []*entity.Movement{in(10), out(2, "15.00"), out(3, "12.50")}
	agg, err := ledger.Fold(movs)
	require.NoError(t, err)
	assert.EqualValues(t, 5, agg.Quantity)
	// 2×15.00 + 3×12.50 = 67.50
	assert.True(t, agg.TotalSales.Equal(dec("67.50")))
}

// Un log con un prefijo negativo está corrupto: la admisión nunca debió
// dejarlo pasar, Fold lo rechaza.
func TestFold_PrefijoNegativoEsError(t *testing.T) {
	movs := []*entity.Movement{in(2), out(5, "10.00"), in(100)}
	_, err := ledger.Fold(movs)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Plegar dos veces el mismo historial da lo mismo (lectura idempotente).
func TestFold_Idempotente(t *testing.T) {
	movs := []*entity.Movement{in(5), out(2, "15.00")}
	a, err := ledger.Fold(movs)
	require.NoError(t, err)
	b, err := ledger.Fold(movs)
	require.NoError(t, err)
	assert.Equal(t, a.Quantity, b.Quantity)
	assert.True(t, a.TotalSales.Equal(b.TotalSales))
}

// ──────────────────────────────────────────────────────────────────────────────
// Admit
// ──────────────────────────────────────────────────────────────────────────────

func TestAdmit_CantidadNoPositiva(t *testing.T) {
	price := dec("10.00")
	assert.ErrorIs(t, ledger.Admit(ledger.Zero(), entity.MovementTypeIN, 0, nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, ledger.Admit(ledger.Zero(), entity.MovementTypeOUT, -3, &price), domain.ErrInvalidInput)
}

func TestAdmit_SalidaSinPrecio(t *testing.T) {
	cur := ledger.Aggregate{Quantity: 10, TotalSales: decimal.Zero}
	assert.ErrorIs(t, ledger.Admit(cur, entity.MovementTypeOUT, 1, nil), domain.ErrInvalidInput)

	negative := dec("-1.00")
	assert.ErrorIs(t, ledger.Admit(cur, entity.MovementTypeOUT, 1, &negative), domain.ErrInvalidInput)
}

func TestAdmit_PrecioCeroEsValido(t *testing.T) {
	cur := ledger.Aggregate{Quantity: 10, TotalSales: decimal.Zero}
	zero := decimal.Zero
	assert.NoError(t, ledger.Admit(cur, entity.MovementTypeOUT, 1, &zero))
}

func TestAdmit_StockInsuficiente(t *testing.T) {
	cur := ledger.Aggregate{Quantity: 3, TotalSales: decimal.Zero}
	price := dec("15.00")
	assert.ErrorIs(t, ledger.Admit(cur, entity.MovementTypeOUT, 10, &price), domain.ErrInsufficientStock)
	// El límite exacto sí pasa
	assert.NoError(t, ledger.Admit(cur, entity.MovementTypeOUT, 3, &price))
}

func TestAdmit_TipoDesconocido(t *testing.T) {
	assert.ErrorIs(t, ledger.Admit(ledger.Zero(), "TRANSFER", 1, nil), domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// SalesLines
// ──────────────────────────────────────────────────────────────────────────────

func TestSalesLines_SoloSalidasConTotalPorLinea(t *testing.T) {
	movs := []*entity.Movement{in(10), out(2, "15.00"), in(1), out(1, "20.00")}
	lines := ledger.SalesLines(movs)

	require.Len(t, lines, 2)
	assert.True(t, lines[0].UnitPrice.Equal(dec("15.00")))
	assert.EqualValues(t, 2, lines[0].Quantity)
	assert.True(t, lines[0].LineTotal.Equal(dec("30.00")))
	assert.True(t, lines[1].LineTotal.Equal(dec("20.00")))
}

func TestSalesLines_SinVentas(t *testing.T) {
	lines := ledger.SalesLines([]*entity.Movement{in(5)})
	assert.Empty(t, lines)
}
