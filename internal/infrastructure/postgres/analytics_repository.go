package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/figures-ledger/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas read-only de agregados globales sobre PostgreSQL.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// CollectionSummary métricas globales: conteo de figuras, unidades en stock,
// valor de inventario al costo y ventas acumuladas. El stock por figura se
// deriva del log (SUM con signo por tipo), nunca de una columna cacheada.
func (r *AnalyticsRepo) CollectionSummary(ctx context.Context) (*repository.CollectionSummary, error) {
	query := `
		WITH per_figure AS (
			SELECT f.id,
			       f.cost_price,
			       COALESCE(SUM(CASE WHEN m.kind = 'IN' THEN m.quantity
			                         WHEN m.kind = 'OUT' THEN -m.quantity
			                         ELSE 0 END), 0) AS qty,
			       COALESCE(SUM(CASE WHEN m.kind = 'OUT' THEN m.quantity * m.sale_price
			                         ELSE 0 END), 0) AS sales
			FROM figures f
			LEFT JOIN stock_movements m ON m.figure_id = f.id
			GROUP BY f.id, f.cost_price
		)
		SELECT COUNT(*),
		       COALESCE(SUM(qty), 0),
		       COALESCE(SUM(qty * cost_price), 0),
		       COALESCE(SUM(sales), 0)
		FROM per_figure`
	var s repository.CollectionSummary
	err := r.q.QueryRow(ctx, query).Scan(
		&s.FigureCount, &s.UnitsInStock, &s.InventoryCostValue, &s.TotalSales,
	)
	if err != nil {
		return nil, fmt.Errorf("collection summary: %w", err)
	}
	return &s, nil
}
