package memory

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/figures-ledger/internal/domain/ledger"
	"github.com/jhoicas/figures-ledger/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo resumen global plegando el log figura por figura.
type AnalyticsRepo struct {
	store *Store
}

// NewAnalyticsRepository construye el adaptador.
func NewAnalyticsRepository(store *Store) *AnalyticsRepo {
	return &AnalyticsRepo{store: store}
}

// CollectionSummary métricas globales de la colección.
func (r *AnalyticsRepo) CollectionSummary(ctx context.Context) (*repository.CollectionSummary, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := &repository.CollectionSummary{
		InventoryCostValue: decimal.Zero,
		TotalSales:         decimal.Zero,
	}
	for id, fig := range r.store.figures {
		agg, err := ledger.Fold(r.store.movements[id])
		if err != nil {
			return nil, err
		}
		out.FigureCount++
		out.UnitsInStock += agg.Quantity
		out.InventoryCostValue = out.InventoryCostValue.Add(
			fig.CostPrice.Mul(decimal.NewFromInt(agg.Quantity)))
		out.TotalSales = out.TotalSales.Add(agg.TotalSales)
	}
	return out, nil
}
