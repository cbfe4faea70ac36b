package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// CollectionSummary métricas globales de la colección.
type CollectionSummary struct {
	FigureCount        int64
	UnitsInStock       int64
	InventoryCostValue decimal.Decimal // Σ stock × costo por figura
	TotalSales         decimal.Decimal // Σ ventas históricas
}

// AnalyticsRepository consultas read-only de agregados globales.
// En PostgreSQL se resuelven con SUM/GROUP BY; el agregado por figura que ven
// los listados sigue saliendo del plegado del log, nunca de una columna cacheada.
type AnalyticsRepository interface {
	CollectionSummary(ctx context.Context) (*CollectionSummary, error)
}
