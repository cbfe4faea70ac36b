package dto

import "github.com/shopspring/decimal"

// CollectionSummaryDTO resumen global de la colección para el dashboard.
type CollectionSummaryDTO struct {
	FigureCount        int64           `json:"figure_count"`
	UnitsInStock       int64           `json:"units_in_stock"`
	InventoryCostValue decimal.Decimal `json:"inventory_cost_value"`
	TotalSales         decimal.Decimal `json:"total_sales"`
}
