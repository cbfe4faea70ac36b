// Package analytics contiene los casos de uso de reportes globales de la
// colección (métricas read-only para el dashboard).
package analytics

import (
	"context"

	"github.com/jhoicas/figures-ledger/internal/application/dto"
	"github.com/jhoicas/figures-ledger/internal/domain/repository"
)

// SummaryUseCase genera el resumen global de la colección.
// Fuente de datos: AnalyticsRepository (consultas read-only); no toca el
// camino de escritura del ledger.
type SummaryUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewSummaryUseCase construye el caso de uso.
func NewSummaryUseCase(analyticsRepo repository.AnalyticsRepository) *SummaryUseCase {
	return &SummaryUseCase{analyticsRepo: analyticsRepo}
}

// Summary devuelve conteo de figuras, unidades en stock, valor de inventario
// al costo y ventas acumuladas de toda la colección.
func (uc *SummaryUseCase) Summary(ctx context.Context) (*dto.CollectionSummaryDTO, error) {
	s, err := uc.analyticsRepo.CollectionSummary(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.CollectionSummaryDTO{
		FigureCount:        s.FigureCount,
		UnitsInStock:       s.UnitsInStock,
		InventoryCostValue: s.InventoryCostValue,
		TotalSales:         s.TotalSales,
	}, nil
}
