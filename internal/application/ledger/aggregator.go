package ledger

import (
	"context"

	"github.com/jhoicas/figures-ledger/internal/application/dto"
	"github.com/jhoicas/figures-ledger/internal/domain"
	"github.com/jhoicas/figures-ledger/internal/domain/ledger"
	"github.com/jhoicas/figures-ledger/internal/domain/repository"
)

// AggregatorUseCase consultas read-only del ledger: agregado actual y detalle
// de ventas. Pliega el historial en cada llamada; no confía en contadores
// cacheados (no existen).
type AggregatorUseCase struct {
	figureRepo   repository.FigureRepository
	movementRepo repository.MovementRepository
}

// NewAggregatorUseCase construye el caso de uso.
func NewAggregatorUseCase(figureRepo repository.FigureRepository, movementRepo repository.MovementRepository) *AggregatorUseCase {
	return &AggregatorUseCase{figureRepo: figureRepo, movementRepo: movementRepo}
}

// Aggregate devuelve {qty, total_sales} plegando el historial completo de la
// figura. ErrNotFound si la figura no existe.
func (uc *AggregatorUseCase) Aggregate(ctx context.Context, figureID string) (*dto.AggregateResponse, error) {
	fig, err := uc.figureRepo.GetByID(figureID)
	if err != nil {
		return nil, err
	}
	if fig == nil {
		return nil, domain.ErrNotFound
	}
	movs, err := uc.movementRepo.ListByFigure(figureID)
	if err != nil {
		return nil, err
	}
	agg, err := ledger.Fold(movs)
	if err != nil {
		return nil, err
	}
	return &dto.AggregateResponse{
		FigureID:   figureID,
		Quantity:   agg.Quantity,
		TotalSales: agg.TotalSales,
	}, nil
}

// SalesHistory devuelve las líneas OUT de la figura en orden cronológico
// ascendente con el total por línea. ErrNotFound si la figura no existe.
func (uc *AggregatorUseCase) SalesHistory(ctx context.Context, figureID string) (*dto.SalesHistoryResponse, error) {
	fig, err := uc.figureRepo.GetByID(figureID)
	if err != nil {
		return nil, err
	}
	if fig == nil {
		return nil, domain.ErrNotFound
	}
	movs, err := uc.movementRepo.ListOutByFigure(figureID)
	if err != nil {
		return nil, err
	}
	lines := ledger.SalesLines(movs)
	items := make([]dto.SalesLineDTO, 0, len(lines))
	for _, l := range lines {
		items = append(items, dto.SalesLineDTO{
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			LineTotal: l.LineTotal,
			MovedAt:   l.MovedAt,
		})
	}
	return &dto.SalesHistoryResponse{
		FigureID: figureID,
		Items:    items,
		Total:    len(items),
	}, nil
}
