package catalog

import (
	"context"

	"github.com/jhoicas/figures-ledger/internal/application/dto"
	appledger "github.com/jhoicas/figures-ledger/internal/application/ledger"
	"github.com/jhoicas/figures-ledger/internal/domain"
	"github.com/jhoicas/figures-ledger/internal/domain/entity"
	"github.com/jhoicas/figures-ledger/internal/domain/repository"
)

// QueryUseCase listados facetados y opciones de filtro para la capa de
// presentación. Cada figura listada se anota con su agregado pidiéndoselo al
// agregador en el momento de la consulta; no hay proyección cacheada.
type QueryUseCase struct {
	figureRepo repository.FigureRepository
	aggregator *appledger.AggregatorUseCase
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(figureRepo repository.FigureRepository, aggregator *appledger.AggregatorUseCase) *QueryUseCase {
	return &QueryUseCase{figureRepo: figureRepo, aggregator: aggregator}
}

// List devuelve las figuras que cumplen el filtro (igualdad exacta, AND entre
// campos presentes) anotadas con su agregado. Filtro vacío = todas.
// Un valor de faceta que no existe en ninguna figura produce lista vacía, no error.
func (uc *QueryUseCase) List(ctx context.Context, filter dto.ListFiguresFilter) (*dto.FigureListResponse, error) {
	figs, err := uc.figureRepo.List(repository.FigureFilter{
		Manufacturer: filter.Manufacturer,
		Brand:        filter.Brand,
		Character:    filter.Character,
		ModelName:    filter.ModelName,
		IP:           filter.IP,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.FigureResponse, 0, len(figs))
	for _, fig := range figs {
		agg, err := uc.aggregator.Aggregate(ctx, fig.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, *toFigureResponse(fig, agg.Quantity, agg.TotalSales))
	}
	return &dto.FigureListResponse{Items: items, Total: len(items)}, nil
}

// DistinctValues conjunto ordenado de valores no vacíos de un atributo
// facetable. ErrInvalidInput si attr no es una de las cinco facetas.
func (uc *QueryUseCase) DistinctValues(ctx context.Context, attr string) ([]string, error) {
	if !entity.IsFacet(attr) {
		return nil, domain.ErrInvalidInput
	}
	return uc.figureRepo.DistinctValues(attr)
}

// Filters devuelve las opciones de las cinco facetas en una sola llamada.
// Consulta las facetas en paralelo; el repositorio es read-only.
func (uc *QueryUseCase) Filters(ctx context.Context) (*dto.FiltersResponse, error) {
	type facetResult struct {
		attr   string
		values []string
		err    error
	}
	facets := entity.Facets()
	ch := make(chan facetResult, len(facets))
	for _, attr := range facets {
		go func(attr string) {
			values, err := uc.figureRepo.DistinctValues(attr)
			ch <- facetResult{attr: attr, values: values, err: err}
		}(attr)
	}

	out := &dto.FiltersResponse{}
	for range facets {
		res := <-ch
		if res.err != nil {
			return nil, res.err
		}
		switch res.attr {
		case entity.FacetManufacturer:
			out.Manufacturer = res.values
		case entity.FacetBrand:
			out.Brand = res.values
		case entity.FacetCharacter:
			out.Character = res.values
		case entity.FacetModelName:
			out.ModelName = res.values
		case entity.FacetIP:
			out.IP = res.values
		}
	}
	return out, nil
}
