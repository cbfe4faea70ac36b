package memory

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/figures-ledger/internal/domain"
	"github.com/jhoicas/figures-ledger/internal/domain/entity"
	"github.com/jhoicas/figures-ledger/internal/domain/repository"
)

var _ repository.FigureRepository = (*FigureRepo)(nil)

// FigureRepo implementación en memoria del puerto FigureRepository.
// Con tx != nil, GetForUpdate toma el mutex de la figura (exclusión por figura).
type FigureRepo struct {
	store *Store
	tx    *txState
}

// NewFigureRepository adaptador fuera de transacción (solo lecturas y
// escrituras sueltas; para el ciclo chequeo-y-append usar el TxRunner).
func NewFigureRepository(store *Store) *FigureRepo {
	return &FigureRepo{store: store}
}

// Create persiste una nueva figura.
func (r *FigureRepo) Create(fig *entity.Figure) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.figures[fig.ID]; ok {
		return domain.ErrDuplicate
	}
	r.store.figures[fig.ID] = copyFigure(fig)
	return nil
}

// GetByID devuelve (nil, nil) si la figura no existe.
func (r *FigureRepo) GetByID(id string) (*entity.Figure, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	fig, ok := r.store.figures[id]
	if !ok {
		return nil, nil
	}
	return copyFigure(fig), nil
}

// GetForUpdate bloquea la figura para el resto de la transacción en curso.
func (r *FigureRepo) GetForUpdate(id string) (*entity.Figure, error) {
	if r.tx != nil {
		r.tx.lockFigure(id)
	}
	return r.GetByID(id)
}

// GetByIdentity busca una figura idéntica (atributos descriptivos + costo).
func (r *FigureRepo) GetByIdentity(manufacturer, brand, character, modelName string, costPrice decimal.Decimal) (*entity.Figure, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, fig := range r.store.figures {
		if fig.Manufacturer == manufacturer && fig.Brand == brand &&
			fig.Character == character && fig.ModelName == modelName &&
			fig.CostPrice.Equal(costPrice) {
			return copyFigure(fig), nil
		}
	}
	return nil, nil
}

// Update reemplaza los atributos de la figura. ErrNotFound si no existe.
func (r *FigureRepo) Update(fig *entity.Figure) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.figures[fig.ID]; !ok {
		return domain.ErrNotFound
	}
	r.store.figures[fig.ID] = copyFigure(fig)
	return nil
}

// Delete elimina la figura y arrastra su historial (cascada).
func (r *FigureRepo) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.figures[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.figures, id)
	delete(r.store.movements, id)
	return nil
}

// List figuras que cumplen el filtro, más recientes primero (como el adaptador SQL).
func (r *FigureRepo) List(filter repository.FigureFilter) ([]*entity.Figure, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var list []*entity.Figure
	for _, fig := range r.store.figures {
		if filter.Matches(fig) {
			list = append(list, copyFigure(fig))
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

// DistinctValues valores no vacíos, únicos y ordenados de un atributo facetable.
func (r *FigureRepo) DistinctValues(attr string) ([]string, error) {
	if !entity.IsFacet(attr) {
		return nil, domain.ErrInvalidInput
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	seen := make(map[string]bool)
	values := make([]string, 0)
	for _, fig := range r.store.figures {
		v := fig.FacetValue(attr)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return values, nil
}
