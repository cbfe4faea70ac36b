package memory

import (
	"github.com/jhoicas/figures-ledger/internal/domain/entity"
	"github.com/jhoicas/figures-ledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación en memoria, append-only, del log de movimientos.
type MovementRepo struct {
	store *Store
}

// NewMovementRepository construye el adaptador del log.
func NewMovementRepository(store *Store) *MovementRepo {
	return &MovementRepo{store: store}
}

// Create agrega el movimiento al final del log de su figura y asigna Seq.
func (r *MovementRepo) Create(mov *entity.Movement) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.seq++
	mov.Seq = r.store.seq
	r.store.movements[mov.FigureID] = append(r.store.movements[mov.FigureID], copyMovement(mov))
	return nil
}

// ListByFigure historial completo; el orden de inserción ya es el cronológico
// (los appends por figura están serializados por el lock de figura).
func (r *MovementRepo) ListByFigure(figureID string) ([]*entity.Movement, error) {
	return r.list(figureID, false)
}

// ListOutByFigure solo salidas, mismo orden.
func (r *MovementRepo) ListOutByFigure(figureID string) ([]*entity.Movement, error) {
	return r.list(figureID, true)
}

func (r *MovementRepo) list(figureID string, onlyOut bool) ([]*entity.Movement, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	src := r.store.movements[figureID]
	list := make([]*entity.Movement, 0, len(src))
	for _, m := range src {
		if onlyOut && !m.IsOut() {
			continue
		}
		list = append(list, copyMovement(m))
	}
	return list, nil
}
