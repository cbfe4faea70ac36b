package memory

import (
	"context"
	"sync"

	appledger "github.com/jhoicas/figures-ledger/internal/application/ledger"
	"github.com/jhoicas/figures-ledger/internal/domain/repository"
)

var _ appledger.TxRunner = (*TxRunner)(nil)

// TxRunner versión en memoria del runner transaccional. No hay rollback de
// escrituras: los casos de uso escriben solo después de validar, igual que en
// el adaptador PostgreSQL escriben al final de la tx. Lo que sí replica es la
// exclusión por figura: GetForUpdate toma el mutex de la figura y Run lo
// libera al terminar, cubriendo el ciclo chequeo-y-append completo.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con repos atados a un estado de transacción que acumula los
// locks por figura adquiridos vía GetForUpdate y los libera al salir.
func (r *TxRunner) Run(ctx context.Context, fn func(
	figRepo repository.FigureRepository,
	movRepo repository.MovementRepository,
) error) error {
	tx := &txState{store: r.store, locked: make(map[string]bool)}
	defer tx.release()
	return fn(&FigureRepo{store: r.store, tx: tx}, &MovementRepo{store: r.store})
}

// txState locks por figura vivos durante la transacción en curso.
type txState struct {
	store  *Store
	locked map[string]bool
	held   []*sync.Mutex
}

// lockFigure toma el mutex de la figura una sola vez por transacción.
func (t *txState) lockFigure(id string) {
	if t.locked[id] {
		return
	}
	m := t.store.figureLock(id)
	m.Lock()
	t.locked[id] = true
	t.held = append(t.held, m)
}

func (t *txState) release() {
	for i := len(t.held) - 1; i >= 0; i-- {
		t.held[i].Unlock()
	}
	t.held = nil
}
