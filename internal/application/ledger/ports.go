package ledger

import (
	"context"

	"github.com/jhoicas/figures-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una unidad atómica de la BD, pasando
// repositorios atados a esa transacción. Combinado con FigureRepository.GetForUpdate
// garantiza la exclusión por figura del ciclo chequeo-y-append: dos movimientos
// sobre la misma figura nunca se intercalan entre el chequeo de stock y el append.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		figRepo repository.FigureRepository,
		movRepo repository.MovementRepository,
	) error) error
}
