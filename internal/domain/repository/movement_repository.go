package repository

import "github.com/jhoicas/figures-ledger/internal/domain/entity"

// MovementRepository puerto del log de movimientos. Append-only: Create es la
// única operación de escritura; no existe Update ni Delete de movimientos
// individuales (el borrado llega solo por cascada al eliminar la figura).
type MovementRepository interface {
	// Create agrega el movimiento al log y asigna su Seq definitivo.
	Create(mov *entity.Movement) error
	// ListByFigure historial completo en orden cronológico ascendente;
	// empates de timestamp se desempatan por secuencia de inserción.
	ListByFigure(figureID string) ([]*entity.Movement, error)
	// ListOutByFigure subconjunto OUT del historial, mismo orden.
	ListOutByFigure(figureID string) ([]*entity.Movement, error)
}
