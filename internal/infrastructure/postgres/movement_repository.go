package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/figures-ledger/internal/domain/entity"
	"github.com/jhoicas/figures-ledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación append-only del log de movimientos sobre
// PostgreSQL (usable con pool o tx). No expone UPDATE ni DELETE: el único
// borrado posible llega por cascada al eliminar la figura.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador del log. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create agrega el movimiento al log. seq lo asigna la BD (identity) y se
// devuelve al llamador; es el desempate de orden dentro del historial.
func (r *MovementRepo) Create(mov *entity.Movement) error {
	query := `
		INSERT INTO stock_movements (id, figure_id, kind, quantity, sale_price, moved_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING seq`
	err := r.q.QueryRow(context.Background(), query,
		mov.ID, mov.FigureID, mov.Kind, mov.Quantity, mov.SalePrice, mov.MovedAt,
	).Scan(&mov.Seq)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// ListByFigure historial completo en orden cronológico; seq desempata.
func (r *MovementRepo) ListByFigure(figureID string) ([]*entity.Movement, error) {
	return r.list(figureID, false)
}

// ListOutByFigure solo salidas (detalle de ventas), mismo orden.
func (r *MovementRepo) ListOutByFigure(figureID string) ([]*entity.Movement, error) {
	return r.list(figureID, true)
}

func (r *MovementRepo) list(figureID string, onlyOut bool) ([]*entity.Movement, error) {
	query := `
		SELECT id, seq, figure_id, kind, quantity, sale_price, moved_at
		FROM stock_movements
		WHERE figure_id = $1`
	if onlyOut {
		query += ` AND kind = 'OUT'`
	}
	query += ` ORDER BY moved_at, seq`

	rows, err := r.q.Query(context.Background(), query, figureID)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.Seq, &m.FigureID, &m.Kind, &m.Quantity, &m.SalePrice, &m.MovedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
