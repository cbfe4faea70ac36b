package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/figures-ledger/internal/domain"
	"github.com/jhoicas/figures-ledger/internal/domain/entity"
	"github.com/jhoicas/figures-ledger/internal/domain/repository"
)

var _ repository.FigureRepository = (*FigureRepo)(nil)

const figureColumns = `id, manufacturer, brand, character, model_name, ip, cost_price, image_url, created_at, updated_at`

// FigureRepo implementación del puerto FigureRepository sobre PostgreSQL (usable con pool o tx).
type FigureRepo struct {
	q Querier
}

// NewFigureRepository construye el adaptador de catálogo. Pasar pool o tx (Querier).
func NewFigureRepository(q Querier) *FigureRepo {
	return &FigureRepo{q: q}
}

func scanFigure(row pgx.Row) (*entity.Figure, error) {
	var f entity.Figure
	err := row.Scan(
		&f.ID, &f.Manufacturer, &f.Brand, &f.Character, &f.ModelName,
		&f.IP, &f.CostPrice, &f.ImageURL, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan figure: %w", err)
	}
	return &f, nil
}

// Create persiste una nueva figura.
func (r *FigureRepo) Create(fig *entity.Figure) error {
	query := `
		INSERT INTO figures (id, manufacturer, brand, character, model_name, ip, cost_price, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		fig.ID, fig.Manufacturer, fig.Brand, fig.Character, fig.ModelName,
		fig.IP, fig.CostPrice, fig.ImageURL, fig.CreatedAt, fig.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert figure: %w", err)
	}
	return nil
}

// GetByID obtiene una figura por ID. Devuelve (nil, nil) si no existe.
func (r *FigureRepo) GetByID(id string) (*entity.Figure, error) {
	query := `SELECT ` + figureColumns + ` FROM figures WHERE id = $1`
	return scanFigure(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene la figura y bloquea su fila (SELECT FOR UPDATE) hasta
// el fin de la transacción en curso. Serializa chequeo-y-append por figura.
func (r *FigureRepo) GetForUpdate(id string) (*entity.Figure, error) {
	query := `SELECT ` + figureColumns + ` FROM figures WHERE id = $1 FOR UPDATE`
	return scanFigure(r.q.QueryRow(context.Background(), query, id))
}

// GetByIdentity busca una figura idéntica (atributos descriptivos + costo).
func (r *FigureRepo) GetByIdentity(manufacturer, brand, character, modelName string, costPrice decimal.Decimal) (*entity.Figure, error) {
	query := `
		SELECT ` + figureColumns + ` FROM figures
		WHERE manufacturer = $1 AND brand = $2 AND character = $3 AND model_name = $4 AND cost_price = $5
		LIMIT 1`
	return scanFigure(r.q.QueryRow(context.Background(), query,
		manufacturer, brand, character, modelName, costPrice))
}

// Update actualiza atributos descriptivos, costo e imagen. Nunca toca el ledger.
func (r *FigureRepo) Update(fig *entity.Figure) error {
	query := `
		UPDATE figures
		SET manufacturer = $2, brand = $3, character = $4, model_name = $5,
		    ip = $6, cost_price = $7, image_url = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		fig.ID, fig.Manufacturer, fig.Brand, fig.Character, fig.ModelName,
		fig.IP, fig.CostPrice, fig.ImageURL, fig.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update figure: %w", err)
	}
	return nil
}

// Delete elimina una figura; la FK con ON DELETE CASCADE arrastra su historial.
func (r *FigureRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM figures WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete figure: %w", err)
	}
	return nil
}

// List figuras que cumplen el filtro exacto (AND entre campos presentes).
func (r *FigureRepo) List(filter repository.FigureFilter) ([]*entity.Figure, error) {
	query := `SELECT ` + figureColumns + ` FROM figures WHERE 1=1`
	args := []any{}
	add := func(col, val string) {
		if val != "" {
			args = append(args, val)
			query += fmt.Sprintf(" AND %s = $%d", col, len(args))
		}
	}
	add("manufacturer", filter.Manufacturer)
	add("brand", filter.Brand)
	add("character", filter.Character)
	add("model_name", filter.ModelName)
	add("ip", filter.IP)
	query += ` ORDER BY created_at DESC, id`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list figures: %w", err)
	}
	defer rows.Close()
	var list []*entity.Figure
	for rows.Next() {
		var f entity.Figure
		if err := rows.Scan(&f.ID, &f.Manufacturer, &f.Brand, &f.Character, &f.ModelName,
			&f.IP, &f.CostPrice, &f.ImageURL, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan figure: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}

// DistinctValues valores no vacíos y ordenados de un atributo facetable.
// attr ya viene validado por el caso de uso; se interpola solo contra la
// lista cerrada de columnas facetables.
func (r *FigureRepo) DistinctValues(attr string) ([]string, error) {
	if !entity.IsFacet(attr) {
		return nil, domain.ErrInvalidInput
	}
	query := fmt.Sprintf(
		`SELECT DISTINCT %s FROM figures WHERE %s <> '' ORDER BY %s`, attr, attr, attr)
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", attr, err)
	}
	defer rows.Close()
	values := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan facet value: %w", err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
