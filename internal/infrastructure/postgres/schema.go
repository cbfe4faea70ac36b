package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Esquema mínimo del servicio. seq (columna identity) da el orden total de inserción
// por el que se desempatan timestamps iguales dentro del historial de una figura.
// ON DELETE CASCADE: la figura y su ledger son una sola unidad de ciclo de vida.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS figures (
	id            uuid PRIMARY KEY,
	manufacturer  text NOT NULL,
	brand         text NOT NULL,
	character     text NOT NULL,
	model_name    text NOT NULL,
	ip            varchar(120) NOT NULL DEFAULT '',
	cost_price    numeric(10,2) NOT NULL CHECK (cost_price >= 0),
	image_url     text NOT NULL DEFAULT '',
	created_at    timestamptz NOT NULL,
	updated_at    timestamptz NOT NULL
);

CREATE TABLE IF NOT EXISTS stock_movements (
	id          uuid PRIMARY KEY,
	seq         bigint GENERATED ALWAYS AS IDENTITY,
	figure_id   uuid NOT NULL REFERENCES figures(id) ON DELETE CASCADE,
	kind        varchar(3) NOT NULL CHECK (kind IN ('IN','OUT')),
	quantity    bigint NOT NULL CHECK (quantity > 0),
	sale_price  numeric(10,2) NOT NULL DEFAULT 0 CHECK (sale_price >= 0),
	moved_at    timestamptz NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_stock_movements_figure_seq
	ON stock_movements (figure_id, seq);
`

// EnsureSchema crea las tablas si no existen (arranque idempotente).
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
