package db

import (
	_ "embed"

	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// Migrate aplica el esquema al arranque. Todas las sentencias usan
// IF NOT EXISTS, así que es seguro ejecutarlo en cada inicio.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schemaSQL)
	return err
}
