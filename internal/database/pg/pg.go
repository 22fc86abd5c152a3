package pg

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/ilyadubrovsky/tracking-attendance/internal/database"
)

//go:embed schema.sql
var schema string

func New(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.Connect: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pool.Ping: %w", err)
	}

	return pool, nil
}

// Migrate creates the tables when they do not exist yet.
func Migrate(ctx context.Context, db database.PG) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("db.Exec schema: %w", err)
	}

	return nil
}
