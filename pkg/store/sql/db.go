package sql

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const TicketsTableSchema = `
	CREATE TABLE IF NOT EXISTS tickets (
		id TEXT PRIMARY KEY,
		doc JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
`

const PriceEntriesTableSchema = `
	CREATE TABLE IF NOT EXISTS price_entries (
		position INTEGER PRIMARY KEY,
		category TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT '',
		capacity TEXT NOT NULL DEFAULT '',
		price NUMERIC NOT NULL DEFAULT 0
	);
`

var bootQueries = []string{
	TicketsTableSchema,
	PriceEntriesTableSchema,
}

type Settings struct {
	DSN string
}

// NewDB opens a Postgres connection through the pgx driver and creates the
// ledger tables when missing.
func NewDB(ctx context.Context, settings Settings) (*sql.DB, error) {
	if settings.DSN == "" {
		return nil, fmt.Errorf("database DSN is required")
	}

	db, err := sql.Open("pgx", settings.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func Migrate(ctx context.Context, db *sql.DB) error {
	for _, query := range bootQueries {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("bootstrap schema: %w", err)
		}
	}
	return nil
}
