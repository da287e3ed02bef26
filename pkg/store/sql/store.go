package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/de-tools/shop-ledger/pkg/models/domain"
	"github.com/de-tools/shop-ledger/pkg/store"
)

// Store keeps ticket documents as JSONB and the catalog as ordered rows.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &Store{db: db}, nil
}

func (s *Store) ListTickets(ctx context.Context) ([]domain.Ticket, error) {
	logger := zerolog.Ctx(ctx)

	rows, err := s.db.QueryContext(ctx, `SELECT id, doc FROM tickets ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query tickets: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close tickets query rows")
		}
	}(rows)

	var tickets []domain.Ticket
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		doc := store.Document{ID: id, Raw: raw}
		t, err := store.DecodeTicket(doc)
		if err != nil {
			logger.Warn().Err(err).Str("ticket_id", doc.ID).Msg("Skipping malformed ticket document")
			continue
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tickets: %w", err)
	}
	return tickets, nil
}

// GetTicket looks a ticket up by store id, then by its ticketId field.
func (s *Store) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	var (
		docID string
		raw   []byte
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, doc FROM tickets
		WHERE id = $1 OR doc->>'ticketId' = $1
		ORDER BY (id = $1) DESC
		LIMIT 1`, id).Scan(&docID, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query ticket %s: %w", id, err)
	}

	t, err := store.DecodeTicket(store.Document{ID: docID, Raw: raw})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListPriceEntries keeps catalog order, first entry wins on duplicates.
func (s *Store) ListPriceEntries(ctx context.Context) ([]domain.PriceEntry, error) {
	logger := zerolog.Ctx(ctx)

	rows, err := s.db.QueryContext(ctx, `
		SELECT category, type, capacity, price
		FROM price_entries
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query price entries: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close price entries query rows")
		}
	}(rows)

	var entries []domain.PriceEntry
	for rows.Next() {
		var (
			category, typ, capacity string
			price                   float64
		)
		if err := rows.Scan(&category, &typ, &capacity, &price); err != nil {
			return nil, fmt.Errorf("scan price entry: %w", err)
		}
		entries = append(entries, domain.PriceEntry{
			Category: domain.PriceCategory(category),
			Type:     typ,
			Capacity: capacity,
			Price:    price,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate price entries: %w", err)
	}
	return entries, nil
}

// UpsertDocuments writes raw ticket documents, replacing existing ids.
// Documents without id are rejected.
func (s *Store) UpsertDocuments(ctx context.Context, docs []store.Document) error {
	if len(docs) == 0 {
		return nil
	}

	stmt, err := conn(ctx, s.db).PrepareContext(ctx, `
		INSERT INTO tickets (id, doc, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, doc := range docs {
		if doc.ID == "" {
			return fmt.Errorf("insert ticket: document id is required")
		}
		if _, err := stmt.ExecContext(ctx, doc.ID, []byte(doc.Raw)); err != nil {
			return fmt.Errorf("insert ticket %s: %w", doc.ID, err)
		}
	}
	return nil
}

// ReplacePriceEntries swaps the whole catalog, preserving entry order.
func (s *Store) ReplacePriceEntries(ctx context.Context, entries []domain.PriceEntry) error {
	c := conn(ctx, s.db)
	if _, err := c.ExecContext(ctx, `DELETE FROM price_entries`); err != nil {
		return fmt.Errorf("clear price entries: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}

	stmt, err := c.PrepareContext(ctx, `
		INSERT INTO price_entries (position, category, type, capacity, price)
		VALUES ($1, $2, $3, $4, $5)`)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.ExecContext(ctx, i, string(e.Category), e.Type, e.Capacity, e.Price); err != nil {
			return fmt.Errorf("insert price entry: %w", err)
		}
	}
	return nil
}

// Import loads documents and catalog in one transaction.
func (s *Store) Import(ctx context.Context, docs []store.Document, entries []domain.PriceEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	ctxWithTx := WithTransaction(ctx, tx)

	if err := s.UpsertDocuments(ctxWithTx, docs); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := s.ReplacePriceEntries(ctxWithTx, entries); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}
