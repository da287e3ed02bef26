package file

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog"

	"github.com/de-tools/shop-ledger/pkg/adapters"
	"github.com/de-tools/shop-ledger/pkg/models/api"
	"github.com/de-tools/shop-ledger/pkg/models/domain"
	"github.com/de-tools/shop-ledger/pkg/store"
)

type Settings struct {
	TicketsPath string
	CatalogPath string
}

// Store reads JSON exports of the ticket collection and the price catalog.
// Files are read on every call so a long running host sees new exports.
type Store struct {
	settings Settings
}

// NewStore accepts an empty tickets path for catalog-only use.
func NewStore(settings Settings) *Store {
	return &Store{settings: settings}
}

// Documents returns the raw ticket documents. The export can be either an
// array of documents or an object keyed by document id.
func (s *Store) Documents(_ context.Context) ([]store.Document, error) {
	if s.settings.TicketsPath == "" {
		return nil, fmt.Errorf("tickets path is not set")
	}
	data, err := os.ReadFile(s.settings.TicketsPath)
	if err != nil {
		return nil, fmt.Errorf("read tickets file: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '{' {
		var byID map[string]json.RawMessage
		if err := json.Unmarshal(data, &byID); err != nil {
			return nil, fmt.Errorf("parse tickets file: %w", err)
		}
		ids := make([]string, 0, len(byID))
		for id := range byID {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		docs := make([]store.Document, 0, len(ids))
		for _, id := range ids {
			docs = append(docs, store.Document{ID: id, Raw: byID[id]})
		}
		return docs, nil
	}

	var list []json.RawMessage
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse tickets file: %w", err)
	}
	docs := make([]store.Document, 0, len(list))
	for _, raw := range list {
		docs = append(docs, store.Document{Raw: raw})
	}
	return docs, nil
}

func (s *Store) ListTickets(ctx context.Context) ([]domain.Ticket, error) {
	logger := zerolog.Ctx(ctx)

	docs, err := s.Documents(ctx)
	if err != nil {
		return nil, err
	}

	tickets := make([]domain.Ticket, 0, len(docs))
	for i, doc := range docs {
		t, err := store.DecodeTicket(doc)
		if err != nil {
			logger.Warn().Err(err).Int("index", i).Msg("Skipping malformed ticket document")
			continue
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}

func (s *Store) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	tickets, err := s.ListTickets(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tickets {
		if store.MatchesID(tickets[i], id) {
			return &tickets[i], nil
		}
	}
	return nil, store.ErrNotFound
}

// ListPriceEntries returns an empty catalog when no catalog file is set.
func (s *Store) ListPriceEntries(_ context.Context) ([]domain.PriceEntry, error) {
	if s.settings.CatalogPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(s.settings.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var entries []api.PriceEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}
	return adapters.MapPriceEntriesApiToDomain(entries), nil
}
