// Package store defines where tickets and the price catalog are read from.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/de-tools/shop-ledger/pkg/adapters"
	"github.com/de-tools/shop-ledger/pkg/models/api"
	"github.com/de-tools/shop-ledger/pkg/models/domain"
)

var ErrNotFound = errors.New("ticket not found")

// Source is a read-only view of the ticket store and the price catalog.
type Source interface {
	ListTickets(ctx context.Context) ([]domain.Ticket, error)
	GetTicket(ctx context.Context, id string) (*domain.Ticket, error)
	ListPriceEntries(ctx context.Context) ([]domain.PriceEntry, error)
}

// Document is a raw ticket document keyed by its store id.
type Document struct {
	ID  string
	Raw json.RawMessage
}

// DecodeTicket maps a raw document to a ticket. The document key wins over
// an id field embedded in the document.
func DecodeTicket(doc Document) (domain.Ticket, error) {
	var t api.Ticket
	if err := json.Unmarshal(doc.Raw, &t); err != nil {
		return domain.Ticket{}, fmt.Errorf("decode ticket %s: %w", doc.ID, err)
	}
	if doc.ID != "" {
		t.ID = doc.ID
	}
	return adapters.MapTicketApiToDomain(t), nil
}

// MatchesID accepts either the store id or the human ticket number.
func MatchesID(t domain.Ticket, id string) bool {
	id = strings.TrimSpace(id)
	return id != "" && (t.ID == id || strings.EqualFold(t.TicketID, id))
}
