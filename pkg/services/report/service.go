package report

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/zeebo/xxh3"

	"github.com/de-tools/shop-ledger/pkg/models/domain"
	"github.com/de-tools/shop-ledger/pkg/services/financials"
	"github.com/de-tools/shop-ledger/pkg/services/pricing"
)

type Option func(*Service)

// WithWorkers sets the number of goroutines used to derive snapshots.
func WithWorkers(n int) Option {
	return func(s *Service) {
		s.workers = n
	}
}

// WithMaxAge bounds how long a report is reused for identical input.
// Zero disables caching.
func WithMaxAge(d time.Duration) Option {
	return func(s *Service) {
		s.maxAge = d
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// Service recomputes reports on demand and reuses the last one while the
// input is unchanged.
type Service struct {
	settings Settings
	workers  int
	maxAge   time.Duration
	now      func() time.Time

	mu       sync.Mutex
	lastHash uint64
	lastAt   time.Time
	last     *domain.AggregateReport
}

func NewService(settings Settings, opts ...Option) *Service {
	s := &Service{
		settings: settings,
		workers:  4,
		maxAge:   time.Minute,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Recompute derives and folds the whole ticket set against the catalog.
func (s *Service) Recompute(ctx context.Context, tickets []domain.Ticket, entries []domain.PriceEntry) (*domain.AggregateReport, error) {
	logger := zerolog.Ctx(ctx)
	now := s.now()

	hash, err := inputHash(tickets, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to hash report input: %w", err)
	}

	s.mu.Lock()
	if s.last != nil && s.maxAge > 0 && hash == s.lastHash && now.Sub(s.lastAt) < s.maxAge {
		cached := s.last
		s.mu.Unlock()
		logger.Debug().Uint64("hash", hash).Msg("Reusing cached report")
		return cached, nil
	}
	s.mu.Unlock()

	catalog := pricing.NewCatalog(entries)
	calc := financials.NewCalculator(s.settings.Financials, catalog)
	logUnresolved(logger, tickets, catalog)

	snapshots, err := financials.DeriveParallel(ctx, tickets, calc, s.workers)
	if err != nil {
		return nil, fmt.Errorf("failed to derive financials: %w", err)
	}

	settings := s.settings
	settings.Now = now
	report := Fold(tickets, snapshots, settings)

	s.mu.Lock()
	s.lastHash = hash
	s.lastAt = now
	s.last = report
	s.mu.Unlock()

	logger.Info().
		Int("tickets", len(tickets)).
		Int("price_entries", catalog.Len()).
		Int("findings", len(report.Findings)).
		Msg("Report recomputed")

	return report, nil
}

// Snapshot derives a single ticket against the catalog.
func (s *Service) Snapshot(ticket domain.Ticket, entries []domain.PriceEntry) domain.FinancialSnapshot {
	calc := financials.NewCalculator(s.settings.Financials, pricing.NewCatalog(entries))
	return calc.Derive(ticket)
}

func inputHash(tickets []domain.Ticket, entries []domain.PriceEntry) (uint64, error) {
	h := xxh3.New()
	enc := json.NewEncoder(h)
	if err := enc.Encode(tickets); err != nil {
		return 0, err
	}
	if err := enc.Encode(entries); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}

// logUnresolved reports hardware the catalog could not price. The engine
// silently treats those components as zero.
func logUnresolved(logger *zerolog.Logger, tickets []domain.Ticket, catalog *pricing.Catalog) {
	var ram, disk int
	for _, t := range tickets {
		ram += pricing.Unresolved(catalog, domain.PriceCategoryRAM, t.RAM)
		disk += pricing.Unresolved(catalog, domain.PriceCategoryDisk, t.Disk)
	}
	if ram+disk == 0 {
		return
	}
	logger.Warn().
		Int("ram", ram).
		Int("disk", disk).
		Msg("Hardware components without catalog price")
}
