package financials

import (
	"context"

	"github.com/de-tools/shop-ledger/pkg/models/domain"
	"golang.org/x/sync/errgroup"
)

// DeriveAll maps every ticket to its snapshot, preserving order.
func DeriveAll(tickets []domain.Ticket, c *Calculator) []domain.FinancialSnapshot {
	out := make([]domain.FinancialSnapshot, len(tickets))
	for i, t := range tickets {
		out[i] = c.Derive(t)
	}
	return out
}

// DeriveParallel is DeriveAll spread over workers goroutines. Derivation
// touches no shared state, so each goroutine writes only its own slot.
// The only error is ctx cancellation.
func DeriveParallel(ctx context.Context, tickets []domain.Ticket, c *Calculator, workers int) ([]domain.FinancialSnapshot, error) {
	if workers <= 1 || len(tickets) < 2 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return DeriveAll(tickets, c), nil
	}

	out := make([]domain.FinancialSnapshot, len(tickets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range tickets {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = c.Derive(tickets[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
