// Package refresh keeps the report service warm by recomputing it on a
// fixed interval, so dashboard requests hit the cached report.
package refresh

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/de-tools/shop-ledger/pkg/services/report"
	"github.com/de-tools/shop-ledger/pkg/store"
)

type RunnerConfig struct {
	Interval time.Duration
}

type RunnerProgress struct {
	Runs      int64
	Failures  int64
	Tickets   int
	Findings  int
	LastRunAt time.Time
}

type Runner struct {
	source   store.Source
	reports  *report.Service
	config   RunnerConfig
	done     chan struct{}
	progress chan RunnerProgress
}

func NewRunner(source store.Source, reports *report.Service, config RunnerConfig) *Runner {
	if config.Interval <= 0 {
		config.Interval = 30 * time.Second
	}
	return &Runner{
		source:   source,
		reports:  reports,
		config:   config,
		done:     make(chan struct{}),
		progress: make(chan RunnerProgress, 100),
	}
}

func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Progress reports every run. Updates are dropped when nobody reads them.
func (r *Runner) Progress() <-chan RunnerProgress {
	return r.progress
}

// Run recomputes once immediately, then on every tick until ctx is done.
func (r *Runner) Run(ctx context.Context) {
	logger := zerolog.Ctx(ctx).With().Str("component", "report_refresh").Logger()
	defer close(r.done)
	defer close(r.progress)

	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()

	var state RunnerProgress
	for {
		r.runOnce(logger.WithContext(ctx), &state)

		select {
		case r.progress <- state:
		default:
		}

		select {
		case <-ctx.Done():
			logger.Info().Int64("runs", state.Runs).Msg("Report refresh stopped")
			return
		case <-ticker.C:
		}
	}
}

func (r *Runner) runOnce(ctx context.Context, state *RunnerProgress) {
	logger := zerolog.Ctx(ctx)
	state.Runs++
	state.LastRunAt = time.Now()

	tickets, err := r.source.ListTickets(ctx)
	if err != nil {
		state.Failures++
		logger.Error().Err(err).Msg("failed to list tickets")
		return
	}
	entries, err := r.source.ListPriceEntries(ctx)
	if err != nil {
		state.Failures++
		logger.Error().Err(err).Msg("failed to list price entries")
		return
	}

	result, err := r.reports.Recompute(ctx, tickets, entries)
	if err != nil {
		state.Failures++
		logger.Error().Err(err).Msg("failed to recompute report")
		return
	}

	state.Tickets = result.TicketCount
	state.Findings = len(result.Findings)
}
