package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/shop-ledger/pkg/runtime/terminal/export"
	"github.com/de-tools/shop-ledger/pkg/services/report"
)

type ReportCmd struct {
	source   *SourceFlags
	reporter *export.Reporter
	format   string
}

func NewReportCmd(source *SourceFlags, reporter *export.Reporter) *cobra.Command {
	rc := &ReportCmd{source: source, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Aggregate stock, sales, tax risk and SLA figures",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.format, "format", export.FormatTable, "Output format (table or json)")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, _ []string) error {
	if err := export.ValidFormat(rc.format); err != nil {
		return err
	}

	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	cfg, settings, err := rc.source.Settings()
	if err != nil {
		return err
	}

	src, closeFn, err := rc.source.Open(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	tickets, err := src.ListTickets(ctx)
	if err != nil {
		return fmt.Errorf("failed to load tickets: %w", err)
	}
	entries, err := src.ListPriceEntries(ctx)
	if err != nil {
		return fmt.Errorf("failed to load price catalog: %w", err)
	}
	logger.Debug().Int("tickets", len(tickets)).Int("price_entries", len(entries)).Msg("Loaded ledger data")

	svc := report.NewService(settings, cfg.ServiceOptions()...)
	result, err := svc.Recompute(ctx, tickets, entries)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	return rc.reporter.HandleReport(result, rc.format)
}
