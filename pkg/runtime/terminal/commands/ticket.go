package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/shop-ledger/pkg/runtime/terminal/export"
	"github.com/de-tools/shop-ledger/pkg/services/financials"
	"github.com/de-tools/shop-ledger/pkg/services/pricing"
	"github.com/de-tools/shop-ledger/pkg/store"
)

type TicketCmd struct {
	source   *SourceFlags
	reporter *export.Reporter
	format   string
}

func NewTicketCmd(source *SourceFlags, reporter *export.Reporter) *cobra.Command {
	tc := &TicketCmd{source: source, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "ticket <id>",
		Short: "Show the financial breakdown of one ticket",
		Args:  cobra.ExactArgs(1),
		RunE:  tc.run,
	}

	cmd.Flags().StringVar(&tc.format, "format", export.FormatTable, "Output format (table or json)")

	return cmd
}

func (tc *TicketCmd) run(cmd *cobra.Command, args []string) error {
	if err := export.ValidFormat(tc.format); err != nil {
		return err
	}

	ctx := cmd.Context()
	_, settings, err := tc.source.Settings()
	if err != nil {
		return err
	}

	src, closeFn, err := tc.source.Open(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	ticket, err := src.GetTicket(ctx, args[0])
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("ticket %q not found", args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to load ticket: %w", err)
	}

	entries, err := src.ListPriceEntries(ctx)
	if err != nil {
		return fmt.Errorf("failed to load price catalog: %w", err)
	}

	calc := financials.NewCalculator(settings.Financials, pricing.NewCatalog(entries))
	return tc.reporter.HandleTicket(*ticket, calc.Derive(*ticket), tc.format)
}
