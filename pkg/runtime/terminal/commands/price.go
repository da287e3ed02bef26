package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/shop-ledger/pkg/adapters"
	"github.com/de-tools/shop-ledger/pkg/runtime/terminal/export"
	"github.com/de-tools/shop-ledger/pkg/services/pricing"
)

type PriceCmd struct {
	source   *SourceFlags
	reporter *export.Reporter
	kind     string
	capacity string
	typeHint string
	format   string
}

func NewPriceCmd(source *SourceFlags, reporter *export.Reporter) *cobra.Command {
	pc := &PriceCmd{source: source, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Resolve a hardware component against the price catalog",
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.kind, "kind", "", "Component kind (ram or disk)")
	cmd.Flags().StringVar(&pc.capacity, "capacity", "", "Capacity, e.g. 16 or 512GB")
	cmd.Flags().StringVar(&pc.typeHint, "type", "", "Type hint, e.g. DDR4 or NVMe")
	cmd.Flags().StringVar(&pc.format, "format", export.FormatTable, "Output format (table or json)")

	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("capacity")

	return cmd
}

func (pc *PriceCmd) run(cmd *cobra.Command, _ []string) error {
	if err := export.ValidFormat(pc.format); err != nil {
		return err
	}

	kind, ok := adapters.ParsePriceCategory(pc.kind)
	if !ok {
		return fmt.Errorf("unsupported kind %q, expected ram or disk", pc.kind)
	}

	ctx := cmd.Context()
	src, closeFn, err := pc.source.Open(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	entries, err := src.ListPriceEntries(ctx)
	if err != nil {
		return fmt.Errorf("failed to load price catalog: %w", err)
	}

	price := pricing.NewCatalog(entries).Resolve(kind, pc.capacity, pc.typeHint)
	return pc.reporter.HandlePrice(kind, pc.capacity, pc.typeHint, price, pc.format)
}
