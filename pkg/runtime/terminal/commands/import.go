package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/shop-ledger/pkg/store"
	"github.com/de-tools/shop-ledger/pkg/store/file"
	sqlstore "github.com/de-tools/shop-ledger/pkg/store/sql"
)

type ImportCmd struct {
	source *SourceFlags
}

func NewImportCmd(source *SourceFlags) *cobra.Command {
	ic := &ImportCmd{source: source}
	return &cobra.Command{
		Use:   "import",
		Short: "Load JSON exports of tickets and catalog into the database",
		RunE:  ic.run,
	}
}

func (ic *ImportCmd) run(cmd *cobra.Command, _ []string) error {
	if ic.source.DSN == "" || ic.source.TicketsPath == "" {
		return fmt.Errorf("import requires --dsn and --tickets")
	}

	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	exports := file.NewStore(file.Settings{
		TicketsPath: ic.source.TicketsPath,
		CatalogPath: ic.source.CatalogPath,
	})
	raw, err := exports.Documents(ctx)
	if err != nil {
		return err
	}
	entries, err := exports.ListPriceEntries(ctx)
	if err != nil {
		return err
	}

	docs := make([]store.Document, 0, len(raw))
	for i, doc := range raw {
		if doc.ID == "" {
			t, err := store.DecodeTicket(doc)
			if err != nil || t.ID == "" {
				logger.Warn().Int("index", i).Msg("Skipping ticket document without id")
				continue
			}
			doc.ID = t.ID
		}
		docs = append(docs, doc)
	}

	db, err := ic.source.openDB(ctx, ic.source.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	s, err := sqlstore.NewStore(db)
	if err != nil {
		return err
	}
	if err := s.Import(ctx, docs, entries); err != nil {
		return fmt.Errorf("failed to import: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tickets and %d price entries\n", len(docs), len(entries))
	return nil
}
