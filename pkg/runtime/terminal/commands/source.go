package commands

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/shop-ledger/pkg/services/config"
	"github.com/de-tools/shop-ledger/pkg/services/report"
	"github.com/de-tools/shop-ledger/pkg/store"
	"github.com/de-tools/shop-ledger/pkg/store/file"
	sqlstore "github.com/de-tools/shop-ledger/pkg/store/sql"
)

// OpenDB opens the ledger database. Tests replace it with sqlmock.
type OpenDB func(ctx context.Context, dsn string) (*sql.DB, error)

func DefaultOpenDB(ctx context.Context, dsn string) (*sql.DB, error) {
	return sqlstore.NewDB(ctx, sqlstore.Settings{DSN: dsn})
}

// SourceFlags are shared by every command that reads tickets or prices.
type SourceFlags struct {
	TicketsPath string
	CatalogPath string
	DSN         string
	ConfigPath  string
	SLAPath     string

	openDB OpenDB
}

func NewSourceFlags(openDB OpenDB) *SourceFlags {
	if openDB == nil {
		openDB = DefaultOpenDB
	}
	return &SourceFlags{openDB: openDB}
}

func (f *SourceFlags) Register(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&f.TicketsPath, "tickets", "", "Path to the tickets JSON export")
	flags.StringVar(&f.CatalogPath, "catalog", "", "Path to the price catalog JSON")
	flags.StringVar(&f.DSN, "dsn", "", "Postgres DSN; overrides --tickets and --catalog")
	flags.StringVar(&f.ConfigPath, "config", "", "Path to the ledger settings (yaml, json or toml)")
	flags.StringVar(&f.SLAPath, "sla", "", "Path to the SLA profile (ini)")
}

// Open returns the configured source and a function releasing it.
func (f *SourceFlags) Open(ctx context.Context) (store.Source, func(), error) {
	if f.DSN == "" {
		return file.NewStore(file.Settings{
			TicketsPath: f.TicketsPath,
			CatalogPath: f.CatalogPath,
		}), func() {}, nil
	}

	db, err := f.openDB(ctx, f.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	s, err := sqlstore.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return s, func() { _ = db.Close() }, nil
}

// Settings loads the ledger settings and applies the SLA profile on top.
func (f *SourceFlags) Settings() (*config.Settings, report.Settings, error) {
	cfg, err := config.LoadSettings(f.ConfigPath)
	if err != nil {
		return nil, report.Settings{}, err
	}

	settings := cfg.ReportSettings()
	if f.SLAPath != "" {
		limits, err := config.LoadSLAProfile(f.SLAPath)
		if err != nil {
			return nil, report.Settings{}, err
		}
		settings.SLALimits = limits
	}
	return cfg, settings, nil
}
