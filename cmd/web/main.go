package main

import (
	"context"
	"fmt"
	"net"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/shop-ledger/pkg/server"
	"github.com/de-tools/shop-ledger/pkg/services/config"
	"github.com/de-tools/shop-ledger/pkg/services/refresh"
	"github.com/de-tools/shop-ledger/pkg/services/report"
	"github.com/de-tools/shop-ledger/pkg/store"
	"github.com/de-tools/shop-ledger/pkg/store/file"
	sqlstore "github.com/de-tools/shop-ledger/pkg/store/sql"
)

var (
	cfgPath     string
	slaPath     string
	ticketsPath string
	catalogPath string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for the shop ledger",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to the ledger settings (yaml, json or toml)")
	rootCmd.Flags().StringVar(&slaPath, "sla", "", "Path to the SLA profile (ini)")
	rootCmd.Flags().StringVar(&ticketsPath, "tickets", "", "Tickets JSON export, used when LEDGER_DSN is not set")
	rootCmd.Flags().StringVar(&catalogPath, "catalog", "", "Price catalog JSON, used when LEDGER_DSN is not set")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.LoadSettings(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	settings := cfg.ReportSettings()
	if slaPath != "" {
		limits, err := config.LoadSLAProfile(slaPath)
		if err != nil {
			return fmt.Errorf("failed to load SLA profile: %w", err)
		}
		settings.SLALimits = limits
	}

	var source store.Source
	if dsn := os.Getenv("LEDGER_DSN"); dsn != "" {
		db, err := sqlstore.NewDB(ctx, sqlstore.Settings{DSN: dsn})
		if err != nil {
			return fmt.Errorf("failed to connect to ledger database: %w", err)
		}
		defer db.Close()

		source, err = sqlstore.NewStore(db)
		if err != nil {
			return fmt.Errorf("failed to create ticket store: %w", err)
		}
		logger.Info().Msg("Reading tickets from database")
	} else {
		if ticketsPath == "" {
			return fmt.Errorf("either LEDGER_DSN or --tickets is required")
		}
		source = file.NewStore(file.Settings{TicketsPath: ticketsPath, CatalogPath: catalogPath})
		logger.Info().Msgf("Reading tickets from `%s`", ticketsPath)
	}

	for area, limit := range settings.SLALimits {
		logger.Debug().Str("area", area).Dur("limit", limit).Msg("SLA limit")
	}

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		return fmt.Errorf("missing SERVER_HOST or SERVER_PORT in environment")
	}

	reports := report.NewService(settings, cfg.ServiceOptions()...)

	refreshCtx, cancel := context.WithCancel(ctx)
	runner := refresh.NewRunner(source, reports, refresh.RunnerConfig{Interval: cfg.RefreshInterval})
	go runner.Run(refreshCtx)
	defer func() {
		cancel()
		<-runner.Done()
	}()

	web := server.NewWebAPI(server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			Source:  source,
			Reports: reports,
			Logger:  logger,
		},
	})

	return web.Start()
}
