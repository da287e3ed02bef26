package terminal

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/shop-ledger/pkg/runtime/terminal/commands"
	"github.com/de-tools/shop-ledger/pkg/runtime/terminal/export"
)

// CLI represents the command-line interface
type CLI struct {
	source   *commands.SourceFlags
	reporter *export.Reporter
	logger   zerolog.Logger
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
	Logger *zerolog.Logger
	// OpenDB defaults to the pgx backed ledger database
	OpenDB commands.OpenDB
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	cli := &CLI{
		source:   commands.NewSourceFlags(opts.OpenDB),
		reporter: export.NewReporter(opts.Output),
		logger:   logger,
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.ExecuteContext(context.Background())
}

func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(cli.logger.WithContext(ctx))
}

func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ledger",
		Short:         "Repair shop ledger: ticket financials and reports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cli.source.Register(cmd)

	cmd.AddCommand(commands.NewReportCmd(cli.source, cli.reporter))
	cmd.AddCommand(commands.NewTicketCmd(cli.source, cli.reporter))
	cmd.AddCommand(commands.NewPriceCmd(cli.source, cli.reporter))
	cmd.AddCommand(commands.NewImportCmd(cli.source))

	return cmd
}
