package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/de-tools/shop-ledger/pkg/runtime/terminal"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.WarnLevel).
		With().Timestamp().Logger()
	if os.Getenv("LEDGER_DEBUG") != "" {
		logger = logger.Level(zerolog.DebugLevel)
	}

	cli := terminal.NewCLI(terminal.Options{
		Output: os.Stdout,
		Logger: &logger,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
