// Package cmd implements the fin subcommands.
package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/nroux/finledger"
	"github.com/nroux/finledger/bank"
	"github.com/nroux/finledger/bank/openbank"
	"github.com/nroux/finledger/config"
	"github.com/nroux/finledger/logger"
	"github.com/rs/zerolog"
)

var (
	configPath = flag.String("config", "", "Path to the config file (TOML)")
	storeDir   = flag.String("store-dir", "", "Override the ledger directory from the config")
	Verbose    = flag.Bool("v", false, "Enable debug logging")
)

// Commands returns all fin subcommands, in registration order.
func Commands() []subcommands.Command {
	return []subcommands.Command{
		&loginCmd{},
		&importCmd{},
		&syncCmd{},
		&demoCmd{},
		&summaryCmd{},
		&dailyCmd{},
		&monthlyCmd{},
		&accountsCmd{},
		&userCmd{},
		&publishCmd{},
	}
}

// loadConfig reads the configuration and applies command line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}
	if *storeDir != "" {
		cfg.StoreDir = *storeDir
	}
	return cfg, nil
}

// openDB opens the ledger database described by the configuration.
func openDB(cfg *config.Config) (*finledger.DB, error) {
	var opts []finledger.Option
	if cfg.BackupPath != "" {
		opts = append(opts, finledger.WithBackup(cfg.BackupPath))
	}
	return finledger.Open(cfg.StoreDir, opts...)
}

// newRegistry wires one openbank adapter per configured institution.
func newRegistry(cfg *config.Config) *bank.Registry {
	reg := bank.NewRegistry()
	for id, inst := range cfg.Banks {
		reg.Register(id, openbank.New(id, inst.BaseURL))
	}
	return reg
}

// newLogger returns the logger configured by the global flags.
func newLogger() zerolog.Logger {
	log := logger.New()
	if *Verbose {
		return log.Level(zerolog.DebugLevel)
	}
	return log.Level(zerolog.InfoLevel)
}

// newContext returns the base context carrying the configured logger.
func newContext(ctx context.Context) context.Context {
	return logger.WithContext(ctx, newLogger())
}

// printMarkdown renders markdown for the terminal. If rendering fails the
// raw markdown is still usable output.
func printMarkdown(markdown string) {
	out, err := glamour.Render(markdown, "auto")
	if err != nil {
		fmt.Println(markdown)
		return
	}
	fmt.Print(out)
}
