package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// demoCmd holds the flags for the 'demo' subcommand.
type demoCmd struct {
	off    bool
	status bool
}

func (*demoCmd) Name() string     { return "demo" }
func (*demoCmd) Synopsis() string { return "switch between demo and real data" }
func (*demoCmd) Usage() string {
	return `fin demo [-off] [-status]

  Enables demo mode, seeding the demo ledger with sample data if it is
  empty. Demo and real data never share storage. -off switches back to the
  real ledger; -status reports the active mode.
`
}

func (c *demoCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.off, "off", false, "Switch back to the real ledger")
	f.BoolVar(&c.status, "status", false, "Report the active mode without switching")
}

func (c *demoCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	db, err := openDB(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	switch {
	case c.status:
		if db.IsDemo() {
			fmt.Println("Demo mode is on.")
		} else {
			fmt.Println("Demo mode is off.")
		}
	case c.off:
		if err := db.DisableDemo(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println("Demo mode disabled, back to the real ledger.")
	default:
		if err := db.EnableDemo(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println("Demo mode enabled.")
	}
	return subcommands.ExitSuccess
}
