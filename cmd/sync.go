package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/nroux/finledger/bank"
)

// syncCmd holds the flags for the 'sync' subcommand.
type syncCmd struct {
	institution string
}

func (*syncCmd) Name() string     { return "sync" }
func (*syncCmd) Synopsis() string { return "fetch accounts and transactions from a bank session" }
func (*syncCmd) Usage() string {
	return `fin sync -i <institution>

  Resolves the stored session credentials and the registered adapter for the
  institution, fetches its accounts and transactions, and ingests them into
  the active ledger with the same dedup semantics as a CSV import.
`
}

func (c *syncCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.institution, "i", "", "Institution id to sync")
}

func (c *syncCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.institution == "" {
		fmt.Fprintln(os.Stderr, "Error: -i <institution> is required.")
		return subcommands.ExitUsageError
	}

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
	creds, err := cfg.Credentials(c.institution)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v (run 'fin login -i %s' first)\n", err, c.institution)
		return subcommands.ExitFailure
	}

	res, err := bank.Sync(newContext(ctx), newRegistry(cfg), c.institution, creds, db.Active())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Synced %s at %s: %d accounts updated, %d new transactions.\n",
		res.Institution, res.Timestamp.Format("15:04:05"), res.AccountsUpdated, res.TransactionsAdded)
	return subcommands.ExitSuccess
}
