package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/nroux/finledger"
)

type accountsCmd struct{}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list the accounts known to the active ledger" }
func (*accountsCmd) Usage() string {
	return `fin accounts

  Lists the accounts of the active ledger with their reported balances and
  the total balance across accounts.
`
}

func (*accountsCmd) SetFlags(*flag.FlagSet) {}

func (c *accountsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	accounts, err := db.Active().Accounts()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(accounts) == 0 {
		fmt.Println("No accounts yet. Run 'fin sync' or 'fin demo'.")
		return subcommands.ExitSuccess
	}

	for _, a := range accounts {
		fmt.Printf("%-36s  %-20s  %-12s  %s\n", a.AccountID, a.Name, a.Institution, a.Balance)
	}
	fmt.Printf("Total: %s\n", finledger.TotalBalance(accounts))
	return subcommands.ExitSuccess
}
