package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/nroux/finledger"
	"github.com/nroux/finledger/date"
	"github.com/nroux/finledger/renderer"
)

// periodicCmd is the shared implementation of the 'daily' and 'monthly'
// report subcommands.
type periodicCmd struct {
	period    date.Period
	accountID string
}

func (c *periodicCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.accountID, "a", "", "Restrict the report to one account id")
}

func (c *periodicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	store := db.Active()
	var txs []finledger.Transaction
	if c.accountID != "" {
		txs, err = store.AccountTransactions(c.accountID)
	} else {
		txs, err = store.Transactions()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	groups := finledger.GroupBy(txs, c.period)
	printMarkdown(renderer.GroupsMarkdown(c.period, groups))
	return subcommands.ExitSuccess
}

// dailyCmd reports spend grouped by calendar day.
type dailyCmd struct{ periodicCmd }

func (*dailyCmd) Name() string     { return "daily" }
func (*dailyCmd) Synopsis() string { return "display spend grouped by day" }
func (*dailyCmd) Usage() string {
	return `fin daily [-a <account-id>]

  Displays the active ledger's spend grouped by calendar day.
`
}

func (c *dailyCmd) SetFlags(f *flag.FlagSet) {
	c.period = date.Daily
	c.periodicCmd.SetFlags(f)
}

// monthlyCmd reports spend grouped by calendar month.
type monthlyCmd struct{ periodicCmd }

func (*monthlyCmd) Name() string     { return "monthly" }
func (*monthlyCmd) Synopsis() string { return "display spend grouped by month" }
func (*monthlyCmd) Usage() string {
	return `fin monthly [-a <account-id>]

  Displays the active ledger's spend grouped by calendar month.
`
}

func (c *monthlyCmd) SetFlags(f *flag.FlagSet) {
	c.period = date.Monthly
	c.periodicCmd.SetFlags(f)
}
