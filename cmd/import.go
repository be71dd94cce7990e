package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/nroux/finledger"
	"github.com/nroux/finledger/normalize"
)

// importCmd holds the flags for the 'import' subcommand.
type importCmd struct {
	accountID string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import transactions from a CSV statement" }
func (*importCmd) Usage() string {
	return `fin import -a <account-id> <file.csv>

  Normalizes the statement, deduplicates against the active ledger and
  appends only genuinely new transactions. Importing the same file twice
  is a no-op.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.accountID, "a", "", "Target account id for the imported transactions")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.accountID == "" || f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: -a <account-id> and exactly one CSV file are required.")
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

	file, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	store := db.Active()
	res, rowErrs, err := normalize.Import(file, c.accountID, finledger.NewIngestor(store))
	for _, re := range rowErrs {
		fmt.Fprintf(os.Stderr, "skipped %v\n", re)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	log := newLogger()
	log.Info().
		Str("mode", store.Mode().String()).
		Int("accepted", res.Accepted).
		Int("duplicates", res.Duplicates).
		Int("malformed", len(rowErrs)).
		Msg("import complete")
	fmt.Printf("Imported %d new transactions (%d duplicates skipped).\n", res.Accepted, res.Duplicates)
	return subcommands.ExitSuccess
}
