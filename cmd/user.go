package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/google/uuid"
	"github.com/nroux/finledger"
)

// userCmd holds the flags for the 'user' subcommand.
type userCmd struct {
	name string
}

func (*userCmd) Name() string     { return "user" }
func (*userCmd) Synopsis() string { return "show or rename the ledger's user" }
func (*userCmd) Usage() string {
	return `fin user [-n <name>]

  Without flags, shows the current user. With -n, renames the user,
  creating it on first use. The user id is generated once, then fixed.
`
}

func (c *userCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "New name for the user")
}

func (c *userCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	user, ok, err := store.User()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.name == "" {
		if !ok {
			fmt.Println("No user yet. Set one with 'fin user -n <name>'.")
			return subcommands.ExitSuccess
		}
		fmt.Printf("%s (%s)\n", user.Name, user.ID)
		return subcommands.ExitSuccess
	}

	if !ok {
		user = finledger.User{ID: uuid.NewString()}
	}
	user.Name = c.name
	if err := store.SetUser(user); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("User renamed to %s.\n", user.Name)
	return subcommands.ExitSuccess
}
