package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/nroux/finledger/config"
)

type headerFlags []string

func (h *headerFlags) String() string {
	return strings.Join(*h, ", ")
}

func (h *headerFlags) Set(value string) error {
	*h = append(*h, value)
	return nil
}

// loginCmd holds the flags for the 'login' subcommand.
type loginCmd struct {
	institution string
	headers     headerFlags
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "store an institution's session credentials" }
func (*loginCmd) Usage() string {
	return `fin login -i <institution> -H <header1> -H <header2> ...

  Stores the session headers of an authenticated bank session for use by
  'fin sync'. Designed to accept headers pasted from a browser's 'copy as
  curl'. The tokens are opaque: they are replayed on sync requests, never
  inspected.
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.institution, "i", "", "Institution id the session belongs to")
	f.Var(&c.headers, "H", "Header for the request (can be specified multiple times)")
}

func (c *loginCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.institution == "" || len(c.headers) == 0 {
		fmt.Fprintln(os.Stderr, "Error: -i <institution> and at least one -H flag are required.")
		return subcommands.ExitUsageError
	}

	sessionPath := config.SessionPath(c.institution)
	if err := os.WriteFile(sessionPath, []byte(strings.Join(c.headers, "\n")), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to save session: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Session credentials stored for %s.\n", c.institution)
	return subcommands.ExitSuccess
}
