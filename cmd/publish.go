package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
	"github.com/nroux/finledger"
	"github.com/nroux/finledger/date"
	"github.com/nroux/finledger/renderer"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// publishCmd holds the flags for the 'publish' subcommand.
type publishCmd struct {
	outputDir string
	period    string
}

func (*publishCmd) Name() string     { return "publish" }
func (*publishCmd) Synopsis() string { return "write the dashboard reports to markdown and HTML files" }
func (*publishCmd) Usage() string {
	return `fin publish [-o <dir>] [-p <period>]

  Generates the summary, daily and monthly reports for the active ledger
  and saves each one as a markdown file plus a static HTML rendering.
  With -p (daily or monthly), publishes only that periodic report.
`
}

func (c *publishCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outputDir, "o", "reports", "Root directory for the generated reports")
	f.StringVar(&c.period, "p", "", "Publish a single periodic report (daily or monthly)")
}

func (c *publishCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	summary, err := finledger.NewSummary(store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	txs, err := store.Transactions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var reports map[string]string
	if c.period != "" {
		p, err := date.ParsePeriod(c.period)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		reports = map[string]string{
			p.String(): renderer.GroupsMarkdown(p, finledger.GroupBy(txs, p)),
		}
	} else {
		reports = map[string]string{
			"summary": renderer.SummaryMarkdown(summary),
			"daily":   renderer.GroupsMarkdown(date.Daily, finledger.GroupBy(txs, date.Daily)),
			"monthly": renderer.GroupsMarkdown(date.Monthly, finledger.GroupBy(txs, date.Monthly)),
		}
	}

	if err := os.MkdirAll(c.outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create output directory: %v\n", err)
		return subcommands.ExitFailure
	}

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	for name, report := range reports {
		mdPath := filepath.Join(c.outputDir, name+".md")
		if err := os.WriteFile(mdPath, []byte(report), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", mdPath, err)
			return subcommands.ExitFailure
		}

		var html bytes.Buffer
		if err := md.Convert([]byte(report), &html); err != nil {
			fmt.Fprintf(os.Stderr, "failed to render %s: %v\n", name, err)
			return subcommands.ExitFailure
		}
		htmlPath := filepath.Join(c.outputDir, name+".html")
		if err := os.WriteFile(htmlPath, html.Bytes(), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", htmlPath, err)
			return subcommands.ExitFailure
		}
	}

	fmt.Printf("Published %d reports to %s.\n", len(reports), c.outputDir)
	return subcommands.ExitSuccess
}
