// Package renderer turns ledger reports into markdown for the terminal and
// for static publication. It holds no state and never touches the store.
package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/nroux/finledger"
	"github.com/nroux/finledger/date"
)

// SummaryMarkdown renders the dashboard summary: per-account balances plus
// all-time income and expense totals.
func SummaryMarkdown(s *finledger.Summary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	title := fmt.Sprintf("Ledger Summary on %s", s.Date)
	if s.Mode == finledger.Demo {
		title += " (demo)"
	}
	doc.H1(title)
	if s.UserName != "" {
		doc.PlainText(fmt.Sprintf("User: %s", s.UserName))
	}

	rows := make([][]string, 0, len(s.Accounts))
	for _, a := range s.Accounts {
		rows = append(rows, []string{a.Name, a.Institution, a.Balance.String()})
	}
	doc.H2("Accounts")
	doc.Table(md.TableSet{
		Header: []string{"Account", "Institution", "Balance"},
		Rows:   rows,
	})
	doc.PlainText(fmt.Sprintf("Total Balance: %s", s.TotalBalance))

	doc.H2("Activity")
	doc.Table(md.TableSet{
		Header: []string{"Transactions", "Income", "Expenses"},
		Rows: [][]string{{
			fmt.Sprintf("%d", s.Count),
			s.Income.String(),
			s.Expenses.String(),
		}},
	})

	return doc.String()
}

// GroupsMarkdown renders period groups as a spend table, one row per period.
func GroupsMarkdown(p date.Period, groups []finledger.Group) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Spend by %s", p.Name()))

	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, []string{
			g.Key,
			fmt.Sprintf("%d", len(g.Transactions)),
			g.Spend.String(),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{capitalize(p.Name()), "Transactions", "Spend"},
		Rows:   rows,
	})

	return doc.String()
}

// TransactionsMarkdown renders a flat transaction listing, oldest first.
func TransactionsMarkdown(title string, txs []finledger.Transaction) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(title)
	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, []string{
			tx.Date.String(),
			tx.Description,
			tx.Amount.SignedString(),
			tx.Source,
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Date", "Description", "Amount", "Source"},
		Rows:   rows,
	})

	return doc.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
