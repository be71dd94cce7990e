package finledger

import (
	"sort"
	"strings"

	"github.com/nroux/finledger/date"
)

// Amounts is a set of per-currency totals, one Money per currency, ordered by
// currency code. Ledgers are allowed to mix currencies (a statement may carry
// a currency column, adapters report per-transaction currencies), and with no
// exchange rates available the totals stay separate rather than being summed
// across currencies.
type Amounts []Money

// add accumulates m into the total of its currency.
func (a Amounts) add(m Money) Amounts {
	for i := range a {
		if a[i].Currency() == m.Currency() {
			a[i] = a[i].Add(m)
			return a
		}
	}
	return append(a, m)
}

func (a Amounts) neg() Amounts {
	for i := range a {
		a[i] = a[i].Neg()
	}
	return a
}

func (a Amounts) sorted() Amounts {
	sort.Slice(a, func(i, j int) bool { return a[i].Currency() < a[j].Currency() })
	return a
}

// Get returns the total for one currency, zero if the currency is absent.
func (a Amounts) Get(currency string) Money {
	for _, m := range a {
		if m.Currency() == currency {
			return m
		}
	}
	return M(0, currency)
}

// String formats the totals, one per currency. An empty set is "-".
func (a Amounts) String() string {
	if len(a) == 0 {
		return "-"
	}
	parts := make([]string, len(a))
	for i, m := range a {
		parts[i] = m.String()
	}
	return strings.Join(parts, ", ")
}

// Group is one aggregation bucket: all transactions of a calendar period and
// their spend figure.
type Group struct {
	Key          string // canonical period key, e.g. "2024-01-05" or "2024-01"
	Transactions []Transaction
	Spend        Amounts // negated totals, so expense-negative surfaces positive
}

// GroupBy buckets transactions by calendar period and returns the groups
// ordered by period key. It is a pure function: re-running over the same
// input always yields the same output.
func GroupBy(txs []Transaction, p date.Period) []Group {
	buckets := make(map[string]*Group)
	for _, tx := range txs {
		key := p.Key(tx.Date)
		g, ok := buckets[key]
		if !ok {
			g = &Group{Key: key}
			buckets[key] = g
		}
		g.Transactions = append(g.Transactions, tx)
		g.Spend = g.Spend.add(tx.Amount)
	}

	groups := make([]Group, 0, len(buckets))
	for _, g := range buckets {
		g.Spend = g.Spend.neg().sorted()
		groups = append(groups, *g)
	}
	// Period keys are zero-padded ISO prefixes, so the lexical order is the
	// chronological order.
	sort.Slice(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
	return groups
}

// Income sums the positive amounts of the transaction set, per currency.
func Income(txs []Transaction) Amounts {
	var total Amounts
	for _, tx := range txs {
		if tx.Amount.IsPositive() {
			total = total.add(tx.Amount)
		}
	}
	return total.sorted()
}

// Expenses sums the negative amounts of the transaction set, per currency.
func Expenses(txs []Transaction) Amounts {
	var total Amounts
	for _, tx := range txs {
		if tx.Amount.IsNegative() {
			total = total.add(tx.Amount)
		}
	}
	return total.sorted()
}

// TotalBalance sums the reported account balances, per currency. Balances come
// from the accounts, not from transaction summation: transaction history may
// be partial.
func TotalBalance(accounts []BankAccount) Amounts {
	var total Amounts
	for _, a := range accounts {
		total = total.add(a.Balance)
	}
	return total.sorted()
}
