package finledger

import (
	"github.com/nroux/finledger/date"
)

// Summary is the dashboard view over one mode's ledger: account balances plus
// all-time income and expense totals. It is computed on read, never persisted.
type Summary struct {
	Date         date.Date
	Mode         Mode
	UserName     string
	Accounts     []BankAccount
	TotalBalance Amounts
	Income       Amounts
	Expenses     Amounts
	Count        int
}

// NewSummary builds the dashboard summary for the store's current snapshot.
func NewSummary(s *Store) (*Summary, error) {
	accounts, err := s.Accounts()
	if err != nil {
		return nil, err
	}
	txs, err := s.Transactions()
	if err != nil {
		return nil, err
	}
	user, _, err := s.User()
	if err != nil {
		return nil, err
	}

	return &Summary{
		Date:         date.Today(),
		Mode:         s.Mode(),
		UserName:     user.Name,
		Accounts:     accounts,
		TotalBalance: TotalBalance(accounts),
		Income:       Income(txs),
		Expenses:     Expenses(txs),
		Count:        len(txs),
	}, nil
}
