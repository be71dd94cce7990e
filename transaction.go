package finledger

import (
	"github.com/nroux/finledger/date"
)

// CanonicalFields is the normalized, source-agnostic representation of a
// transaction event, prior to id assignment. Both the CSV normalizer and the
// bank adapters produce this shape; the Ingestor owns turning it into a
// stored Transaction.
type CanonicalFields struct {
	AccountID   string
	Date        date.Date
	Amount      Money // signed, negative = expense
	Description string
	Reference   string // source-provided external reference, may be empty
}

// Validate reports whether the fields are complete enough to identify a
// real-world transaction event.
func (f CanonicalFields) Validate() error {
	if f.AccountID == "" {
		return &ValidationError{Msg: "missing account id"}
	}
	if f.Date.IsZero() {
		return &ValidationError{Msg: "missing date"}
	}
	return nil
}

// Transaction is a single ledger entry. It is immutable once stored: there is
// no update path, and deletion never happens in normal operation.
type Transaction struct {
	ID string // content-derived, see TransactionID
	CanonicalFields
	Source string // origin of the record: "csv" or an institution id
}

// BankAccount is an account known to the ledger, created or refreshed by a
// sync cycle or registered manually.
type BankAccount struct {
	AccountID   string
	Name        string
	Institution string
	Balance     Money // current balance as reported by the source
}

// User is the singleton owner of a ledger. Its id is opaque: generated once,
// then fixed.
type User struct {
	ID   string
	Name string
}
