package finledger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/nroux/finledger/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// recordKind discriminates the lines of a snapshot file.
type recordKind string

const (
	kindUser        recordKind = "user"
	kindAccount     recordKind = "account"
	kindTransaction recordKind = "transaction"
)

// snapshot is the full in-memory document graph of one mode: the user
// singleton and the account and transaction collections, in insertion order.
// A snapshot published to the store cache is never mutated again; mutations
// clone first.
type snapshot struct {
	user         *User
	accounts     []BankAccount
	accountIndex map[string]int
	transactions []Transaction
	txIndex      map[string]int // transaction id -> position
}

func newSnapshot() *snapshot {
	return &snapshot{
		accountIndex: make(map[string]int),
		txIndex:      make(map[string]int),
	}
}

func (s *snapshot) clone() *snapshot {
	c := newSnapshot()
	if s.user != nil {
		u := *s.user
		c.user = &u
	}
	c.accounts = append(c.accounts, s.accounts...)
	for id, i := range s.accountIndex {
		c.accountIndex[id] = i
	}
	c.transactions = append(c.transactions, s.transactions...)
	for id, i := range s.txIndex {
		c.txIndex[id] = i
	}
	return c
}

func (s *snapshot) upsertAccount(a BankAccount) {
	if i, ok := s.accountIndex[a.AccountID]; ok {
		s.accounts[i] = a
		return
	}
	s.accountIndex[a.AccountID] = len(s.accounts)
	s.accounts = append(s.accounts, a)
}

// appendTransaction appends tx unless its id is already present.
// It reports whether the transaction was actually added.
func (s *snapshot) appendTransaction(tx Transaction) bool {
	if _, ok := s.txIndex[tx.ID]; ok {
		return false
	}
	s.txIndex[tx.ID] = len(s.transactions)
	s.transactions = append(s.transactions, tx)
	return true
}

// jrecord is the serialized form of one snapshot line. A single struct covers
// the three kinds; encoding relies on omitempty, decoding on the kind switch.
type jrecord struct {
	Kind        recordKind      `json:"kind"`
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name,omitempty"`
	AccountID   string          `json:"accountId,omitempty"`
	Institution string          `json:"institution,omitempty"`
	Date        date.Date       `json:"date,omitzero"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency,omitempty"`
	Description string          `json:"description,omitempty"`
	Reference   string          `json:"reference,omitempty"`
	Source      string          `json:"source,omitempty"`
}

// decodeSnapshot reads a JSONL snapshot: one record per line, discriminated
// by its "kind" property. Any unreadable line is an error; the caller treats
// it as corruption.
func decodeSnapshot(r io.Reader) (*snapshot, error) {
	snap := newSnapshot()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue // Skip empty lines
		}
		var rec jrecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("could not decode line %q: %w", string(line), err)
		}
		switch rec.Kind {
		case kindUser:
			snap.user = &User{ID: rec.ID, Name: rec.Name}
		case kindAccount:
			snap.upsertAccount(BankAccount{
				AccountID:   rec.AccountID,
				Name:        rec.Name,
				Institution: rec.Institution,
				Balance:     M(rec.Amount, rec.Currency),
			})
		case kindTransaction:
			snap.appendTransaction(Transaction{
				ID: rec.ID,
				CanonicalFields: CanonicalFields{
					AccountID:   rec.AccountID,
					Date:        rec.Date,
					Amount:      M(rec.Amount, rec.Currency),
					Description: rec.Description,
					Reference:   rec.Reference,
				},
				Source: rec.Source,
			})
		default:
			return nil, fmt.Errorf("unknown record kind %q in line %q", rec.Kind, string(line))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading snapshot: %w", err)
	}
	return snap, nil
}

// encodeSnapshot writes the snapshot in JSONL form: user first, then
// accounts, then transactions in insertion order.
func encodeSnapshot(w io.Writer, snap *snapshot) error {
	write := func(rec jrecord) error {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("could not encode %s record: %w", rec.Kind, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("could not write %s record: %w", rec.Kind, err)
		}
		return nil
	}

	if snap.user != nil {
		if err := write(jrecord{Kind: kindUser, ID: snap.user.ID, Name: snap.user.Name}); err != nil {
			return err
		}
	}
	for _, a := range snap.accounts {
		rec := jrecord{
			Kind:        kindAccount,
			AccountID:   a.AccountID,
			Name:        a.Name,
			Institution: a.Institution,
			Amount:      a.Balance.Decimal(),
			Currency:    a.Balance.Currency(),
		}
		if err := write(rec); err != nil {
			return err
		}
	}
	for _, tx := range snap.transactions {
		rec := jrecord{
			Kind:        kindTransaction,
			ID:          tx.ID,
			AccountID:   tx.AccountID,
			Date:        tx.Date,
			Amount:      tx.Amount.Decimal(),
			Currency:    tx.Amount.Currency(),
			Description: tx.Description,
			Reference:   tx.Reference,
			Source:      tx.Source,
		}
		if err := write(rec); err != nil {
			return err
		}
	}
	return nil
}
