package finledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Store is the durable, mode-scoped document store for one ledger file.
//
// The backing file holds the full document graph as a single JSONL snapshot.
// A deserialized snapshot is cached in memory after the first read and served
// until a mutation replaces it; mutations run under the store mutex:
// load, apply, atomic write (temp file then rename), cache refresh. The
// rename discipline guarantees concurrent readers observe either the old or
// the new complete snapshot, never a partial one.
type Store struct {
	path       string
	backupPath string // optional pre-write backup of the current file
	mode       Mode

	mu      sync.Mutex
	cache   *snapshot // guarded by mu; immutable once published
	version uint64    // write version, increments on every completed mutation
}

// newStore creates a store for the given snapshot file. The file may not
// exist yet; a missing file is an empty store, created on first write.
func newStore(path string, mode Mode, backupPath string) *Store {
	return &Store{path: path, mode: mode, backupPath: backupPath}
}

// Mode returns the mode this store belongs to.
func (s *Store) Mode() Mode { return s.mode }

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Version returns the current write version. It increases monotonically with
// every completed mutation and identifies the cached snapshot generation.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// loadLocked returns the current snapshot, reading the backing file on first
// use. The caller must hold s.mu.
func (s *Store) loadLocked() (*snapshot, error) {
	if s.cache != nil {
		return s.cache, nil
	}
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		// A missing backing file is an empty store, not an error.
		s.cache = newSnapshot()
		return s.cache, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open ledger file %q: %w", s.path, err)
	}
	defer f.Close()

	snap, err := decodeSnapshot(f)
	if err != nil {
		return nil, &StoreCorruptionError{Path: s.path, Err: err}
	}
	s.cache = snap
	return snap, nil
}

// snapshot returns the current snapshot for reading. The returned snapshot is
// immutable; readers may use it concurrently without holding the lock.
func (s *Store) snapshot() (*snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// writeLocked persists next atomically and publishes it as the new cache.
// The caller must hold s.mu. On any error the previous cache and file remain
// in place and the store reports zero side effects.
func (s *Store) writeLocked(next *snapshot) error {
	if s.backupPath != "" {
		if err := s.backupLocked(); err != nil {
			return err
		}
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create ledger directory %q: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("could not create temp ledger file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if err := encodeSnapshot(tmp, next); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not close temp ledger file: %w", err)
	}
	// Write-to-temp then rename: a crash mid-write never leaves a partial
	// snapshot at the canonical path.
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("could not replace ledger file %q: %w", s.path, err)
	}

	// Cache refresh happens in the same critical section as the write, so no
	// reader can observe a stale cache after this mutation returns.
	s.cache = next
	s.version++
	return nil
}

// backupLocked copies the current backing file to the backup path. A missing
// backing file means there is nothing to back up.
func (s *Store) backupLocked() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("could not read ledger file for backup: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.backupPath), 0755); err != nil {
		return fmt.Errorf("could not create backup directory: %w", err)
	}
	if err := os.WriteFile(s.backupPath, data, 0644); err != nil {
		return fmt.Errorf("could not write backup %q: %w", s.backupPath, err)
	}
	return nil
}

// Transactions returns all transactions in insertion order.
func (s *Store) Transactions() ([]Transaction, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.transactions, nil
}

// Transaction returns the transaction with the given id, if present.
func (s *Store) Transaction(id string) (Transaction, bool, error) {
	snap, err := s.snapshot()
	if err != nil {
		return Transaction{}, false, err
	}
	i, ok := snap.txIndex[id]
	if !ok {
		return Transaction{}, false, nil
	}
	return snap.transactions[i], true, nil
}

// AccountTransactions returns the transactions of one account, in insertion
// order. An account id unknown to the store yields an empty result; the store
// never fabricates a BankAccount for it.
func (s *Store) AccountTransactions(accountID string) ([]Transaction, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	var txs []Transaction
	for _, tx := range snap.transactions {
		if tx.AccountID == accountID {
			txs = append(txs, tx)
		}
	}
	return txs, nil
}

// Count returns the number of stored transactions.
func (s *Store) Count() (int, error) {
	snap, err := s.snapshot()
	if err != nil {
		return 0, err
	}
	return len(snap.transactions), nil
}

// InsertTransactions appends the genuinely new transactions and silently
// skips the ones whose id is already present. It returns the number actually
// added. Duplicate ids are the expected steady state of idempotent re-import,
// not an error.
func (s *Store) InsertTransactions(txs ...Transaction) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.loadLocked()
	if err != nil {
		return 0, err
	}
	next := snap.clone()
	added := 0
	for _, tx := range txs {
		if next.appendTransaction(tx) {
			added++
		}
	}
	if added == 0 {
		return 0, nil
	}
	if err := s.writeLocked(next); err != nil {
		return 0, err
	}
	return added, nil
}

// Accounts returns all bank accounts in insertion order.
func (s *Store) Accounts() ([]BankAccount, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.accounts, nil
}

// Account returns the bank account with the given id, if present.
func (s *Store) Account(accountID string) (BankAccount, bool, error) {
	snap, err := s.snapshot()
	if err != nil {
		return BankAccount{}, false, err
	}
	i, ok := snap.accountIndex[accountID]
	if !ok {
		return BankAccount{}, false, nil
	}
	return snap.accounts[i], true, nil
}

// UpsertAccounts inserts or refreshes bank accounts, keyed by account id.
func (s *Store) UpsertAccounts(accounts ...BankAccount) error {
	if len(accounts) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.loadLocked()
	if err != nil {
		return err
	}
	next := snap.clone()
	for _, a := range accounts {
		next.upsertAccount(a)
	}
	return s.writeLocked(next)
}

// User returns the ledger's user singleton, if set.
func (s *Store) User() (User, bool, error) {
	snap, err := s.snapshot()
	if err != nil {
		return User{}, false, err
	}
	if snap.user == nil {
		return User{}, false, nil
	}
	return *snap.user, true, nil
}

// SetUser sets the user singleton.
func (s *Store) SetUser(u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.loadLocked()
	if err != nil {
		return err
	}
	next := snap.clone()
	next.user = &u
	return s.writeLocked(next)
}

// Replace swaps the store's entire contents wholesale. Demo seeding is the
// only caller allowed to do this; every other write path is additive.
func (s *Store) Replace(user User, accounts []BankAccount, txs []Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Probe the current file first: seeding must not paper over corruption.
	if _, err := s.loadLocked(); err != nil {
		return err
	}
	next := newSnapshot()
	next.user = &user
	for _, a := range accounts {
		next.upsertAccount(a)
	}
	for _, tx := range txs {
		next.appendTransaction(tx)
	}
	return s.writeLocked(next)
}
