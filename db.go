package finledger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DB owns the two mode-scoped stores of a deployment and the active-mode
// switch. Each mode has its own backing file and its own cache; switching
// modes re-points both and never merges data across them.
//
// DB carries no package-level state: tests can open several instances, real
// and demo side by side, without interference.
type DB struct {
	dir      string
	modePath string // persists the active mode across processes

	mu     sync.Mutex
	mode   Mode
	stores [2]*Store
}

// Option configures a DB at open time.
type Option func(*options)

type options struct {
	backupPath string
}

// WithBackup sets a backup snapshot path for the real mode. The current real
// snapshot is copied there before every mutating write; there is no rotation
// policy beyond overwrite.
func WithBackup(path string) Option {
	return func(o *options) { o.backupPath = path }
}

// Open prepares the ledger stores under dir. The snapshot files are named
// after their mode ("real.jsonl", "demo.jsonl") and are only created on
// first write.
func Open(dir string, opts ...Option) (*DB, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create ledger directory %q: %w", dir, err)
	}
	db := &DB{dir: dir, modePath: filepath.Join(dir, "mode")}
	db.stores[Real] = newStore(filepath.Join(dir, Real.String()+".jsonl"), Real, o.backupPath)
	db.stores[Demo] = newStore(filepath.Join(dir, Demo.String()+".jsonl"), Demo, "")

	// Restore the persisted active mode; a missing or unreadable mode file
	// falls back to real.
	if data, err := os.ReadFile(db.modePath); err == nil {
		if m, err := ParseMode(strings.TrimSpace(string(data))); err == nil {
			db.mode = m
		}
	}
	return db, nil
}

// Store returns the store for an explicit mode. Mutations against different
// modes are independent; only same-mode mutations serialize.
func (db *DB) Store(m Mode) *Store { return db.stores[m] }

// Active returns the store of the currently active mode. The returned store
// is fully switched: a caller holding it never observes a partial-mode read.
func (db *DB) Active() *Store {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.stores[db.mode]
}

// IsDemo reports whether demo mode is active.
func (db *DB) IsDemo() bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.mode == Demo
}

// EnableDemo seeds the demo store if it is empty and switches the active
// mode to demo. Seeding is the only operation allowed to replace a store's
// contents wholesale.
func (db *DB) EnableDemo() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	demo := db.stores[Demo]
	n, err := demo.Count()
	if err != nil {
		return err
	}
	if n == 0 {
		if err := SeedDemo(demo); err != nil {
			return fmt.Errorf("could not seed demo ledger: %w", err)
		}
	}
	return db.switchLocked(Demo)
}

// DisableDemo switches back to real mode. Demo data stays on disk, isolated.
func (db *DB) DisableDemo() error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.switchLocked(Real)
}

// switchLocked flips the active mode and persists it so the next process
// starts in the same mode. The caller must hold db.mu.
func (db *DB) switchLocked(m Mode) error {
	if err := os.WriteFile(db.modePath, []byte(m.String()+"\n"), 0644); err != nil {
		return fmt.Errorf("could not persist active mode: %w", err)
	}
	db.mode = m
	return nil
}
