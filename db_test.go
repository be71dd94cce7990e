package finledger

import (
	"testing"
)

func TestDB_ModeIsolation(t *testing.T) {
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	real := db.Store(Real)
	demo := db.Store(Demo)

	realTx := tx("acc-real", "2024-01-05", -20, "REAL COFFEE")
	demoTx := tx("acc-demo", "2024-01-05", -30, "DEMO COFFEE")
	if _, err := real.InsertTransactions(realTx); err != nil {
		t.Fatal(err)
	}
	if _, err := demo.InsertTransactions(demoTx); err != nil {
		t.Fatal(err)
	}

	// Any sequence of mode switches must never leak data across modes.
	for i := 0; i < 3; i++ {
		if err := db.EnableDemo(); err != nil {
			t.Fatal(err)
		}
		if !db.IsDemo() {
			t.Fatal("IsDemo = false after EnableDemo")
		}
		for _, got := range mustTxs(t, db.Active()) {
			if got.AccountID == "acc-real" {
				t.Fatal("real transaction visible in demo mode")
			}
		}

		if err := db.DisableDemo(); err != nil {
			t.Fatal(err)
		}
		if db.IsDemo() {
			t.Fatal("IsDemo = true after DisableDemo")
		}
		for _, got := range mustTxs(t, db.Active()) {
			if got.AccountID == "acc-demo" {
				t.Fatal("demo transaction visible in real mode")
			}
		}
	}
}

func mustTxs(t *testing.T, s *Store) []Transaction {
	t.Helper()
	txs, err := s.Transactions()
	if err != nil {
		t.Fatal(err)
	}
	return txs
}

func TestDB_EnableDemoSeedsOnce(t *testing.T) {
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := db.EnableDemo(); err != nil {
		t.Fatalf("EnableDemo: %v", err)
	}

	demo := db.Store(Demo)
	n, err := demo.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n == 0 {
		t.Fatal("demo store empty after seeding")
	}
	accounts, err := demo.Accounts()
	if err != nil || len(accounts) == 0 {
		t.Fatalf("demo accounts = %v, %v", accounts, err)
	}
	if _, ok, _ := demo.User(); !ok {
		t.Error("demo user not seeded")
	}

	// Re-enabling must not reseed a populated demo store.
	if err := db.EnableDemo(); err != nil {
		t.Fatal(err)
	}
	if again, _ := demo.Count(); again != n {
		t.Errorf("Count after second EnableDemo = %d, want %d", again, n)
	}

	// Seeded transactions only reference seeded accounts.
	known := make(map[string]bool, len(accounts))
	for _, a := range accounts {
		known[a.AccountID] = true
	}
	for _, tx := range mustTxs(t, demo) {
		if !known[tx.AccountID] {
			t.Errorf("seeded transaction references unknown account %s", tx.AccountID)
		}
	}
}

func TestDB_ModePersistsAcrossOpens(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := db.EnableDemo(); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !reopened.IsDemo() {
		t.Error("active mode lost across Open calls")
	}
}

func TestDB_ParallelInstances(t *testing.T) {
	// Two deployments side by side: no shared package state.
	a, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := a.EnableDemo(); err != nil {
		t.Fatal(err)
	}
	if b.IsDemo() {
		t.Error("enabling demo on one DB leaked into another")
	}
}
