package finledger

import (
	"errors"
	"testing"
)

func TestIngest_Idempotent(t *testing.T) {
	s := testStore(t)
	ing := NewIngestor(s)

	rows := []CanonicalFields{
		fields("", "2024-01-05", -20, "COFFEE", ""),
		fields("", "2024-01-06", -30, "BOOKS", ""),
		fields("", "2024-02-01", 100, "REFUND", "REF-1"),
	}

	first, err := ing.Ingest("acc-1", rows, "csv")
	if err != nil {
		t.Fatalf("first ingest: %v", err)
	}
	if first.Accepted != 3 || first.Duplicates != 0 {
		t.Fatalf("first ingest = %+v, want 3 accepted", first)
	}

	// Re-uploading the same file must be a no-op.
	second, err := ing.Ingest("acc-1", rows, "csv")
	if err != nil {
		t.Fatalf("second ingest: %v", err)
	}
	if second.Accepted != 0 || second.Duplicates != 3 {
		t.Errorf("second ingest = %+v, want 0 accepted, 3 duplicates", second)
	}
	if n, _ := s.Count(); n != 3 {
		t.Errorf("Count = %d, want 3", n)
	}
}

func TestIngest_DedupAcrossSources(t *testing.T) {
	s := testStore(t)
	ing := NewIngestor(s)

	row := fields("", "2024-01-05", -20, "GREENFIELD GROCERS", "POS-123")
	if _, err := ing.Ingest("acc-1", []CanonicalFields{row}, "csv"); err != nil {
		t.Fatal(err)
	}

	// The same event arriving via sync must be recognized as a duplicate.
	res, err := ing.Ingest("acc-1", []CanonicalFields{row}, "demobank")
	if err != nil {
		t.Fatal(err)
	}
	if res.Accepted != 0 || res.Duplicates != 1 {
		t.Errorf("cross-source ingest = %+v, want pure duplicate", res)
	}

	txs, err := s.Transactions()
	if err != nil {
		t.Fatal(err)
	}
	if len(txs) != 1 {
		t.Fatalf("len = %d, want 1", len(txs))
	}
	if txs[0].Source != "csv" {
		t.Errorf("Source = %q, want the original %q", txs[0].Source, "csv")
	}
}

func TestIngest_InBatchDuplicates(t *testing.T) {
	s := testStore(t)
	ing := NewIngestor(s)

	row := fields("", "2024-01-05", -20, "COFFEE", "")
	res, err := ing.Ingest("acc-1", []CanonicalFields{row, row, row}, "csv")
	if err != nil {
		t.Fatal(err)
	}
	if res.Accepted != 1 || res.Duplicates != 2 {
		t.Errorf("result = %+v, want 1 accepted, 2 duplicates", res)
	}
}

func TestIngest_ValidationAborts(t *testing.T) {
	s := testStore(t)
	ing := NewIngestor(s)

	rows := []CanonicalFields{
		fields("", "2024-01-05", -20, "COFFEE", ""),
		{}, // no date, no amount
		fields("", "2024-01-06", -30, "BOOKS", ""),
	}
	_, err := ing.Ingest("acc-1", rows, "csv")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Ingest = %v, want ValidationError", err)
	}
	// The whole batch is rejected: valid rows before the bad one included.
	if n, _ := s.Count(); n != 0 {
		t.Errorf("Count = %d after failed ingest, want 0", n)
	}
}

func TestIngest_ForcesAccountID(t *testing.T) {
	s := testStore(t)
	ing := NewIngestor(s)

	// The caller-supplied account wins over anything set on the rows.
	row := fields("acc-spoofed", "2024-01-05", -20, "COFFEE", "")
	if _, err := ing.Ingest("acc-1", []CanonicalFields{row}, "csv"); err != nil {
		t.Fatal(err)
	}
	txs, _ := s.Transactions()
	if len(txs) != 1 || txs[0].AccountID != "acc-1" {
		t.Errorf("AccountID = %q, want acc-1", txs[0].AccountID)
	}
}
