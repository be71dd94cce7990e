package finledger

import (
	"testing"

	"github.com/nroux/finledger/date"
)

func sample() []Transaction {
	return []Transaction{
		tx("acc-1", "2024-01-05", -20, "COFFEE"),
		tx("acc-1", "2024-01-05", -30, "BOOKS"),
		tx("acc-1", "2024-02-01", 100, "REFUND"),
	}
}

func TestGroupBy_Daily(t *testing.T) {
	groups := GroupBy(sample(), date.Daily)
	if len(groups) != 2 {
		t.Fatalf("len = %d, want 2", len(groups))
	}
	if groups[0].Key != "2024-01-05" || groups[1].Key != "2024-02-01" {
		t.Fatalf("keys = %s, %s", groups[0].Key, groups[1].Key)
	}
	// Spend is negated so a day of expenses reads as a positive figure.
	if !groups[0].Spend.Get("EUR").Equal(M(50, "EUR")) {
		t.Errorf("spend on 2024-01-05 = %s, want 50", groups[0].Spend)
	}
	if len(groups[0].Transactions) != 2 {
		t.Errorf("transactions on 2024-01-05 = %d, want 2", len(groups[0].Transactions))
	}
	if !groups[1].Spend.Get("EUR").Equal(M(-100, "EUR")) {
		t.Errorf("spend on 2024-02-01 = %s, want -100 (pure income)", groups[1].Spend)
	}
}

func TestGroupBy_Monthly(t *testing.T) {
	groups := GroupBy(sample(), date.Monthly)
	if len(groups) != 2 {
		t.Fatalf("len = %d, want 2", len(groups))
	}
	if groups[0].Key != "2024-01" || groups[1].Key != "2024-02" {
		t.Fatalf("keys = %s, %s", groups[0].Key, groups[1].Key)
	}
	if !groups[0].Spend.Get("EUR").Equal(M(50, "EUR")) {
		t.Errorf("spend in 2024-01 = %s, want 50", groups[0].Spend)
	}
	if !groups[1].Spend.Get("EUR").Equal(M(-100, "EUR")) {
		t.Errorf("spend in 2024-02 = %s, want -100", groups[1].Spend)
	}
}

func TestGroupBy_MixedCurrencies(t *testing.T) {
	// A statement with a currency column can land foreign amounts next to the
	// default currency. Aggregating such a ledger must stay total: one figure
	// per currency, never a crash and never a cross-currency sum.
	s := testStore(t)
	rows := []CanonicalFields{
		{Date: date.MustParse("2024-01-05"), Amount: M(-20.50, "GBP"), Description: "LONDON HOTEL"},
		{Date: date.MustParse("2024-01-05"), Amount: M(-8, "EUR"), Description: "COFFEE"},
		{Date: date.MustParse("2024-01-31"), Amount: M(1850, "EUR"), Description: "ACME PAYROLL"},
	}
	if _, err := NewIngestor(s).Ingest("acc-1", rows, "csv"); err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	txs, err := s.Transactions()
	if err != nil {
		t.Fatal(err)
	}

	groups := GroupBy(txs, date.Daily)
	if len(groups) != 2 {
		t.Fatalf("len = %d, want 2", len(groups))
	}
	day := groups[0]
	if len(day.Spend) != 2 {
		t.Fatalf("spend currencies on 2024-01-05 = %s, want EUR and GBP", day.Spend)
	}
	if !day.Spend.Get("EUR").Equal(M(8, "EUR")) {
		t.Errorf("EUR spend = %s, want 8", day.Spend.Get("EUR"))
	}
	if !day.Spend.Get("GBP").Equal(M(20.50, "GBP")) {
		t.Errorf("GBP spend = %s, want 20.50", day.Spend.Get("GBP"))
	}

	if exp := Expenses(txs); !exp.Get("GBP").Equal(M(-20.50, "GBP")) || !exp.Get("EUR").Equal(M(-8, "EUR")) {
		t.Errorf("Expenses = %s", exp)
	}
	if inc := Income(txs); len(inc) != 1 || !inc.Get("EUR").Equal(M(1850, "EUR")) {
		t.Errorf("Income = %s, want 1850 EUR only", inc)
	}
}

func TestGroupBy_Empty(t *testing.T) {
	if groups := GroupBy(nil, date.Daily); len(groups) != 0 {
		t.Errorf("GroupBy(nil) = %v, want empty", groups)
	}
}

func TestGroupBy_Pure(t *testing.T) {
	txs := sample()
	a := GroupBy(txs, date.Monthly)
	b := GroupBy(txs, date.Monthly)
	if len(a) != len(b) {
		t.Fatal("two runs over the same input disagree")
	}
	for i := range a {
		if a[i].Key != b[i].Key || a[i].Spend.String() != b[i].Spend.String() {
			t.Errorf("group %d differs between runs", i)
		}
	}
}

func TestIncomeAndExpenses(t *testing.T) {
	txs := sample()
	if got := Income(txs); !got.Get("EUR").Equal(M(100, "EUR")) {
		t.Errorf("Income = %s, want 100", got)
	}
	if got := Expenses(txs); !got.Get("EUR").Equal(M(-50, "EUR")) {
		t.Errorf("Expenses = %s, want -50", got)
	}
}

func TestTotalBalance(t *testing.T) {
	accounts := []BankAccount{
		{AccountID: "acc-1", Balance: M(1250.75, "EUR")},
		{AccountID: "acc-2", Balance: M(-40.25, "EUR")},
	}
	if got := TotalBalance(accounts); !got.Get("EUR").Equal(M(1210.50, "EUR")) {
		t.Errorf("TotalBalance = %s, want 1210.50", got)
	}
	if got := TotalBalance(nil); len(got) != 0 {
		t.Errorf("TotalBalance(nil) = %s, want empty", got)
	}

	// Accounts in different currencies keep separate totals, sorted by code.
	mixed := TotalBalance([]BankAccount{
		{AccountID: "acc-3", Balance: M(500, "USD")},
		{AccountID: "acc-1", Balance: M(1000, "EUR")},
	})
	if len(mixed) != 2 || mixed[0].Currency() != "EUR" || mixed[1].Currency() != "USD" {
		t.Errorf("mixed TotalBalance = %s, want EUR then USD", mixed)
	}
}

func TestAmountsString(t *testing.T) {
	var none Amounts
	if got := none.String(); got != "-" {
		t.Errorf("empty = %q, want -", got)
	}
	one := Amounts{M(50, "EUR")}
	if got := one.String(); got != "€50.00" {
		t.Errorf("one = %q", got)
	}
}

func TestNewSummary(t *testing.T) {
	s := testStore(t)
	if err := s.SetUser(User{ID: "u-1", Name: "Ann"}); err != nil {
		t.Fatal(err)
	}
	if err := s.UpsertAccounts(BankAccount{AccountID: "acc-1", Name: "Checking", Balance: M(1000, "EUR")}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.InsertTransactions(sample()...); err != nil {
		t.Fatal(err)
	}

	summary, err := NewSummary(s)
	if err != nil {
		t.Fatalf("NewSummary: %v", err)
	}
	if summary.UserName != "Ann" {
		t.Errorf("UserName = %q", summary.UserName)
	}
	if summary.Count != 3 {
		t.Errorf("Count = %d, want 3", summary.Count)
	}
	if !summary.TotalBalance.Get("EUR").Equal(M(1000, "EUR")) {
		t.Errorf("TotalBalance = %s, want 1000", summary.TotalBalance)
	}
	if !summary.Income.Get("EUR").Equal(M(100, "EUR")) || !summary.Expenses.Get("EUR").Equal(M(-50, "EUR")) {
		t.Errorf("Income/Expenses = %s/%s", summary.Income, summary.Expenses)
	}
}
