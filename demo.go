package finledger

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/nroux/finledger/date"
)

// demoSource marks records produced by demo seeding.
const demoSource = "demo"

// demoMerchants are the recurring expenses of the generated ledger, with a
// typical amount each. Actual amounts jitter around them.
var demoMerchants = []struct {
	desc   string
	amount float64
}{
	{"GREENFIELD GROCERS", -62.40},
	{"CITY TRANSIT CARD TOP-UP", -25.00},
	{"CAFE MIRABELLE", -8.90},
	{"NORDWIND ENERGY", -85.00},
	{"STREAMBOX SUBSCRIPTION", -12.99},
	{"CORNER PHARMACY", -19.30},
	{"BOOKS & BEANS", -23.50},
}

// SeedDemo fills the store with a generated sample ledger: one user, two
// accounts and six months of transactions ending in the current month. The
// generator is pseudo-random with a fixed seed, so re-seeding an emptied demo
// store produces the same shape of data (ids still differ through uuid).
func SeedDemo(s *Store) error {
	rng := rand.New(rand.NewSource(42))

	user := User{ID: uuid.NewString(), Name: "Demo User"}

	checking := BankAccount{
		AccountID:   uuid.NewString(),
		Name:        "Everyday Checking",
		Institution: "demobank",
		Balance:     M(2412.57, "EUR"),
	}
	savings := BankAccount{
		AccountID:   uuid.NewString(),
		Name:        "Rainy Day Savings",
		Institution: "demobank",
		Balance:     M(10250.00, "EUR"),
	}

	today := date.Today()
	firstMonth := date.New(today.Year(), today.Month(), 1).AddMonths(-5)

	var txs []Transaction
	add := func(f CanonicalFields) {
		txs = append(txs, Transaction{ID: TransactionID(f), CanonicalFields: f, Source: demoSource})
	}

	for m := 0; m < 6; m++ {
		month := firstMonth.AddMonths(m)

		// Salary on the 1st, rent on the 3rd, a monthly sweep to savings.
		add(CanonicalFields{
			AccountID:   checking.AccountID,
			Date:        month,
			Amount:      M(3100.00, "EUR"),
			Description: "ACME CORP SALARY",
			Reference:   fmt.Sprintf("SAL-%s", date.Monthly.Key(month)),
		})
		add(CanonicalFields{
			AccountID:   checking.AccountID,
			Date:        month.Add(2),
			Amount:      M(-1150.00, "EUR"),
			Description: "LANDLORD RENT",
			Reference:   fmt.Sprintf("RENT-%s", date.Monthly.Key(month)),
		})
		add(CanonicalFields{
			AccountID:   savings.AccountID,
			Date:        month.Add(4),
			Amount:      M(400.00, "EUR"),
			Description: "MONTHLY SAVINGS TRANSFER",
			Reference:   fmt.Sprintf("SAV-%s", date.Monthly.Key(month)),
		})

		// A dozen everyday expenses scattered over the month.
		for i := 0; i < 12; i++ {
			merchant := demoMerchants[rng.Intn(len(demoMerchants))]
			jitter := 1 + (rng.Float64()-0.5)/4 // +/- 12.5%
			day := 1 + rng.Intn(27)
			add(CanonicalFields{
				AccountID:   checking.AccountID,
				Date:        date.New(month.Year(), month.Month(), day),
				Amount:      M(merchant.amount*jitter, "EUR"),
				Description: merchant.desc,
				Reference:   fmt.Sprintf("POS-%s-%02d-%02d", date.Monthly.Key(month), day, i),
			})
		}
	}

	return s.Replace(user, []BankAccount{checking, savings}, txs)
}
