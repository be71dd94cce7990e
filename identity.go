package finledger

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// idSeparator keeps field boundaries unambiguous in the digest input, so that
// ("ab", "c") and ("a", "bc") never hash to the same id.
const idSeparator = "\x1f"

// TransactionID derives the content-addressed primary key for a transaction
// event. It is a pure function of the canonical fields: two imports of the
// same underlying event always produce the same id, whatever the source or
// the number of times the statement is re-imported.
//
// Fields that vary across re-imports (row numbers, import timestamps) must
// never leak into this digest.
func TransactionID(f CanonicalFields) string {
	parts := []string{
		f.AccountID,
		f.Date.String(),
		f.Amount.Decimal().String(),
		f.Amount.Currency(),
		f.Description,
		f.Reference,
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, idSeparator)))
	return hex.EncodeToString(sum[:])
}
