package finledger

// Result reports the outcome of one ingestion call.
type Result struct {
	Accepted   int // genuinely new transactions appended to the store
	Duplicates int // field sets whose id was already present, silently skipped
}

// Ingestor is the sole path by which transactions enter a store. Both CSV
// upload and bank sync funnel through it, so dedup semantics are identical
// regardless of source.
type Ingestor struct {
	store *Store
}

// NewIngestor creates an ingestor writing to the given mode's store.
func NewIngestor(s *Store) *Ingestor { return &Ingestor{store: s} }

// Ingest assigns content-addressed ids to the canonical field sets, partitions
// them against the transactions already present, and bulk-inserts only the new
// ones. source records where the data came from ("csv" or an institution id).
//
// The call is idempotent: re-running with the same input after a prior
// successful run yields Accepted == 0. Any error aborts with zero side
// effects; there are no partial inserts.
func (ing *Ingestor) Ingest(accountID string, fields []CanonicalFields, source string) (Result, error) {
	// Validate and assign ids up front, before touching the store.
	batch := make([]Transaction, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	dups := 0
	for _, f := range fields {
		f.AccountID = accountID
		if err := f.Validate(); err != nil {
			return Result{}, err
		}
		id := TransactionID(f)
		if _, ok := seen[id]; ok {
			// The same event twice within one upload is a duplicate too.
			dups++
			continue
		}
		seen[id] = struct{}{}
		batch = append(batch, Transaction{ID: id, CanonicalFields: f, Source: source})
	}

	// Partition against the store, then insert only the new set.
	fresh := make([]Transaction, 0, len(batch))
	for _, tx := range batch {
		_, exists, err := ing.store.Transaction(tx.ID)
		if err != nil {
			return Result{}, err
		}
		if exists {
			dups++
			continue
		}
		fresh = append(fresh, tx)
	}

	added, err := ing.store.InsertTransactions(fresh...)
	if err != nil {
		return Result{}, err
	}
	// A writer may have raced us between partition and insert; whatever it
	// already appended counts as duplicate, not accepted.
	dups += len(fresh) - added
	return Result{Accepted: added, Duplicates: dups}, nil
}
