package bank

import (
	"context"
	"time"

	"github.com/nroux/finledger"
	"github.com/nroux/finledger/logger"
)

// SyncResult is the metadata of one completed sync cycle.
type SyncResult struct {
	Institution       string
	AccountsUpdated   int
	TransactionsAdded int
	Timestamp         time.Time
}

// Sync fetches the institution's accounts and transactions and ingests them
// into the store. All remote calls complete before any store mutation: the
// store lock is only held while applying the computed delta, never while
// waiting on the network, and a failed fetch aborts with zero side effects.
func Sync(ctx context.Context, reg *Registry, institution string, creds Credentials, store *finledger.Store) (SyncResult, error) {
	log := logger.FromContext(ctx).With().Str("institution", institution).Logger()

	adapter, err := reg.Lookup(institution)
	if err != nil {
		return SyncResult{}, err
	}

	// Fetch phase: network only, no store access.
	accounts, err := adapter.FetchAccounts(ctx, creds)
	if err != nil {
		return SyncResult{}, &AdapterError{Institution: institution, Err: err}
	}
	fetched := make(map[string][]finledger.CanonicalFields, len(accounts))
	for _, account := range accounts {
		fields, err := adapter.FetchTransactions(ctx, creds, account.AccountID)
		if err != nil {
			return SyncResult{}, &AdapterError{Institution: institution, Err: err}
		}
		fetched[account.AccountID] = fields
	}

	// Apply phase: dedup and persist the delta.
	if err := store.UpsertAccounts(accounts...); err != nil {
		return SyncResult{}, err
	}
	ing := finledger.NewIngestor(store)
	added := 0
	for _, account := range accounts {
		res, err := ing.Ingest(account.AccountID, fetched[account.AccountID], institution)
		if err != nil {
			return SyncResult{}, err
		}
		added += res.Accepted
		log.Debug().
			Str("account", account.AccountID).
			Int("accepted", res.Accepted).
			Int("duplicates", res.Duplicates).
			Msg("account synced")
	}

	result := SyncResult{
		Institution:       institution,
		AccountsUpdated:   len(accounts),
		TransactionsAdded: added,
		Timestamp:         time.Now(),
	}
	log.Info().
		Int("accounts", result.AccountsUpdated).
		Int("transactions", result.TransactionsAdded).
		Msg("sync complete")
	return result, nil
}
