// Package bank defines the pluggable adapter interface for fetching account
// and transaction data from an authenticated bank session, the registry that
// selects an adapter by institution id, and the sync orchestration that feeds
// adapter output into the ingestion pipeline.
package bank

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/nroux/finledger"
)

// Credentials are the opaque session tokens of one institution, loaded per
// sync request. The core never inspects or mutates them; adapters decide what
// the keys mean (typically HTTP header names).
type Credentials map[string]string

// Adapter is the capability set an institution integration must provide.
// Implementations live in subpackages, one per institution, and are wired in
// through a Registry; adding an institution never touches the ingestion
// pipeline.
type Adapter interface {
	// FetchAccounts returns the accounts visible in the remote session.
	FetchAccounts(ctx context.Context, creds Credentials) ([]finledger.BankAccount, error)
	// FetchTransactions returns the canonical fields of the account's remote
	// transactions. It must fail loudly: an expired session or unexpected
	// response shape is an error, never a silent empty result.
	FetchTransactions(ctx context.Context, creds Credentials, accountID string) ([]finledger.CanonicalFields, error)
}

// AdapterError reports a failed remote fetch, carrying the institution and
// the underlying cause so the caller can distinguish "nothing new" from
// "fetch failed".
type AdapterError struct {
	Institution string
	Err         error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("sync %s: %v", e.Institution, e.Err)
}

func (e *AdapterError) Unwrap() error { return e.Err }

// Registry maps institution ids to their adapters.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]Adapter
}

func NewRegistry() *Registry {
	return &Registry{adapters: make(map[string]Adapter)}
}

// Register wires an adapter under an institution id, replacing any previous
// registration for that id.
func (r *Registry) Register(institution string, a Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adapters[institution] = a
}

// Lookup returns the adapter registered for the institution.
func (r *Registry) Lookup(institution string) (Adapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.adapters[institution]
	if !ok {
		return nil, fmt.Errorf("no adapter registered for institution %q", institution)
	}
	return a, nil
}

// Institutions lists the registered institution ids, sorted.
func (r *Registry) Institutions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.adapters))
	for id := range r.adapters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
