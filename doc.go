// Package finledger implements a personal finance ledger: a mode-scoped,
// file-backed store of users, bank accounts and transactions, the
// content-addressed identity scheme that keeps re-imports idempotent, the
// ingestion pipeline shared by CSV uploads and bank syncs, and the read-side
// aggregation that feeds dashboards.
//
// Transactions only enter the store through the Ingestor, which assigns each
// one a deterministic id derived from its canonical fields and silently skips
// ids already present. The same bank statement can therefore be imported any
// number of times, through any source, without creating duplicates.
//
// Storage is one JSONL snapshot file per mode (real or demo). The two modes
// never share state; switching is atomic from the caller's perspective.
package finledger
