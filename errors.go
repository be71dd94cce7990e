package finledger

import "fmt"

// ValidationError reports malformed raw input: a canonical field set missing
// its identifying fields, or an unreadable upload.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return "invalid input: " + e.Msg }

// StoreCorruptionError reports an unparseable backing file. It is fatal: the
// store does not attempt partial recovery, every operation on the mode keeps
// failing until an operator intervenes.
type StoreCorruptionError struct {
	Path string
	Err  error
}

func (e *StoreCorruptionError) Error() string {
	return fmt.Sprintf("ledger file %q is corrupt: %v", e.Path, e.Err)
}

func (e *StoreCorruptionError) Unwrap() error { return e.Err }
