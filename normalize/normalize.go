// Package normalize converts raw tabular statements into canonical
// transaction field sets. Institution-specific column conventions live behind
// this package; the ingestion pipeline only ever sees CanonicalFields.
//
// Parsing is deterministic and never assigns ids: identity is owned by the
// finledger package. Malformed rows are dropped from the result but reported
// to the caller row by row, never silently merged into a neighbour.
package normalize

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/nroux/finledger"
	"github.com/nroux/finledger/date"
	"github.com/shopspring/decimal"
)

// Column names recognized in the header row. Matching is case-insensitive.
const (
	colDate        = "date"
	colAmount      = "amount"
	colDescription = "description"
	colReference   = "reference"
	colCurrency    = "currency"
)

// DefaultCurrency is assumed when a statement carries no currency column.
const DefaultCurrency = "EUR"

// RowError reports one malformed row: its 1-based position in the file, the
// raw content, and the cause.
type RowError struct {
	Row     int
	Content string
	Err     error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d (%q): %v", e.Row, e.Content, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// Parse reads a CSV statement and returns the canonical field sets for the
// target account, plus one RowError per malformed row. The error return is
// reserved for input that is unusable as a whole (unreadable stream, missing
// header columns); per-row problems never abort the parse.
func Parse(r io.Reader, accountID string) ([]finledger.CanonicalFields, []RowError, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1 // rows are validated individually below

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, &finledger.ValidationError{Msg: fmt.Sprintf("unreadable CSV: %v", err)}
	}
	if len(records) == 0 {
		return nil, nil, &finledger.ValidationError{Msg: "empty statement: no header row"}
	}

	cols := headerIndex(records[0])
	for _, required := range []string{colDate, colAmount, colDescription} {
		if _, ok := cols[required]; !ok {
			return nil, nil, &finledger.ValidationError{Msg: fmt.Sprintf("missing %q column", required)}
		}
	}

	var fields []finledger.CanonicalFields
	var rowErrs []RowError
	for i, record := range records[1:] {
		rowNum := i + 2 // 1-based, counting the header row
		f, err := mapRow(record, cols, accountID)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Content: strings.Join(record, ","), Err: err})
			continue
		}
		fields = append(fields, f)
	}
	return fields, rowErrs, nil
}

// Import parses a CSV statement and feeds it through the ingestion pipeline
// in one call. Row errors do not abort the import; they report what was
// skipped alongside the ingest result.
func Import(r io.Reader, accountID string, ing *finledger.Ingestor) (finledger.Result, []RowError, error) {
	fields, rowErrs, err := Parse(r, accountID)
	if err != nil {
		return finledger.Result{}, nil, err
	}
	res, err := ing.Ingest(accountID, fields, "csv")
	if err != nil {
		return finledger.Result{}, rowErrs, err
	}
	return res, rowErrs, nil
}

// headerIndex maps normalized column names to their position.
func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return cols
}

func mapRow(record []string, cols map[string]int, accountID string) (finledger.CanonicalFields, error) {
	get := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	dateStr := get(colDate)
	if dateStr == "" {
		return finledger.CanonicalFields{}, fmt.Errorf("missing date")
	}
	day, err := date.Parse(dateStr)
	if err != nil {
		return finledger.CanonicalFields{}, fmt.Errorf("invalid date %q", dateStr)
	}

	amountStr := get(colAmount)
	if amountStr == "" {
		return finledger.CanonicalFields{}, fmt.Errorf("missing amount")
	}
	amount, err := decimal.NewFromString(normalizeAmount(amountStr))
	if err != nil {
		return finledger.CanonicalFields{}, fmt.Errorf("invalid amount %q", amountStr)
	}

	description := get(colDescription)
	if description == "" {
		return finledger.CanonicalFields{}, fmt.Errorf("missing description")
	}

	currency := get(colCurrency)
	if currency == "" {
		currency = DefaultCurrency
	}

	return finledger.CanonicalFields{
		AccountID:   accountID,
		Date:        day,
		Amount:      finledger.M(amount, currency),
		Description: description,
		Reference:   get(colReference),
	}, nil
}

// normalizeAmount strips thousands separators and tolerates a decimal comma,
// the usual variations across exported statements.
func normalizeAmount(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	if strings.Contains(s, ",") && strings.Contains(s, ".") {
		// "1,234.56": the comma is a thousands separator.
		return strings.ReplaceAll(s, ",", "")
	}
	// "12,50": the comma is a decimal separator.
	return strings.ReplaceAll(s, ",", ".")
}
