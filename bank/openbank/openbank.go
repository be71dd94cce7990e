// Package openbank implements the bank adapter for institutions exposing an
// open-banking style JSON API behind an authenticated browser session. The
// session headers captured at login are replayed verbatim on every request;
// response fields are located with jsonpath expressions so minor schema
// variations stay configuration, not code.
package openbank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/PaesslerAG/jsonpath"
	"github.com/nroux/finledger"
	"github.com/nroux/finledger/bank"
	"github.com/nroux/finledger/date"
	"github.com/shopspring/decimal"
)

// Adapter talks to one institution's API. Zero value is not usable; create
// with New.
type Adapter struct {
	institution string
	baseURL     string
	client      *http.Client
}

// New creates an adapter for the institution's API root, e.g.
// "https://api.examplebank.com/v1".
func New(institution, baseURL string) *Adapter {
	return &Adapter{institution: institution, baseURL: baseURL, client: new(http.Client)}
}

var _ bank.Adapter = (*Adapter)(nil)

// FetchAccounts lists the accounts visible in the session.
func (a *Adapter) FetchAccounts(ctx context.Context, creds bank.Credentials) ([]finledger.BankAccount, error) {
	var jobj any
	if err := a.jwget(ctx, creds, a.baseURL+"/accounts", &jobj); err != nil {
		return nil, err
	}
	items, err := jsonList(jobj, "$.accounts[*]")
	if err != nil {
		return nil, fmt.Errorf("unexpected accounts response shape: %w", err)
	}

	accounts := make([]finledger.BankAccount, 0, len(items))
	for _, item := range items {
		id, err := jsonString(item, "$.id")
		if err != nil {
			return nil, fmt.Errorf("account without id: %w", err)
		}
		name, _ := jsonString(item, "$.name")
		currency, _ := jsonString(item, "$.balance.currency")
		current, err := jsonNumber(item, "$.balance.current")
		if err != nil {
			return nil, fmt.Errorf("account %s without balance: %w", id, err)
		}
		accounts = append(accounts, finledger.BankAccount{
			AccountID:   id,
			Name:        name,
			Institution: a.institution,
			Balance:     finledger.M(current, currency),
		})
	}
	return accounts, nil
}

// FetchTransactions returns the canonical fields of the account's booked
// transactions. Ids are not assigned here; identity is owned by the ledger.
func (a *Adapter) FetchTransactions(ctx context.Context, creds bank.Credentials, accountID string) ([]finledger.CanonicalFields, error) {
	var jobj any
	addr := fmt.Sprintf("%s/accounts/%s/transactions", a.baseURL, accountID)
	if err := a.jwget(ctx, creds, addr, &jobj); err != nil {
		return nil, err
	}
	items, err := jsonList(jobj, "$.transactions[*]")
	if err != nil {
		return nil, fmt.Errorf("unexpected transactions response shape: %w", err)
	}

	fields := make([]finledger.CanonicalFields, 0, len(items))
	for _, item := range items {
		dayStr, err := jsonString(item, "$.bookingDate")
		if err != nil {
			return nil, fmt.Errorf("transaction without booking date: %w", err)
		}
		day, err := date.Parse(dayStr)
		if err != nil {
			return nil, fmt.Errorf("invalid booking date %q: %w", dayStr, err)
		}
		amount, err := jsonNumber(item, "$.amount.value")
		if err != nil {
			return nil, fmt.Errorf("transaction without amount: %w", err)
		}
		currency, _ := jsonString(item, "$.amount.currency")
		description, _ := jsonString(item, "$.description")
		reference, _ := jsonString(item, "$.reference")

		fields = append(fields, finledger.CanonicalFields{
			AccountID:   accountID,
			Date:        day,
			Amount:      finledger.M(decimal.NewFromFloat(amount), currency),
			Description: description,
			Reference:   reference,
		})
	}
	return fields, nil
}

// jwget performs an authenticated GET and unmarshals the JSON response.
func (a *Adapter) jwget(ctx context.Context, creds bank.Credentials, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	for name, value := range creds {
		req.Header.Set(name, value)
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("session expired for %s (%v), log in again", a.institution, resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v: %v", addr, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}

// jsonList evaluates a jsonpath expected to yield a list.
func jsonList(jobj any, path string) ([]any, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("jsonpath %q: %w", path, err)
	}
	list, ok := jval.([]any)
	if !ok {
		// jsonpath is never clear about whether it returns a list of 1 or a
		// single answer; normalize to a list.
		return []any{jval}, nil
	}
	return list, nil
}

func jsonString(jobj any, path string) (string, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", fmt.Errorf("jsonpath %q: %w", path, err)
	}
	s, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("jsonpath %q: not a string: %v", path, jval)
	}
	return s, nil
}

func jsonNumber(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("jsonpath %q: %w", path, err)
	}
	val, ok := jval.(float64)
	if !ok {
		// sometimes APIs return the value as a string
		s, ok := jval.(string)
		if !ok {
			return 0, fmt.Errorf("jsonpath %q: neither a float nor a string: %v", path, jval)
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return 0, fmt.Errorf("jsonpath %q: invalid number %q: %w", path, s, err)
		}
		return d.InexactFloat64(), nil
	}
	return val, nil
}
