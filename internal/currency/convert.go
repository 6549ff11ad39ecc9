// Package currency converts amounts between currencies using a rate table
// anchored to a single base currency.
package currency

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Rates maps a currency code to its rate relative to the table's base
// currency (the base itself has rate 1).
type Rates map[string]decimal.Decimal

// MissingRateError reports a currency code absent from the rate table.
type MissingRateError struct {
	Currency string
}

func (e *MissingRateError) Error() string {
	return fmt.Sprintf("missing exchange rate for %s", e.Currency)
}

// Code canonicalizes a currency code.
func Code(c string) string {
	return strings.ToUpper(strings.TrimSpace(c))
}

// Rate returns the rate for a code. Zero or negative rates count as missing.
func (r Rates) Rate(code string) (decimal.Decimal, error) {
	rate, ok := r[Code(code)]
	if !ok || !rate.IsPositive() {
		return decimal.Zero, &MissingRateError{Currency: Code(code)}
	}
	return rate, nil
}

// Canonical returns a copy of the table with every key passed through Code.
// When two keys canonicalize to the same code the last one seen wins.
func (r Rates) Canonical() Rates {
	out := make(Rates, len(r))
	for code, rate := range r {
		out[Code(code)] = rate
	}
	return out
}

// Convert converts amount from one currency to another through the table's
// base: amount / rates[from] * rates[to]. Converting a currency to itself
// returns amount unchanged without consulting the table.
func Convert(amount decimal.Decimal, from, to string, rates Rates) (decimal.Decimal, error) {
	if Code(from) == Code(to) {
		return amount, nil
	}
	fromRate, err := rates.Rate(from)
	if err != nil {
		return decimal.Zero, err
	}
	toRate, err := rates.Rate(to)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Div(fromRate).Mul(toRate), nil
}

// ParseRates converts a string table (as stored in config files) to Rates.
func ParseRates(table map[string]string) (Rates, error) {
	rates := make(Rates, len(table))
	for code, s := range table {
		d, err := decimal.NewFromString(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("parsing rate for %s %q: %w", code, s, err)
		}
		rates[Code(code)] = d
	}
	return rates, nil
}
