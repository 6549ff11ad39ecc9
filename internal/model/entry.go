package model

import "github.com/shopspring/decimal"

// TrialBalanceEntry is one account line of a trial balance.
type TrialBalanceEntry struct {
	Account  string          `json:"account"`
	Debit    decimal.Decimal `json:"debit"`              // zero if absent
	Credit   decimal.Decimal `json:"credit"`             // zero if absent
	Currency string          `json:"currency,omitempty"` // empty = reporting currency
}

// Net returns debit minus credit. Entries carrying both sides are tolerated.
func (e TrialBalanceEntry) Net() decimal.Decimal {
	return e.Debit.Sub(e.Credit)
}

// AccountBalance is the per-account fold of one or more entries.
type AccountBalance struct {
	Account        string          `json:"account"`
	Classification Classification  `json:"classification"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
}

// Net returns debit minus credit.
func (b AccountBalance) Net() decimal.Decimal {
	return b.Debit.Sub(b.Credit)
}

// CashEffect returns the account's cash direction: credit minus debit, so
// income and proceeds are positive and payments negative.
func (b AccountBalance) CashEffect() decimal.Decimal {
	return b.Credit.Sub(b.Debit)
}
