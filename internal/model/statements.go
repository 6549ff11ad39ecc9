package model

import "github.com/shopspring/decimal"

// Row is one labeled line of a statement.
type Row struct {
	Key    string          `json:"key"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// BalanceSheet is the statement of financial position.
type BalanceSheet struct {
	Assets           []Row           `json:"assets"`
	Liabilities      []Row           `json:"liabilities"`
	Equity           []Row           `json:"equity"`
	TotalAssets      decimal.Decimal `json:"total_assets"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`
	TotalEquity      decimal.Decimal `json:"total_equity"`
}

// IncomeStatement is the statement of profit or loss.
type IncomeStatement struct {
	Revenues      []Row           `json:"revenues"`
	Expenses      []Row           `json:"expenses"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetIncome     decimal.Decimal `json:"net_income"`
}

// SOCIE is the statement of changes in equity (retained earnings roll-forward).
type SOCIE struct {
	OpeningRetainedEarnings decimal.Decimal `json:"opening_retained_earnings"`
	NetIncome               decimal.Decimal `json:"net_income"`
	Dividends               decimal.Decimal `json:"dividends"`
	EndingRetainedEarnings  decimal.Decimal `json:"ending_retained_earnings"`
}

// CashFlow is a simplified indirect-method cash flow statement.
type CashFlow struct {
	NetIncome   decimal.Decimal `json:"net_income"`
	Adjustments []Row           `json:"adjustments,omitempty"`
	Operating   decimal.Decimal `json:"operating"`
	Investing   decimal.Decimal `json:"investing"`
	Financing   decimal.Decimal `json:"financing"`
	NetChange   decimal.Decimal `json:"net_change"`
}

// UnmappedSummary exposes accounts excluded from every statement total.
type UnmappedSummary struct {
	Total    decimal.Decimal  `json:"total"`
	Accounts []AccountBalance `json:"accounts,omitempty"`
}

// Bundle is the complete set of statements produced by one generation.
type Bundle struct {
	Standard        Standard        `json:"standard"`
	Currency        string          `json:"currency,omitempty"`
	BalanceSheet    BalanceSheet    `json:"balance_sheet"`
	IncomeStatement IncomeStatement `json:"income_statement"`
	SOCIE           SOCIE           `json:"socie"`
	CashFlow        CashFlow        `json:"cash_flow"`
	Unmapped        UnmappedSummary `json:"unmapped"`
}
