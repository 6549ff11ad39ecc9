package accounts

import "github.com/fiscmind/fiscmind/internal/model"

// DefaultAccounts returns the built-in chart of accounts table.
func DefaultAccounts() []model.Account {
	asset := func(name string, sub model.SubCategory, desc string) model.Account {
		return model.Account{Name: name, Classification: model.Classification{Major: model.MajorAsset, Sub: sub}, Description: desc}
	}
	liability := func(name string, sub model.SubCategory, desc string) model.Account {
		return model.Account{Name: name, Classification: model.Classification{Major: model.MajorLiability, Sub: sub}, Description: desc}
	}
	of := func(name string, major model.MajorCategory, desc string) model.Account {
		return model.Account{Name: name, Classification: model.Classification{Major: major}, Description: desc}
	}

	return []model.Account{
		asset("Cash", model.SubCurrent, "Cash and bank balances"),
		asset("Accounts Receivable", model.SubCurrent, "Amounts owed by customers"),
		asset("Inventory", model.SubCurrent, "Goods held for sale"),
		asset("Prepaid Expenses", model.SubCurrent, "Payments made in advance"),
		asset("Property, Plant & Equipment", model.SubNoncurrent, "Long-term tangible assets"),
		asset("Intangible Assets", model.SubNoncurrent, ""),
		{
			Name:           "Accumulated Depreciation",
			Classification: model.Classification{Major: model.MajorAsset, Sub: model.SubNoncurrent, Contra: true},
			Description:    "Contra-asset against property, plant & equipment",
		},

		liability("Accounts Payable", model.SubCurrent, "Amounts owed to suppliers"),
		liability("Accrued Expenses", model.SubCurrent, "Expenses incurred but not yet paid"),
		liability("Deferred Revenue", model.SubCurrent, "Customer payments received in advance"),
		liability("Long‑term Debt", model.SubNoncurrent, "Borrowings due after twelve months"),

		of("Share Capital", model.MajorEquity, ""),
		of("Retained Earnings", model.MajorEquity, "Accumulated profits brought forward"),
		of("Dividends", model.MajorEquity, "Distributions declared to owners"),
		of("Dividends Paid", model.MajorEquity, "Distributions paid to owners"),

		of("Sales Revenue", model.MajorRevenue, ""),
		of("Service Revenue", model.MajorRevenue, ""),
		of("Interest Income", model.MajorRevenue, ""),
		of("Dividends Received", model.MajorRevenue, ""),

		of("Cost of Goods Sold", model.MajorExpense, ""),
		of("Salary Expense", model.MajorExpense, ""),
		of("Rent Expense", model.MajorExpense, ""),
		of("Depreciation Expense", model.MajorExpense, "Non-cash, added back in operating cash flow"),
		of("Amortization Expense", model.MajorExpense, "Non-cash, added back in operating cash flow"),
		of("Stock Compensation Expense", model.MajorExpense, "Non-cash, added back in operating cash flow"),
		of("Interest Expense", model.MajorExpense, ""),
	}
}
