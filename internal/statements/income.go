package statements

import "github.com/fiscmind/fiscmind/internal/model"

// Income statement row keys.
const (
	KeyRevenue  = "revenue"
	KeyExpenses = "expenses"
)

// BuildIncomeStatement reports revenue, expenses and net income.
func BuildIncomeStatement(t *model.Totals) model.IncomeStatement {
	return model.IncomeStatement{
		Revenues:      []model.Row{row(KeyRevenue, t.Revenue)},
		Expenses:      []model.Row{row(KeyExpenses, t.Expenses)},
		TotalRevenue:  t.Revenue,
		TotalExpenses: t.Expenses,
		NetIncome:     t.Revenue.Sub(t.Expenses),
	}
}
