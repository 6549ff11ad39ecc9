package statements

import "github.com/fiscmind/fiscmind/internal/model"

// BuildSOCIE rolls retained earnings forward. Net income is taken from the
// income statement as is.
func BuildSOCIE(t *model.Totals, is model.IncomeStatement) model.SOCIE {
	return model.SOCIE{
		OpeningRetainedEarnings: t.OpeningRetainedEarnings,
		NetIncome:               is.NetIncome,
		Dividends:               t.Dividends,
		EndingRetainedEarnings:  t.OpeningRetainedEarnings.Add(is.NetIncome).Sub(t.Dividends),
	}
}
