package statements

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fiscmind/fiscmind/internal/accounts"
	"github.com/fiscmind/fiscmind/internal/model"
)

// Cash flow adjustment row keys.
const (
	KeyDepreciation      = "depreciation"
	KeyAmortization      = "amortization"
	KeyStockCompensation = "stock_compensation"
)

// Accounts with a standard-dependent cash flow section.
const (
	InterestIncome    = "Interest Income"
	InterestExpense   = "Interest Expense"
	DividendsReceived = "Dividends Received"
	DividendsPaid     = "Dividends Paid"
)

// DefaultCashFlowClassification returns the section each special account
// falls in under std. ASC keeps interest and dividends received in
// operating activities; IFRS presents interest and dividends received as
// investing and interest paid as financing. Dividends paid are financing
// under both.
func DefaultCashFlowClassification(std model.Standard) map[string]model.CashFlowSection {
	if std == model.StandardIFRS {
		return map[string]model.CashFlowSection{
			InterestIncome:    model.SectionInvesting,
			InterestExpense:   model.SectionFinancing,
			DividendsReceived: model.SectionInvesting,
			DividendsPaid:     model.SectionFinancing,
		}
	}
	return map[string]model.CashFlowSection{
		InterestIncome:    model.SectionOperating,
		InterestExpense:   model.SectionOperating,
		DividendsReceived: model.SectionOperating,
		DividendsPaid:     model.SectionFinancing,
	}
}

// MergeSections overlays overrides on the defaults. Names are matched
// case-insensitively; an override replaces the default of the same account.
func MergeSections(defaults, overrides map[string]model.CashFlowSection) map[string]model.CashFlowSection {
	byKey := make(map[string]string, len(defaults)+len(overrides))
	out := make(map[string]model.CashFlowSection, len(defaults)+len(overrides))
	for _, m := range []map[string]model.CashFlowSection{defaults, overrides} {
		for name, sec := range m {
			key := accounts.Normalize(name)
			if prev, ok := byKey[key]; ok {
				delete(out, prev)
			}
			byKey[key] = name
			out[name] = sec
		}
	}
	return out
}

// BuildCashFlow computes a simplified indirect-method cash flow. Operating
// activities start at net income plus the non-cash add-backs. Each account
// named in the section table then moves its cash effect (credit minus
// debit) into that section: income statement accounts leave operating,
// balance sheet accounts are added. Unmapped accounts are never moved.
func BuildCashFlow(t *model.Totals, is model.IncomeStatement, std model.Standard, overrides map[string]model.CashFlowSection) model.CashFlow {
	cf := model.CashFlow{NetIncome: is.NetIncome}

	sections := map[model.CashFlowSection]decimal.Decimal{
		model.SectionOperating: is.NetIncome,
	}
	for _, adj := range []model.Row{
		row(KeyDepreciation, t.Depreciation),
		row(KeyAmortization, t.Amortization),
		row(KeyStockCompensation, t.StockCompensation),
	} {
		if adj.Amount.IsZero() {
			continue
		}
		cf.Adjustments = append(cf.Adjustments, adj)
		sections[model.SectionOperating] = sections[model.SectionOperating].Add(adj.Amount)
	}

	table := MergeSections(DefaultCashFlowClassification(std), overrides)
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		bal, ok := t.Account(name)
		if !ok || !bal.Classification.IsMapped() {
			continue
		}
		sec := table[name]
		effect := bal.CashEffect()
		switch bal.Classification.Major {
		case model.MajorRevenue, model.MajorExpense:
			if sec == model.SectionOperating {
				continue
			}
			sections[model.SectionOperating] = sections[model.SectionOperating].Sub(effect)
			sections[sec] = sections[sec].Add(effect)
		default:
			sections[sec] = sections[sec].Add(effect)
		}
	}

	cf.Operating = sections[model.SectionOperating]
	cf.Investing = sections[model.SectionInvesting]
	cf.Financing = sections[model.SectionFinancing]
	cf.NetChange = cf.Operating.Add(cf.Investing).Add(cf.Financing)
	return cf
}
