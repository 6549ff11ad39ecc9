// Package statements builds the balance sheet, income statement, statement
// of changes in equity and cash flow statement from a trial balance.
package statements

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fiscmind/fiscmind/internal/accounts"
	"github.com/fiscmind/fiscmind/internal/model"
)

// Classifier resolves an account name to its classification. It must be
// total: unknown names resolve to model.Unmapped.
type Classifier interface {
	Classify(name string) model.Classification
}

var (
	retainedEarnings = accounts.Any("retained earning")
	dividend         = accounts.Any("dividend")
	depreciation     = accounts.Any("depreciation")
	amortization     = accounts.Any("amortization", "amortisation")
	stockComp        = accounts.Or(
		accounts.All("stock", "compensation"),
		accounts.All("share", "compensation"),
		accounts.Any("stock-based", "share-based"),
	)
)

// Aggregate folds entries into totals in a single pass. The result does not
// depend on the order of entries.
func Aggregate(entries []model.TrialBalanceEntry, cls Classifier) *model.Totals {
	t := model.NewTotals()
	for _, e := range entries {
		fold(t, e, cls.Classify(e.Account))
	}
	return t
}

func fold(t *model.Totals, e model.TrialBalanceEntry, c model.Classification) {
	t.Record(strings.TrimSpace(e.Account), c, e.Debit, e.Credit)

	if !c.IsMapped() {
		t.Unmapped = t.Unmapped.Add(e.Net())
		return
	}

	net := e.Debit.Sub(e.Credit)
	if c.Side == model.SideCredit {
		net = net.Neg()
	}
	// Contra accounts carry the side opposite to their category, so their
	// net reduces the bucket.
	if c.Side != model.NormalSide(c.Major) {
		net = net.Neg()
	}
	t.Add(c.Major, bucketSub(c), net)

	switch c.Major {
	case model.MajorRevenue:
		t.Revenue = t.Revenue.Add(net)
	case model.MajorExpense:
		t.Expenses = t.Expenses.Add(net)
	}

	name := accounts.Normalize(e.Account)
	if retainedEarnings(name) {
		t.OpeningRetainedEarnings = t.OpeningRetainedEarnings.Add(e.Credit.Sub(e.Debit))
	}
	if dividend(name) && c.Major != model.MajorRevenue {
		t.Dividends = t.Dividends.Add(e.Net())
	}
	if c.Major == model.MajorExpense {
		addNonCash(t, name, net)
	}
}

func addNonCash(t *model.Totals, name string, net decimal.Decimal) {
	switch {
	case depreciation(name):
		t.Depreciation = t.Depreciation.Add(net)
	case amortization(name):
		t.Amortization = t.Amortization.Add(net)
	case stockComp(name):
		t.StockCompensation = t.StockCompensation.Add(net)
	}
}

// bucketSub drops sub-categories outside the balance sheet and files
// assets and liabilities without one as noncurrent.
func bucketSub(c model.Classification) model.SubCategory {
	switch c.Major {
	case model.MajorAsset, model.MajorLiability:
		if c.Sub == model.SubCurrent {
			return model.SubCurrent
		}
		return model.SubNoncurrent
	default:
		return model.SubNone
	}
}
