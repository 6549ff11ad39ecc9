package statements

import (
	"github.com/shopspring/decimal"

	"github.com/fiscmind/fiscmind/internal/model"
)

// Balance sheet row keys.
const (
	KeyCurrentAssets         = "current_assets"
	KeyNoncurrentAssets      = "noncurrent_assets"
	KeyCurrentLiabilities    = "current_liabilities"
	KeyNoncurrentLiabilities = "noncurrent_liabilities"
	KeyEquity                = "equity"
)

var rowLabels = map[string]string{
	KeyCurrentAssets:         "Current Assets",
	KeyNoncurrentAssets:      "Noncurrent Assets",
	KeyCurrentLiabilities:    "Current Liabilities",
	KeyNoncurrentLiabilities: "Noncurrent Liabilities",
	KeyEquity:                "Equity",
	KeyRevenue:               "Revenue",
	KeyExpenses:              "Expenses",
	KeyDepreciation:          "Depreciation",
	KeyAmortization:          "Amortization",
	KeyStockCompensation:     "Stock Compensation",
}

func row(key string, amount decimal.Decimal) model.Row {
	return model.Row{Key: key, Label: rowLabels[key], Amount: amount}
}

// BuildBalanceSheet presents the asset, liability and equity buckets. ASC
// lists current items first; IFRS lists noncurrent items first.
func BuildBalanceSheet(t *model.Totals, std model.Standard) model.BalanceSheet {
	ca := row(KeyCurrentAssets, t.Bucket(model.MajorAsset, model.SubCurrent))
	nca := row(KeyNoncurrentAssets, t.Bucket(model.MajorAsset, model.SubNoncurrent))
	cl := row(KeyCurrentLiabilities, t.Bucket(model.MajorLiability, model.SubCurrent))
	ncl := row(KeyNoncurrentLiabilities, t.Bucket(model.MajorLiability, model.SubNoncurrent))

	bs := model.BalanceSheet{
		Equity:           []model.Row{row(KeyEquity, t.Major(model.MajorEquity))},
		TotalAssets:      ca.Amount.Add(nca.Amount),
		TotalLiabilities: cl.Amount.Add(ncl.Amount),
		TotalEquity:      t.Major(model.MajorEquity),
	}
	if std == model.StandardIFRS {
		bs.Assets = []model.Row{nca, ca}
		bs.Liabilities = []model.Row{ncl, cl}
	} else {
		bs.Assets = []model.Row{ca, nca}
		bs.Liabilities = []model.Row{cl, ncl}
	}
	return bs
}
