package accounts

import (
	"strings"
	"unicode"

	"github.com/fiscmind/fiscmind/internal/model"
)

// Matcher tests a normalized account name.
type Matcher func(name string) bool

// Rule is one entry of the keyword heuristic. Rules are evaluated in order
// and the first match wins.
type Rule struct {
	Name    string
	Match   Matcher
	Class   model.Classification
	Promote Matcher // when set and matching, Sub becomes noncurrent
}

// Apply returns the classification for a matching name.
func (r Rule) Apply(name string) model.Classification {
	c := r.Class
	if r.Promote != nil && r.Promote(name) {
		c.Sub = model.SubNoncurrent
	}
	return c
}

// Any matches when the name contains any of the substrings.
func Any(subs ...string) Matcher {
	return func(name string) bool {
		for _, s := range subs {
			if strings.Contains(name, s) {
				return true
			}
		}
		return false
	}
}

// All matches when the name contains every substring.
func All(subs ...string) Matcher {
	return func(name string) bool {
		for _, s := range subs {
			if !strings.Contains(name, s) {
				return false
			}
		}
		return true
	}
}

// Words matches when any of the words appears as a whole token.
func Words(words ...string) Matcher {
	return func(name string) bool {
		for _, tok := range strings.FieldsFunc(name, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		}) {
			for _, w := range words {
				if tok == w {
					return true
				}
			}
		}
		return false
	}
}

// And matches when every matcher matches.
func And(ms ...Matcher) Matcher {
	return func(name string) bool {
		for _, m := range ms {
			if !m(name) {
				return false
			}
		}
		return true
	}
}

// Or matches when any matcher matches.
func Or(ms ...Matcher) Matcher {
	return func(name string) bool {
		for _, m := range ms {
			if m(name) {
				return true
			}
		}
		return false
	}
}

// Not inverts a matcher.
func Not(m Matcher) Matcher {
	return func(name string) bool { return !m(name) }
}

// Normalize lowercases a name, folds Unicode dashes to '-' and collapses
// whitespace. Rules always see normalized names.
func Normalize(name string) string {
	return model.NormalizeName(name)
}

var (
	longTerm = Any("noncurrent", "non-current", "non current", "long")

	// Names of money owed to the entity rather than by it.
	lending = Any("receivable", "debtor", "loan to", "loans to", "investment")

	incomeWords = Any("revenue", "income", "sales", "fees earned")
)

// DefaultRules returns the built-in keyword heuristic in priority order:
// contra-assets, prepaid assets, liabilities, expenses, revenue, equity,
// current assets, noncurrent assets. Expense rules come before revenue rules
// so that "interest expense" never resolves to income, but a bare expense
// word such as "rent" yields to an income phrase in the same name.
func DefaultRules() []Rule {
	asset := func(sub model.SubCategory) model.Classification {
		return model.Classification{Major: model.MajorAsset, Sub: sub, Side: model.SideDebit}
	}
	contra := func(sub model.SubCategory) model.Classification {
		return model.Classification{Major: model.MajorAsset, Sub: sub, Side: model.SideCredit, Contra: true}
	}
	return []Rule{
		{
			Name:  "accumulated-depreciation",
			Match: Or(All("accumulated", "depreciation"), All("accumulated", "amorti")),
			Class: contra(model.SubNoncurrent),
		},
		{
			Name:  "allowance",
			Match: Any("allowance for doubtful", "allowance for credit", "allowance for bad", "provision for doubtful"),
			Class: contra(model.SubCurrent),
		},
		{
			Name:  "prepaid",
			Match: Any("prepaid", "prepayment"),
			Class: asset(model.SubCurrent),
		},
		{
			Name:  "bad-debt",
			Match: Any("bad debt", "doubtful debt"),
			Class: model.Classification{Major: model.MajorExpense, Side: model.SideDebit},
		},
		{
			Name: "liability",
			Match: And(
				Or(
					Any("payable", "accrued", "accrual", "deferred revenue", "unearned", "loan", "creditor",
						"borrowing", "mortgage", "bond", "overdraft", "liabilit", "customer deposit"),
					Words("debt", "debts"),
				),
				Not(lending),
			),
			Class:   model.Classification{Major: model.MajorLiability, Sub: model.SubCurrent, Side: model.SideCredit},
			Promote: longTerm,
		},
		{
			Name: "expense",
			Match: Or(
				Any("expense", "cost of", "depreciation", "amortization", "amortisation", "compensation", "impairment", "loss on",
					"bank charge", "bank fee", "service charge"),
				And(
					Words("cogs", "rent", "salary", "salaries", "wages", "payroll", "utilities", "advertising"),
					Not(incomeWords),
				),
			),
			Class: model.Classification{Major: model.MajorExpense, Side: model.SideDebit},
		},
		{
			Name:  "revenue",
			Match: Any("revenue", "sales", "income", "turnover", "gain on", "fees earned", "dividends received", "dividend received"),
			Class: model.Classification{Major: model.MajorRevenue, Side: model.SideCredit},
		},
		{
			Name: "equity",
			Match: Any("retained earning", "share capital", "capital stock", "common stock", "preferred stock",
				"share premium", "paid-in", "paid in", "equity", "dividend", "drawing", "treasury", "reserve", "capital"),
			Class: model.Classification{Major: model.MajorEquity, Side: model.SideCredit},
		},
		{
			Name:    "current-asset",
			Match:   Or(Any("receivable", "debtor", "loan to", "loans to", "inventor", "petty", "short-term investment", "marketable"), Words("cash", "bank")),
			Class:   asset(model.SubCurrent),
			Promote: longTerm,
		},
		{
			Name: "noncurrent-asset",
			Match: Any("property", "plant", "equipment", "building", "land", "machinery", "vehicle", "furniture",
				"intangible", "goodwill", "patent", "trademark", "software", "investment", "right-of-use"),
			Class: asset(model.SubNoncurrent),
		},
	}
}
