package model

import (
	"sort"

	"github.com/shopspring/decimal"
)

// BucketKey identifies one aggregation bucket.
type BucketKey struct {
	Major MajorCategory
	Sub   SubCategory
}

// Totals holds the running totals of one aggregation pass. Bucket amounts
// are signed by normal balance: a debit-normal bucket grows with debits, a
// credit-normal bucket with credits.
type Totals struct {
	Buckets map[BucketKey]decimal.Decimal

	Revenue  decimal.Decimal
	Expenses decimal.Decimal

	// Pseudo-accounts identified by name, tracked in addition to their bucket.
	OpeningRetainedEarnings decimal.Decimal
	Dividends               decimal.Decimal

	// Non-cash expenses added back in the indirect cash flow.
	Depreciation      decimal.Decimal
	Amortization      decimal.Decimal
	StockCompensation decimal.Decimal

	// Unmapped is debit minus credit over all unmapped entries.
	Unmapped decimal.Decimal

	accounts map[string]*AccountBalance
}

// NewTotals returns empty totals.
func NewTotals() *Totals {
	return &Totals{
		Buckets:  make(map[BucketKey]decimal.Decimal),
		accounts: make(map[string]*AccountBalance),
	}
}

// Add accumulates amount into the (major, sub) bucket.
func (t *Totals) Add(major MajorCategory, sub SubCategory, amount decimal.Decimal) {
	k := BucketKey{Major: major, Sub: sub}
	t.Buckets[k] = t.Buckets[k].Add(amount)
}

// Bucket returns the total of the (major, sub) bucket.
func (t *Totals) Bucket(major MajorCategory, sub SubCategory) decimal.Decimal {
	return t.Buckets[BucketKey{Major: major, Sub: sub}]
}

// Major returns the sum of every bucket of a major category.
func (t *Totals) Major(major MajorCategory) decimal.Decimal {
	sum := decimal.Zero
	for k, v := range t.Buckets {
		if k.Major == major {
			sum = sum.Add(v)
		}
	}
	return sum
}

// DebitBasis re-expresses every bucket as debit minus credit and sums them.
// Together with Unmapped it equals the sum of debit minus credit over all
// aggregated entries.
func (t *Totals) DebitBasis() decimal.Decimal {
	sum := decimal.Zero
	for k, v := range t.Buckets {
		if NormalSide(k.Major) == SideCredit {
			v = v.Neg()
		}
		sum = sum.Add(v)
	}
	return sum
}

// Record folds an entry into the per-account balance list.
func (t *Totals) Record(account string, c Classification, debit, credit decimal.Decimal) {
	b, ok := t.accounts[account]
	if !ok {
		b = &AccountBalance{Account: account, Classification: c}
		t.accounts[account] = b
	}
	b.Debit = b.Debit.Add(debit)
	b.Credit = b.Credit.Add(credit)
}

// Account looks up a per-account balance by normalized name (see
// NormalizeName). When several spellings of the same name exist their
// balances are combined.
func (t *Totals) Account(name string) (AccountBalance, bool) {
	var found bool
	var out AccountBalance
	want := NormalizeName(name)
	for _, b := range t.Accounts() {
		if NormalizeName(b.Account) != want {
			continue
		}
		if !found {
			out = b
			found = true
			continue
		}
		out.Debit = out.Debit.Add(b.Debit)
		out.Credit = out.Credit.Add(b.Credit)
	}
	return out, found
}

// Accounts returns every per-account balance sorted by account name.
func (t *Totals) Accounts() []AccountBalance {
	out := make([]AccountBalance, 0, len(t.accounts))
	for _, b := range t.accounts {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Account < out[j].Account })
	return out
}

// UnmappedAccounts returns the balances that did not resolve to a category.
func (t *Totals) UnmappedAccounts() []AccountBalance {
	var out []AccountBalance
	for _, b := range t.Accounts() {
		if !b.Classification.IsMapped() {
			out = append(out, b)
		}
	}
	return out
}
