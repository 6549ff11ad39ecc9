package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestParseStandard(t *testing.T) {
	tests := []struct {
		in   string
		want Standard
	}{
		{"IFRS", StandardIFRS},
		{"ifrs", StandardIFRS},
		{" ASC ", StandardASC},
		{"asc", StandardASC},
	}
	for _, tt := range tests {
		got, err := ParseStandard(tt.in)
		require.NoError(t, err, "ParseStandard(%q)", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseStandard_Invalid(t *testing.T) {
	for _, in := range []string{"", "GAAP", "IFRS16"} {
		_, err := ParseStandard(in)
		var ise *InvalidStandardError
		require.ErrorAs(t, err, &ise, "ParseStandard(%q)", in)
		assert.Equal(t, in, ise.Value)
	}
}

func TestNormalSide(t *testing.T) {
	assert.Equal(t, SideDebit, NormalSide(MajorAsset))
	assert.Equal(t, SideDebit, NormalSide(MajorExpense))
	assert.Equal(t, SideCredit, NormalSide(MajorLiability))
	assert.Equal(t, SideCredit, NormalSide(MajorEquity))
	assert.Equal(t, SideCredit, NormalSide(MajorRevenue))
	assert.Equal(t, SideDebit, NormalSide(MajorUnmapped))
}

func TestClassificationString(t *testing.T) {
	assert.Equal(t, "asset:current", Classification{Major: MajorAsset, Sub: SubCurrent}.String())
	assert.Equal(t, "asset:noncurrent (contra)", Classification{Major: MajorAsset, Sub: SubNoncurrent, Contra: true}.String())
	assert.Equal(t, "revenue", Classification{Major: MajorRevenue}.String())
	assert.False(t, Unmapped.IsMapped())
}

func TestParseCategories(t *testing.T) {
	m, err := ParseMajorCategory("Liability")
	require.NoError(t, err)
	assert.Equal(t, MajorLiability, m)

	sub, err := ParseSubCategory("Non-Current")
	require.NoError(t, err)
	assert.Equal(t, SubNoncurrent, sub)

	sub, err = ParseSubCategory("")
	require.NoError(t, err)
	assert.Equal(t, SubNone, sub)

	_, err = ParseSubCategory("short")
	assert.Error(t, err)

	side, err := ParseSide("CREDIT")
	require.NoError(t, err)
	assert.Equal(t, SideCredit, side)

	sec, err := ParseCashFlowSection("Investing")
	require.NoError(t, err)
	assert.Equal(t, SectionInvesting, sec)
	_, err = ParseCashFlowSection("other")
	assert.Error(t, err)
}

func TestTotalsDebitBasis(t *testing.T) {
	tot := NewTotals()
	tot.Add(MajorAsset, SubCurrent, dec("100"))
	tot.Add(MajorLiability, SubCurrent, dec("40"))
	tot.Add(MajorRevenue, SubNone, dec("70"))
	tot.Add(MajorExpense, SubNone, dec("10"))

	// 100 - 40 - 70 + 10
	assert.True(t, tot.DebitBasis().Equal(dec("0")), "got %s", tot.DebitBasis())
	assert.True(t, tot.Major(MajorAsset).Equal(dec("100")))
	assert.True(t, tot.Bucket(MajorAsset, SubNoncurrent).IsZero())
}

func TestTotalsAccountLookup(t *testing.T) {
	tot := NewTotals()
	c := Classification{Major: MajorRevenue, Side: SideCredit}
	tot.Record("Interest Income", c, decimal.Zero, dec("30"))
	tot.Record("interest income", c, dec("5"), decimal.Zero)
	tot.Record("Mystery", Unmapped, dec("12"), decimal.Zero)

	b, ok := tot.Account("Interest Income")
	require.True(t, ok)
	assert.True(t, b.Credit.Equal(dec("30")))
	assert.True(t, b.Debit.Equal(dec("5")))

	b, ok = tot.Account("INTEREST INCOME")
	require.True(t, ok)
	assert.True(t, b.CashEffect().Equal(dec("25")), "got %s", b.CashEffect())

	tot.Record("Dividends Paid", Classification{Major: MajorEquity, Side: SideCredit}, dec("7"), decimal.Zero)
	b, ok = tot.Account("dividends   PAID")
	require.True(t, ok, "whitespace collapses")
	assert.True(t, b.Debit.Equal(dec("7")))

	tot.Record("Long-term Loan", Classification{Major: MajorLiability, Sub: SubNoncurrent, Side: SideCredit}, decimal.Zero, dec("9"))
	b, ok = tot.Account("Long\u2013Term  Loan")
	require.True(t, ok, "Unicode dashes fold to '-'")
	assert.True(t, b.Credit.Equal(dec("9")))

	_, ok = tot.Account("missing")
	assert.False(t, ok)

	unmapped := tot.UnmappedAccounts()
	require.Len(t, unmapped, 1)
	assert.Equal(t, "Mystery", unmapped[0].Account)
	assert.Len(t, tot.Accounts(), 5)
}

func TestEntryNet(t *testing.T) {
	e := TrialBalanceEntry{Account: "Cash", Debit: dec("50"), Credit: dec("20")}
	assert.True(t, e.Net().Equal(dec("30")))
}
