package statements

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiscmind/fiscmind/internal/accounts"
	"github.com/fiscmind/fiscmind/internal/model"
)

func kinds(issues []Issue) map[IssueKind]int {
	out := make(map[IssueKind]int)
	for _, i := range issues {
		out[i.Kind]++
	}
	return out
}

func TestCheck_Clean(t *testing.T) {
	entries := []model.TrialBalanceEntry{
		debit("Cash", "100.50"),
		credit("Sales Revenue", "100.50"),
	}
	assert.Empty(t, Check(entries, accounts.DefaultChart()))
}

func TestCheck_Sample(t *testing.T) {
	issues := Check(sample(), accounts.DefaultChart())

	require.Len(t, issues, 1, "an unbalanced trial balance is not an issue")
	assert.Equal(t, IssueUnmapped, issues[0].Kind)
	assert.Equal(t, "Mystery Account", issues[0].Account)
}

func TestCheck_EntryProblems(t *testing.T) {
	entries := []model.TrialBalanceEntry{
		{Account: "Cash", Debit: dec("10"), Credit: dec("4")},
		debit("cash", "0.125"),
		credit("Sales Revenue", "6.125"),
	}
	issues := Check(entries, accounts.DefaultChart())

	got := kinds(issues)
	assert.Equal(t, 1, got[IssueBothSides])
	assert.Equal(t, 2, got[IssuePrecision])
	assert.Equal(t, 1, got[IssueDuplicate], "names are compared normalized")
	assert.Zero(t, got[IssueUnmapped])
}

func TestCheck_DuplicateAcrossCurrencies(t *testing.T) {
	entries := []model.TrialBalanceEntry{
		debit("Cash", "100"),
		{Account: "Cash", Debit: dec("50"), Currency: "eur"},
		{Account: "CASH", Debit: dec("5"), Currency: "EUR"},
	}
	issues := Check(entries, accounts.DefaultChart())

	require.Len(t, issues, 1)
	assert.Equal(t, IssueDuplicate, issues[0].Kind)
	assert.Equal(t, "CASH", issues[0].Account)
}

func TestIssue_Error(t *testing.T) {
	iss := Issue{Kind: IssueUnmapped, Account: "Suspense", Description: "no classification"}
	assert.Equal(t, "unmapped [Suspense]: no classification", iss.Error())
}
