package statements

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fiscmind/fiscmind/internal/accounts"
	"github.com/fiscmind/fiscmind/internal/currency"
	"github.com/fiscmind/fiscmind/internal/model"
)

// IssueKind names a trial balance problem found by Check.
type IssueKind string

const (
	IssueBothSides IssueKind = "both-sides"
	IssuePrecision IssueKind = "precision"
	IssueDuplicate IssueKind = "duplicate"
	IssueUnmapped  IssueKind = "unmapped"
)

// Issue describes one problem with a trial balance line. None of them stop
// generation; they are reported so the input can be fixed. Whether debits
// equal credits is not checked.
type Issue struct {
	Kind        IssueKind
	Account     string
	Description string
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s [%s]: %s", i.Kind, i.Account, i.Description)
}

var hundred = decimal.NewFromInt(100)

// Check inspects entries before generation. An account repeated in a
// different currency is not a duplicate.
func Check(entries []model.TrialBalanceEntry, cls Classifier) []Issue {
	var issues []Issue
	seen := make(map[string]int)

	for _, e := range entries {
		code := currency.Code(e.Currency)
		if !e.Debit.IsZero() && !e.Credit.IsZero() {
			issues = append(issues, Issue{
				Kind:        IssueBothSides,
				Account:     e.Account,
				Description: fmt.Sprintf("has both debit (%s) and credit (%s); netted", e.Debit.StringFixed(2), e.Credit.StringFixed(2)),
			})
		}
		for _, amt := range []decimal.Decimal{e.Debit, e.Credit} {
			if scaled := amt.Mul(hundred); !scaled.Equal(scaled.Floor()) {
				issues = append(issues, Issue{
					Kind:        IssuePrecision,
					Account:     e.Account,
					Description: fmt.Sprintf("amount %s has more than 2 decimal places", amt),
				})
			}
		}

		key := accounts.Normalize(e.Account) + "\x00" + code
		seen[key]++
		if seen[key] == 2 {
			issues = append(issues, Issue{
				Kind:        IssueDuplicate,
				Account:     e.Account,
				Description: "appears more than once; lines are combined",
			})
		}

		if !cls.Classify(e.Account).IsMapped() {
			issues = append(issues, Issue{
				Kind:        IssueUnmapped,
				Account:     e.Account,
				Description: "no classification; excluded from every statement",
			})
		}
	}

	return issues
}
