package statements

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fiscmind/fiscmind/internal/model"
)

// Summary maps a classification key to the debit minus credit total of the
// entries under it. Keys are a major category ("asset") and, where a
// sub-category applies, "major:sub" ("asset:current").
type Summary map[string]decimal.Decimal

// Summarize totals entries by classification without applying normal
// balance signs. Unmapped entries are collected under "unmapped".
func Summarize(entries []model.TrialBalanceEntry, cls Classifier) Summary {
	s := make(Summary)
	for _, e := range entries {
		c := cls.Classify(e.Account)
		net := e.Net()
		key := string(c.Major)
		s[key] = s[key].Add(net)
		if c.IsMapped() && c.Sub != model.SubNone {
			sub := key + ":" + string(c.Sub)
			s[sub] = s[sub].Add(net)
		}
	}
	return s
}

// Keys returns the summary keys in sorted order.
func (s Summary) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
