package model

import (
	"fmt"
	"strings"
	"unicode"
)

// NormalizeName lowercases an account name, folds Unicode dashes to '-' and
// collapses whitespace.
func NormalizeName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '‐', '‑', '‒', '–', '—', '−':
			return '-'
		}
		return unicode.ToLower(r)
	}, name)
	return strings.Join(strings.Fields(name), " ")
}

// MajorCategory classifies accounts into financial-statement categories.
type MajorCategory string

const (
	MajorAsset     MajorCategory = "asset"
	MajorLiability MajorCategory = "liability"
	MajorEquity    MajorCategory = "equity"
	MajorRevenue   MajorCategory = "revenue"
	MajorExpense   MajorCategory = "expense"
	MajorUnmapped  MajorCategory = "unmapped"
)

// SubCategory splits assets and liabilities by liquidity.
type SubCategory string

const (
	SubNone       SubCategory = ""
	SubCurrent    SubCategory = "current"
	SubNoncurrent SubCategory = "noncurrent"
)

// Side is the normal balance side of an account.
type Side string

const (
	SideDebit  Side = "debit"
	SideCredit Side = "credit"
)

// Classification is the result of looking up an account in the chart.
type Classification struct {
	Major  MajorCategory `json:"major"`
	Sub    SubCategory   `json:"sub,omitempty"`
	Side   Side          `json:"normal_balance"`
	Contra bool          `json:"contra,omitempty"` // reduces its major category instead of adding to it
}

// Unmapped is the classification of accounts the chart cannot resolve.
var Unmapped = Classification{Major: MajorUnmapped, Side: SideDebit}

// IsMapped reports whether the classification resolved to a real category.
func (c Classification) IsMapped() bool {
	return c.Major != MajorUnmapped && c.Major != ""
}

// String returns "asset:current", "asset:noncurrent (contra)", "revenue", ...
func (c Classification) String() string {
	s := string(c.Major)
	if c.Sub != SubNone {
		s += ":" + string(c.Sub)
	}
	if c.Contra {
		s += " (contra)"
	}
	return s
}

// NormalSide returns the normal balance side for a major category.
// Asset and expense accounts are debit-normal; liability, equity and revenue
// accounts are credit-normal. Unmapped accounts are carried debit-positive.
func NormalSide(major MajorCategory) Side {
	switch major {
	case MajorLiability, MajorEquity, MajorRevenue:
		return SideCredit
	default:
		return SideDebit
	}
}

// Account is a row in chart-of-accounts.csv.
type Account struct {
	Name           string
	Classification Classification
	Description    string
}

// ParseMajorCategory parses a category name (case-insensitive).
func ParseMajorCategory(s string) (MajorCategory, error) {
	switch m := MajorCategory(strings.ToLower(strings.TrimSpace(s))); m {
	case MajorAsset, MajorLiability, MajorEquity, MajorRevenue, MajorExpense, MajorUnmapped:
		return m, nil
	default:
		return "", fmt.Errorf("unknown major category %q", s)
	}
}

// ParseSubCategory parses a sub-category name; empty is allowed.
func ParseSubCategory(s string) (SubCategory, error) {
	switch sub := SubCategory(strings.ToLower(strings.TrimSpace(s))); sub {
	case SubNone, SubCurrent, SubNoncurrent:
		return sub, nil
	case "non-current":
		return SubNoncurrent, nil
	default:
		return "", fmt.Errorf("unknown sub category %q", s)
	}
}

// ParseSide parses "debit" or "credit" (case-insensitive).
func ParseSide(s string) (Side, error) {
	switch side := Side(strings.ToLower(strings.TrimSpace(s))); side {
	case SideDebit, SideCredit:
		return side, nil
	default:
		return "", fmt.Errorf("unknown normal balance %q", s)
	}
}
