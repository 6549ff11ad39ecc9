package model

import (
	"fmt"
	"strings"
)

// Standard selects the presentation rules used when assembling statements.
type Standard string

const (
	StandardIFRS Standard = "IFRS"
	StandardASC  Standard = "ASC"
)

// InvalidStandardError reports a presentation standard other than IFRS or ASC.
type InvalidStandardError struct {
	Value string
}

func (e *InvalidStandardError) Error() string {
	return fmt.Sprintf("invalid presentation standard %q (want IFRS or ASC)", e.Value)
}

// ParseStandard parses "IFRS" or "ASC" (case-insensitive). There is no
// default: an empty value is rejected like any other unknown value.
func ParseStandard(s string) (Standard, error) {
	switch Standard(strings.ToUpper(strings.TrimSpace(s))) {
	case StandardIFRS:
		return StandardIFRS, nil
	case StandardASC:
		return StandardASC, nil
	default:
		return "", &InvalidStandardError{Value: s}
	}
}

// CashFlowSection is a section of the cash flow statement.
type CashFlowSection string

const (
	SectionOperating CashFlowSection = "operating"
	SectionInvesting CashFlowSection = "investing"
	SectionFinancing CashFlowSection = "financing"
)

// ParseCashFlowSection parses a section name (case-insensitive).
func ParseCashFlowSection(s string) (CashFlowSection, error) {
	switch sec := CashFlowSection(strings.ToLower(strings.TrimSpace(s))); sec {
	case SectionOperating, SectionInvesting, SectionFinancing:
		return sec, nil
	default:
		return "", fmt.Errorf("unknown cash flow section %q", s)
	}
}
