package accounts

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fiscmind/fiscmind/internal/model"
)

// Source says which resolution step classified an account.
type Source string

const (
	SourceExact    Source = "exact"
	SourceFolded   Source = "case-insensitive"
	SourceRule     Source = "rule"
	SourceUnmapped Source = "unmapped"
)

// Resolution is a classification together with how it was found.
type Resolution struct {
	Classification model.Classification
	Source         Source
	Rule           string // rule name when Source is SourceRule
}

// Chart is an immutable chart of accounts plus the keyword heuristic used
// for names the table does not list. It is safe for concurrent use.
type Chart struct {
	accounts []model.Account
	exact    map[string]model.Account
	folded   map[string]model.Account
	rules    []Rule
}

// NewChart builds a Chart from a table of accounts and an ordered rule list.
// Missing normal-balance sides are filled in from the major category.
func NewChart(accounts []model.Account, rules []Rule) *Chart {
	c := &Chart{
		accounts: make([]model.Account, 0, len(accounts)),
		exact:    make(map[string]model.Account, len(accounts)),
		folded:   make(map[string]model.Account, len(accounts)),
		rules:    append([]Rule(nil), rules...),
	}
	for _, a := range accounts {
		if a.Classification.Side == "" {
			a.Classification.Side = model.NormalSide(a.Classification.Major)
			if a.Classification.Contra {
				a.Classification.Side = opposite(a.Classification.Side)
			}
		}
		c.accounts = append(c.accounts, a)
		c.exact[a.Name] = a
		c.folded[Normalize(a.Name)] = a
	}
	return c
}

// DefaultChart returns the built-in chart with the built-in rules.
func DefaultChart() *Chart {
	return NewChart(DefaultAccounts(), DefaultRules())
}

// Classify maps an account name or code to its classification. It never
// fails: names nothing recognizes resolve to model.Unmapped.
func (c *Chart) Classify(name string) model.Classification {
	return c.Resolve(name).Classification
}

// Resolve classifies a name and reports which step matched: exact table
// lookup, case-insensitive table lookup, keyword rule, or none.
func (c *Chart) Resolve(name string) Resolution {
	if a, ok := c.exact[name]; ok {
		return Resolution{Classification: a.Classification, Source: SourceExact}
	}
	norm := Normalize(name)
	if a, ok := c.folded[norm]; ok {
		return Resolution{Classification: a.Classification, Source: SourceFolded}
	}
	if norm != "" {
		for _, r := range c.rules {
			if r.Match(norm) {
				return Resolution{Classification: r.Apply(norm), Source: SourceRule, Rule: r.Name}
			}
		}
	}
	return Resolution{Classification: model.Unmapped, Source: SourceUnmapped}
}

// All returns all table accounts.
func (c *Chart) All() []model.Account {
	return c.accounts
}

// Get returns a table account by exact name.
func (c *Chart) Get(name string) (model.Account, bool) {
	a, ok := c.exact[name]
	return a, ok
}

// ByMajor returns all table accounts of the given major category.
func (c *Chart) ByMajor(major model.MajorCategory) []model.Account {
	var result []model.Account
	for _, a := range c.accounts {
		if a.Classification.Major == major {
			result = append(result, a)
		}
	}
	return result
}

// Path returns the chart-of-accounts location inside a project directory.
func Path(repoRoot string) string {
	return filepath.Join(repoRoot, "accounts", "chart-of-accounts.csv")
}

// Load reads a chart-of-accounts CSV and combines it with the default rules.
func Load(path string) (*Chart, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return NewChart(accts, DefaultRules()), nil
}

// Save writes the chart's table accounts to path, creating parent dirs.
func (c *Chart) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, c.accounts); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}

func opposite(s model.Side) model.Side {
	if s == model.SideDebit {
		return model.SideCredit
	}
	return model.SideDebit
}
