package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fiscmind/fiscmind/internal/accounts"
	"github.com/fiscmind/fiscmind/internal/config"
	"github.com/fiscmind/fiscmind/internal/currency"
	"github.com/fiscmind/fiscmind/internal/gitops"
)

// project is a fiscmind directory: its config and chart of accounts. Both
// are optional on disk; a bare directory uses the defaults.
type project struct {
	root  string
	cfg   *config.Config
	chart *accounts.Chart
}

func openProject(dir string) (*project, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(config.Path(root))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		cfg = config.Default("", "")
	case err != nil:
		return nil, err
	}
	cfg.ApplyEnv(os.LookupEnv)

	chartPath := cfg.Chart.Path
	if chartPath == "" {
		chartPath = accounts.Path(root)
	} else if !filepath.IsAbs(chartPath) {
		chartPath = filepath.Join(root, chartPath)
	}
	chart, err := accounts.Load(chartPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		chart = accounts.DefaultChart()
	case err != nil:
		return nil, err
	}

	return &project{root: root, cfg: cfg, chart: chart}, nil
}

// fetcher returns the configured FX source, or nil when there is none.
func (p *project) fetcher() currency.Fetcher {
	if p.cfg.Rates.URL == "" {
		return nil
	}
	return currency.NewHTTPFetcher(p.cfg.Rates.URL)
}

// repo returns the project's git working tree, or an error if the project
// root is not one.
func (p *project) repo() (*gitops.Repo, error) {
	if !gitops.IsRepo(p.root) {
		return nil, fmt.Errorf("%s is not a git repository (run init --git)", p.root)
	}
	return &gitops.Repo{
		Dir:    p.root,
		Author: gitops.Author{Name: p.cfg.Git.AuthorName, Email: p.cfg.Git.AuthorEmail},
	}, nil
}

// applyOverrides folds name=section pairs from the command line into the
// config's cash flow overrides.
func (p *project) applyOverrides(pairs []string) error {
	for _, pair := range pairs {
		name, section, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return fmt.Errorf("invalid --override %q (want name=section)", pair)
		}
		if p.cfg.CashFlow.Overrides == nil {
			p.cfg.CashFlow.Overrides = make(map[string]string)
		}
		p.cfg.CashFlow.Overrides[strings.TrimSpace(name)] = strings.TrimSpace(section)
	}
	return nil
}
