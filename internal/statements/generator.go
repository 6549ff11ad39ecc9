package statements

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/fiscmind/fiscmind/internal/currency"
	"github.com/fiscmind/fiscmind/internal/model"
)

// Recorder receives generation metrics.
type Recorder interface {
	ObserveGeneration(standard string, elapsed time.Duration, err error)
	ObserveRateFetch(base string, err error)
	ObserveUnmapped(accounts int)
}

type nopRecorder struct{}

func (nopRecorder) ObserveGeneration(string, time.Duration, error) {}
func (nopRecorder) ObserveRateFetch(string, error) {}
func (nopRecorder) ObserveUnmapped(int) {}

// Options configures one generation.
type Options struct {
	Standard          string
	ReportingCurrency string
	// Rates is used as is when set; otherwise rates are fetched once for
	// the reporting currency, and only if some entry needs converting.
	Rates             currency.Rates
	ClassifyOverrides map[string]model.CashFlowSection
}

// Generator produces statement bundles. It holds no mutable state and is
// safe for concurrent use.
type Generator struct {
	chart   Classifier
	fetcher currency.Fetcher
	log     zerolog.Logger
	metrics Recorder
}

// Option configures a Generator.
type Option func(*Generator)

// WithRateFetcher sets the source of rate tables.
func WithRateFetcher(f currency.Fetcher) Option {
	return func(g *Generator) { g.fetcher = f }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(g *Generator) { g.log = l }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(r Recorder) Option {
	return func(g *Generator) {
		if r != nil {
			g.metrics = r
		}
	}
}

// NewGenerator returns a generator classifying accounts with chart.
func NewGenerator(chart Classifier, opts ...Option) *Generator {
	g := &Generator{chart: chart, log: zerolog.Nop(), metrics: nopRecorder{}}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate converts, aggregates and assembles entries into a bundle. It
// returns either a complete bundle or an error: *model.InvalidStandardError
// for an unknown standard, *currency.MissingRateError when an entry cannot
// be converted, or a wrapped fetch error.
func (g *Generator) Generate(ctx context.Context, entries []model.TrialBalanceEntry, opts Options) (*model.Bundle, error) {
	start := time.Now()
	b, err := g.generate(ctx, entries, opts)
	g.metrics.ObserveGeneration(opts.Standard, time.Since(start), err)
	if err != nil {
		g.log.Debug().Err(err).Msg("generation failed")
		return nil, err
	}
	return b, nil
}

func (g *Generator) generate(ctx context.Context, entries []model.TrialBalanceEntry, opts Options) (*model.Bundle, error) {
	std, err := model.ParseStandard(opts.Standard)
	if err != nil {
		return nil, err
	}
	reporting := currency.Code(opts.ReportingCurrency)

	converted, err := g.normalize(ctx, entries, reporting, opts.Rates)
	if err != nil {
		return nil, err
	}

	totals := Aggregate(converted, g.chart)
	unmapped := totals.UnmappedAccounts()
	g.metrics.ObserveUnmapped(len(unmapped))
	g.log.Debug().
		Int("entries", len(entries)).
		Str("standard", string(std)).
		Str("currency", reporting).
		Int("unmapped", len(unmapped)).
		Msg("aggregated trial balance")

	b := Assemble(totals, std, opts.ClassifyOverrides)
	b.Currency = reporting
	return b, nil
}

// Assemble runs every statement builder over one set of totals.
func Assemble(t *model.Totals, std model.Standard, overrides map[string]model.CashFlowSection) *model.Bundle {
	is := BuildIncomeStatement(t)
	return &model.Bundle{
		Standard:        std,
		BalanceSheet:    BuildBalanceSheet(t, std),
		IncomeStatement: is,
		SOCIE:           BuildSOCIE(t, is),
		CashFlow:        BuildCashFlow(t, is, std, overrides),
		Unmapped: model.UnmappedSummary{
			Total:    t.Unmapped,
			Accounts: t.UnmappedAccounts(),
		},
	}
}

// normalize converts every entry into the reporting currency. Entries
// without a currency are already in it. The input slice is not modified.
func (g *Generator) normalize(ctx context.Context, entries []model.TrialBalanceEntry, reporting string, rates currency.Rates) ([]model.TrialBalanceEntry, error) {
	out := make([]model.TrialBalanceEntry, len(entries))
	copy(out, entries)
	if reporting == "" {
		return out, nil
	}

	var foreign string
	for _, e := range out {
		if c := currency.Code(e.Currency); c != "" && c != reporting {
			foreign = c
			break
		}
	}
	if foreign == "" {
		return out, nil
	}

	if rates == nil {
		if g.fetcher == nil {
			return nil, fmt.Errorf("converting %s entries: %w", foreign, &currency.MissingRateError{Currency: foreign})
		}
		fetched, err := g.fetcher.FetchRates(ctx, reporting)
		g.metrics.ObserveRateFetch(reporting, err)
		if err != nil {
			return nil, fmt.Errorf("fetching %s rates: %w", reporting, err)
		}
		g.log.Debug().Str("base", reporting).Int("rates", len(fetched)).Msg("fetched rates")
		rates = fetched
	}
	rates = rates.Canonical()

	for i, e := range out {
		from := currency.Code(e.Currency)
		if from == "" || from == reporting {
			continue
		}
		debit, err := currency.Convert(e.Debit, from, reporting, rates)
		if err != nil {
			return nil, fmt.Errorf("converting %q: %w", e.Account, err)
		}
		credit, err := currency.Convert(e.Credit, from, reporting, rates)
		if err != nil {
			return nil, fmt.Errorf("converting %q: %w", e.Account, err)
		}
		out[i].Debit, out[i].Credit, out[i].Currency = debit, credit, reporting
	}
	return out, nil
}
