// Package metrics exposes Prometheus metrics for statement generation.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fiscmind/fiscmind/internal/currency"
	"github.com/fiscmind/fiscmind/internal/model"
)

const (
	metricPrefix = "fiscmind_"

	resultSuccess = "success"
	resultError   = "error"

	reasonInvalidStandard = "invalid_standard"
	reasonMissingRate     = "missing_rate"
	reasonOther           = "other"
)

// Metrics records generation, rate fetch and export outcomes.
type Metrics struct {
	generateTotal   *prometheus.CounterVec
	generateLatency *prometheus.HistogramVec
	generateErrors  *prometheus.CounterVec
	rateFetchTotal  *prometheus.CounterVec
	unmappedTotal   prometheus.Counter
	exportTotal     *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		generateTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "statement_generate_total",
				Help: "Total statement generations by standard and result",
			},
			[]string{"standard", "result"},
		),
		generateLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "statement_generate_latency_seconds",
				Help:    "Statement generation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		),
		generateErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "statement_generate_errors_total",
				Help: "Total failed statement generations by reason",
			},
			[]string{"reason"},
		),
		rateFetchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "rate_fetch_total",
				Help: "Total exchange rate fetches by base currency and result",
			},
			[]string{"base", "result"},
		),
		unmappedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "unmapped_accounts_total",
				Help: "Total accounts that resolved to no category",
			},
		),
		exportTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "statement_export_total",
				Help: "Total statement exports by format and result",
			},
			[]string{"format", "result"},
		),
	}
	reg.MustRegister(
		m.generateTotal,
		m.generateLatency,
		m.generateErrors,
		m.rateFetchTotal,
		m.unmappedTotal,
		m.exportTotal,
	)
	return m
}

func result(err error) string {
	if err != nil {
		return resultError
	}
	return resultSuccess
}

func reason(err error) string {
	var ise *model.InvalidStandardError
	var mre *currency.MissingRateError
	switch {
	case errors.As(err, &ise):
		return reasonInvalidStandard
	case errors.As(err, &mre):
		return reasonMissingRate
	default:
		return reasonOther
	}
}

// ObserveGeneration records one generation. Unrecognized standards are
// labeled "invalid" to keep label cardinality bounded.
func (m *Metrics) ObserveGeneration(standard string, elapsed time.Duration, err error) {
	std, perr := model.ParseStandard(standard)
	label := string(std)
	if perr != nil {
		label = "invalid"
	}
	m.generateTotal.WithLabelValues(label, result(err)).Inc()
	m.generateLatency.WithLabelValues(result(err)).Observe(elapsed.Seconds())
	if err != nil {
		m.generateErrors.WithLabelValues(reason(err)).Inc()
	}
}

// ObserveRateFetch records one rate table fetch.
func (m *Metrics) ObserveRateFetch(base string, err error) {
	m.rateFetchTotal.WithLabelValues(currency.Code(base), result(err)).Inc()
}

// ObserveUnmapped adds the number of unmapped accounts in one generation.
func (m *Metrics) ObserveUnmapped(accounts int) {
	m.unmappedTotal.Add(float64(accounts))
}

// ObserveExport records one rendered export.
func (m *Metrics) ObserveExport(format string, err error) {
	m.exportTotal.WithLabelValues(format, result(err)).Inc()
}
