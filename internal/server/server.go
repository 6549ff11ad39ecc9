// Package server exposes rate lookup and statement generation over HTTP.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/fiscmind/fiscmind/internal/buildinfo"
	"github.com/fiscmind/fiscmind/internal/currency"
	"github.com/fiscmind/fiscmind/internal/metrics"
	"github.com/fiscmind/fiscmind/internal/model"
	"github.com/fiscmind/fiscmind/internal/statements"
)

// defaultBase is the rate base used when a request names none.
const defaultBase = "USD"

// maxBody bounds request bodies.
const maxBody = 10 << 20

// Options configures the HTTP surface.
type Options struct {
	Generator *statements.Generator
	Fetcher   currency.Fetcher // nil disables /api/rates

	// Defaults for requests that leave them out.
	Standard  string
	Currency  string
	Overrides map[string]model.CashFlowSection

	Logger   zerolog.Logger
	Metrics  *metrics.Metrics    // optional
	Gatherer prometheus.Gatherer // nil disables /metrics
}

type server struct {
	opts Options
	log  zerolog.Logger
}

// New returns the handler serving every fiscmind endpoint.
func New(opts Options) http.Handler {
	s := &server{opts: opts, log: opts.Logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/rates", s.handleRates)
	mux.HandleFunc("POST /api/statements", s.handleStatements)
	if opts.Gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}
	return mux
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
