package server

import (
	"net/http"

	"github.com/fiscmind/fiscmind/internal/config"
	"github.com/fiscmind/fiscmind/internal/currency"
)

// handleRates proxies the configured FX endpoint and returns the flat rate
// table for ?base= (USD when absent). Unknown ISO 4217 codes are rejected
// before any fetch.
func (s *server) handleRates(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if s.opts.Fetcher == nil {
		writeError(w, http.StatusInternalServerError, "FX_API_URL not configured")
		return
	}

	base := currency.Code(r.URL.Query().Get("base"))
	if base == "" {
		base = defaultBase
	}
	if err := config.ValidCurrency(base); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rates, err := s.opts.Fetcher.FetchRates(r.Context(), base)
	if s.opts.Metrics != nil {
		s.opts.Metrics.ObserveRateFetch(base, err)
	}
	if err != nil {
		s.log.Error().Err(err).Str("base", base).Msg("fetching rates")
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rates)
}
