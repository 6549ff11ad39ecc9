package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/fiscmind/fiscmind/internal/currency"
	"github.com/fiscmind/fiscmind/internal/importer"
	"github.com/fiscmind/fiscmind/internal/model"
	"github.com/fiscmind/fiscmind/internal/render"
	"github.com/fiscmind/fiscmind/internal/statements"
)

type statementsRequest struct {
	Entries           []model.TrialBalanceEntry        `json:"entries"`
	Standard          string                           `json:"standard"`
	ReportingCurrency string                           `json:"reporting_currency"`
	Rates             currency.Rates                   `json:"rates,omitempty"`
	ClassifyOverrides map[string]model.CashFlowSection `json:"classify_overrides,omitempty"`
}

// handleStatements generates a bundle from a JSON request, or from a CSV
// trial balance body with the options in the query string. ?format= picks
// the response encoding (JSON by default).
func (s *server) handleStatements(w http.ResponseWriter, r *http.Request) {
	format := render.FormatJSON
	if f := r.URL.Query().Get("format"); f != "" {
		parsed, err := render.ParseFormat(f)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		format = parsed
	}

	req, err := s.decodeRequest(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.applyDefaults(&req)

	bundle, err := s.opts.Generator.Generate(r.Context(), req.Entries, statements.Options{
		Standard:          req.Standard,
		ReportingCurrency: req.ReportingCurrency,
		Rates:             req.Rates,
		ClassifyOverrides: req.ClassifyOverrides,
	})
	if err != nil {
		status := statusFor(err)
		s.log.Warn().Err(err).Int("status", status).Msg("generating statements")
		writeError(w, status, err.Error())
		return
	}

	var buf bytes.Buffer
	err = render.Render(&buf, bundle, format)
	if s.opts.Metrics != nil {
		s.opts.Metrics.ObserveExport(string(format), err)
	}
	if err != nil {
		s.log.Error().Err(err).Str("format", string(format)).Msg("rendering statements")
		writeError(w, http.StatusInternalServerError, "rendering failed")
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	if format != render.FormatJSON {
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="statements%s"`, format.Extension()))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *server) decodeRequest(w http.ResponseWriter, r *http.Request) (statementsRequest, error) {
	body := http.MaxBytesReader(w, r.Body, maxBody)
	defer body.Close()

	if strings.HasPrefix(r.Header.Get("Content-Type"), "text/csv") {
		entries, err := (&importer.CSVParser{}).Parse(body)
		if err != nil {
			return statementsRequest{}, err
		}
		q := r.URL.Query()
		return statementsRequest{
			Entries:           entries,
			Standard:          q.Get("standard"),
			ReportingCurrency: q.Get("currency"),
		}, nil
	}

	var req statementsRequest
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return statementsRequest{}, fmt.Errorf("invalid json: %w", err)
	}
	for i, e := range req.Entries {
		if strings.TrimSpace(e.Account) == "" {
			return statementsRequest{}, fmt.Errorf("entry %d: empty account", i)
		}
		if e.Debit.IsNegative() || e.Credit.IsNegative() {
			return statementsRequest{}, fmt.Errorf("entry %d: negative amount", i)
		}
	}
	return req, nil
}

func (s *server) applyDefaults(req *statementsRequest) {
	if req.Standard == "" {
		req.Standard = s.opts.Standard
	}
	if req.ReportingCurrency == "" {
		req.ReportingCurrency = s.opts.Currency
	}
	if req.ClassifyOverrides == nil {
		req.ClassifyOverrides = s.opts.Overrides
	}
}

func statusFor(err error) int {
	var ise *model.InvalidStandardError
	var mre *currency.MissingRateError
	switch {
	case errors.As(err, &ise):
		return http.StatusBadRequest
	case errors.As(err, &mre):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}
