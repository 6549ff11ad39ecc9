package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiscmind/fiscmind/internal/accounts"
	"github.com/fiscmind/fiscmind/internal/currency"
	"github.com/fiscmind/fiscmind/internal/metrics"
	"github.com/fiscmind/fiscmind/internal/model"
	"github.com/fiscmind/fiscmind/internal/statements"
)

type failingFetcher struct{}

func (failingFetcher) FetchRates(context.Context, string) (currency.Rates, error) {
	return nil, errors.New("upstream down")
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	if opts.Generator == nil {
		opts.Generator = statements.NewGenerator(accounts.DefaultChart())
	}
	srv := httptest.NewServer(New(opts))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func sampleEntries() []model.TrialBalanceEntry {
	return []model.TrialBalanceEntry{
		{Account: "Cash", Debit: dec("12500")},
		{Account: "Retained Earnings", Credit: dec("8000")},
		{Account: "Dividends", Debit: dec("1200")},
		{Account: "Share Capital", Credit: dec("10000")},
		{Account: "Sales Revenue", Credit: dec("42000")},
		{Account: "Salary Expense", Debit: dec("9000")},
		{Account: "Depreciation Expense", Debit: dec("2000")},
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, Options{})

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestRates(t *testing.T) {
	srv := newTestServer(t, Options{
		Fetcher: currency.StaticFetcher{"USD": dec("1"), "EUR": dec("0.9")},
	})

	resp, err := http.Get(srv.URL + "/api/rates?base=usd")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	var rates currency.Rates
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rates))
	assert.True(t, rates["EUR"].Equal(dec("0.9")))
}

func TestRates_NotConfigured(t *testing.T) {
	srv := newTestServer(t, Options{})

	resp, err := http.Get(srv.URL + "/api/rates")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FX_API_URL not configured")
}

func TestRates_UpstreamError(t *testing.T) {
	srv := newTestServer(t, Options{Fetcher: failingFetcher{}})

	resp, err := http.Get(srv.URL + "/api/rates?base=EUR")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestRates_InvalidBase(t *testing.T) {
	reg := prometheus.NewRegistry()
	srv := newTestServer(t, Options{Fetcher: failingFetcher{}, Metrics: metrics.New(reg), Gatherer: reg})

	for _, base := range []string{"XYZ", "usd1", "../admin"} {
		resp, err := http.Get(srv.URL + "/api/rates?base=" + url.QueryEscape(base))
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "base %q", base)
		assert.Contains(t, string(body), "unknown currency code")
	}

	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		assert.NotEqual(t, "fiscmind_rate_fetch_total", f.GetName(), "no fetch recorded for rejected bases")
	}
}

func TestStatements_JSON(t *testing.T) {
	srv := newTestServer(t, Options{})

	resp := postJSON(t, srv.URL+"/api/statements", statementsRequest{
		Entries:  sampleEntries(),
		Standard: "ASC",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var b model.Bundle
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&b))
	assert.Equal(t, model.StandardASC, b.Standard)
	assert.True(t, b.IncomeStatement.NetIncome.Equal(dec("31000")), "got %s", b.IncomeStatement.NetIncome)
	assert.True(t, b.SOCIE.EndingRetainedEarnings.Equal(dec("37800")), "got %s", b.SOCIE.EndingRetainedEarnings)
}

func TestStatements_DefaultStandard(t *testing.T) {
	srv := newTestServer(t, Options{Standard: "IFRS"})

	resp := postJSON(t, srv.URL+"/api/statements", statementsRequest{Entries: sampleEntries()})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var b model.Bundle
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&b))
	assert.Equal(t, model.StandardIFRS, b.Standard)
}

func TestStatements_Errors(t *testing.T) {
	srv := newTestServer(t, Options{})

	tests := []struct {
		name string
		body string
		want int
	}{
		{"invalid standard", `{"entries":[],"standard":"GAAP"}`, http.StatusBadRequest},
		{"missing standard", `{"entries":[]}`, http.StatusBadRequest},
		{"malformed json", `{"entries":`, http.StatusBadRequest},
		{"unknown field", `{"entries":[],"standard":"ASC","colour":"red"}`, http.StatusBadRequest},
		{"negative amount", `{"entries":[{"account":"Cash","debit":"-5"}],"standard":"ASC"}`, http.StatusBadRequest},
		{"empty account", `{"entries":[{"account":" ","debit":"5"}],"standard":"ASC"}`, http.StatusBadRequest},
		{
			"missing rate",
			`{"entries":[{"account":"Cash","debit":"5","currency":"EUR"}],"standard":"ASC","reporting_currency":"USD"}`,
			http.StatusUnprocessableEntity,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/api/statements", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.want, resp.StatusCode)

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestStatements_FetchFailure(t *testing.T) {
	gen := statements.NewGenerator(accounts.DefaultChart(), statements.WithRateFetcher(failingFetcher{}))
	srv := newTestServer(t, Options{Generator: gen})

	resp := postJSON(t, srv.URL+"/api/statements", statementsRequest{
		Entries:           []model.TrialBalanceEntry{{Account: "Cash", Debit: dec("5"), Currency: "EUR"}},
		Standard:          "ASC",
		ReportingCurrency: "USD",
	})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestStatements_CSVBody(t *testing.T) {
	gen := statements.NewGenerator(accounts.DefaultChart(),
		statements.WithRateFetcher(currency.StaticFetcher{"USD": dec("1"), "EUR": dec("0.8")}))
	srv := newTestServer(t, Options{Generator: gen})

	f, err := os.Open("../../testdata/trial-balance.csv")
	require.NoError(t, err)
	defer f.Close()

	resp, err := http.Post(srv.URL+"/api/statements?standard=asc&currency=usd", "text/csv", f)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var b model.Bundle
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&b))
	assert.Equal(t, "USD", b.Currency)
	assert.True(t, b.IncomeStatement.NetIncome.Equal(dec("9750")), "got %s", b.IncomeStatement.NetIncome)
	assert.True(t, b.CashFlow.Operating.Equal(dec("11750")), "got %s", b.CashFlow.Operating)
}

func TestStatements_Formats(t *testing.T) {
	srv := newTestServer(t, Options{Standard: "ASC"})

	tests := []struct {
		format      string
		contentType string
		extension   string
	}{
		{"csv", "text/csv", ".csv"},
		{"text", "text/plain", ".txt"},
		{"xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", ".xlsx"},
		{"pdf", "application/pdf", ".pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			resp := postJSON(t, srv.URL+"/api/statements?format="+tt.format, statementsRequest{Entries: sampleEntries()})
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), tt.contentType), resp.Header.Get("Content-Type"))
			assert.Contains(t, resp.Header.Get("Content-Disposition"), "statements"+tt.extension)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.NotEmpty(t, body)
		})
	}

	resp := postJSON(t, srv.URL+"/api/statements?format=docx", statementsRequest{Entries: sampleEntries()})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	gen := statements.NewGenerator(accounts.DefaultChart(), statements.WithMetrics(m))
	srv := newTestServer(t, Options{Generator: gen, Metrics: m, Gatherer: reg, Standard: "ASC"})

	resp := postJSON(t, srv.URL+"/api/statements", statementsRequest{Entries: sampleEntries()})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	mresp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer mresp.Body.Close()
	body, err := io.ReadAll(mresp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `fiscmind_statement_generate_total{result="success",standard="ASC"} 1`)
	assert.Contains(t, string(body), `fiscmind_statement_export_total{format="json",result="success"} 1`)
}

func TestMetricsEndpoint_Disabled(t *testing.T) {
	srv := newTestServer(t, Options{})

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
