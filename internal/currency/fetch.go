package currency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// Fetcher supplies a rate table relative to a base currency.
type Fetcher interface {
	FetchRates(ctx context.Context, base string) (Rates, error)
}

// HTTPFetcher fetches rate tables from a JSON FX endpoint. The URL may
// contain a "{base}" placeholder; otherwise the base is appended as a
// "base" query parameter when the URL already has a query, or as a path
// segment when it does not. Responses may be {"rates": {...}} or a flat
// object of code → rate.
type HTTPFetcher struct {
	URL    string
	Client *http.Client
}

// NewHTTPFetcher returns a fetcher for the given endpoint using
// http.DefaultClient.
func NewHTTPFetcher(endpoint string) *HTTPFetcher {
	return &HTTPFetcher{URL: endpoint, Client: http.DefaultClient}
}

// Endpoint returns the URL requested for a base currency.
func (f *HTTPFetcher) Endpoint(base string) string {
	base = Code(base)
	switch {
	case strings.Contains(f.URL, "{base}"):
		return strings.ReplaceAll(f.URL, "{base}", url.PathEscape(base))
	case strings.Contains(f.URL, "?"):
		return f.URL + "&base=" + url.QueryEscape(base)
	default:
		return strings.TrimRight(f.URL, "/") + "/" + url.PathEscape(base)
	}
}

// FetchRates requests the table for base. Any non-2xx status is an error.
func (f *HTTPFetcher) FetchRates(ctx context.Context, base string) (Rates, error) {
	if f.URL == "" {
		return nil, errors.New("fetching rates: no FX endpoint configured")
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.Endpoint(base), nil)
	if err != nil {
		return nil, fmt.Errorf("building rates request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetching rates for %s: %s", Code(base), resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading rates response: %w", err)
	}
	return DecodeRates(body, base)
}

// DecodeRates parses a rate table response. Non-numeric members (such as
// "base" or "date" in flat responses) are ignored. The base currency is
// added with rate 1 when the response omits it.
func DecodeRates(body []byte, base string) (Rates, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decoding rates: %w", err)
	}
	if nested, ok := raw["rates"]; ok {
		raw = nil
		if err := json.Unmarshal(nested, &raw); err != nil {
			return nil, fmt.Errorf("decoding rates: %w", err)
		}
	}

	rates := make(Rates, len(raw))
	for code, v := range raw {
		var d decimal.Decimal
		if err := d.UnmarshalJSON(v); err != nil {
			continue
		}
		rates[Code(code)] = d
	}
	if len(rates) == 0 {
		return nil, errors.New("decoding rates: response contains no rates")
	}
	if b := Code(base); b != "" {
		if _, ok := rates[b]; !ok {
			rates[b] = decimal.NewFromInt(1)
		}
	}
	return rates, nil
}

// StaticFetcher serves a fixed table regardless of the requested base.
type StaticFetcher Rates

// FetchRates returns a copy of the table.
func (s StaticFetcher) FetchRates(_ context.Context, _ string) (Rates, error) {
	out := make(Rates, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out, nil
}
