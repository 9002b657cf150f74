// Package yahoo fetches quotes from the Yahoo Finance chart API. It is
// the workhorse vendor: it understands the same exchange suffixes users
// type, so one request per identifier is enough.
package yahoo

import (
	"context"
	"fmt"
	"net/url"

	"marketdata/internal/httpx"
	"marketdata/internal/quote"
	"marketdata/internal/symbol"
)

type Config struct {
	Name    string
	BaseURL string
}

type Source struct {
	cfg    Config
	client *httpx.Client
}

func New(cfg Config, hc *httpx.Client) *Source {
	if cfg.Name == "" {
		cfg.Name = "Yahoo Finance"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://query1.finance.yahoo.com"
	}
	return &Source{cfg: cfg, client: hc}
}

func (s *Source) Name() string { return s.cfg.Name }

func (s *Source) FetchQuote(ctx context.Context, identifier string) quote.Result {
	if err := symbol.ValidateFormat(identifier); err != nil {
		return quote.Failure(identifier, s.cfg.Name, err)
	}
	desc := symbol.Parse(identifier)
	if desc.IsISIN {
		return quote.Failure(identifier, s.cfg.Name,
			fmt.Errorf("%s resolves tickers, not ISINs", s.cfg.Name))
	}

	sym := symbol.FormatForVendor(identifier, symbol.VendorYahoo)
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=2d", s.cfg.BaseURL, url.PathEscape(sym))

	var resp chartResponse
	if err := s.client.GetJSON(ctx, addr, &resp); err != nil {
		return quote.Failure(identifier, s.cfg.Name, err)
	}
	if resp.Chart.Error != nil && resp.Chart.Error.Description != "" {
		return quote.Failure(identifier, s.cfg.Name,
			fmt.Errorf("vendor error: %s", resp.Chart.Error.Description))
	}
	if len(resp.Chart.Result) == 0 {
		return quote.Failure(identifier, s.cfg.Name,
			fmt.Errorf("no chart data for %q", sym))
	}

	res := resp.Chart.Result[0]
	meta := res.Meta

	r := quote.Result{
		Identifier:    identifier,
		Success:       true,
		DataSource:    s.cfg.Name,
		CurrentPrice:  quote.DecFloat(meta.RegularMarketPrice),
		PreviousClose: quote.DecFloat(meta.ChartPreviousClose),
		HighPrice:     quote.DecFloat(meta.RegularMarketDayHigh),
		LowPrice:      quote.DecFloat(meta.RegularMarketDayLow),
	}
	if !r.PreviousClose.Valid {
		r.PreviousClose = quote.DecFloat(meta.PreviousClose)
	}
	if meta.RegularMarketVolume > 0 {
		v := meta.RegularMarketVolume
		r.Volume = &v
	}

	// Today's open only appears in the daily bars, not the meta block.
	if len(res.Indicators.Quote) > 0 {
		bars := res.Indicators.Quote[0]
		if n := len(bars.Open); n > 0 {
			r.OpenPrice = quote.DecFloat(bars.Open[n-1])
		}
		if r.Volume == nil {
			if n := len(bars.Volume); n > 0 && bars.Volume[n-1] > 0 {
				v := bars.Volume[n-1]
				r.Volume = &v
			}
		}
	}

	return quote.Finalize(r)
}

type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *chartError   `json:"error"`
	} `json:"chart"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type chartResult struct {
	Meta struct {
		Currency             string  `json:"currency"`
		Symbol               string  `json:"symbol"`
		RegularMarketPrice   float64 `json:"regularMarketPrice"`
		RegularMarketDayHigh float64 `json:"regularMarketDayHigh"`
		RegularMarketDayLow  float64 `json:"regularMarketDayLow"`
		RegularMarketVolume  int64   `json:"regularMarketVolume"`
		ChartPreviousClose   float64 `json:"chartPreviousClose"`
		PreviousClose        float64 `json:"previousClose"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []float64 `json:"open"`
			High   []float64 `json:"high"`
			Low    []float64 `json:"low"`
			Close  []float64 `json:"close"`
			Volume []int64   `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}
