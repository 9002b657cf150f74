// Package twelvedata adapts the Twelve Data /quote endpoint. Twelve Data
// does not accept Yahoo-style suffixes directly, so international
// identifiers are retried under several vendor spellings before the
// adapter gives up.
package twelvedata

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"marketdata/internal/httpx"
	"marketdata/internal/quote"
	"marketdata/internal/symbol"
)

type Config struct {
	Name    string
	BaseURL string
	APIKey  string
}

type Source struct {
	cfg    Config
	client *httpx.Client
}

func New(cfg Config, hc *httpx.Client) *Source {
	if cfg.Name == "" {
		cfg.Name = "Twelve Data"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.twelvedata.com"
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

	var lastErr error
	for _, attempt := range s.attempts(identifier, desc) {
		body, err := s.getQuote(ctx, attempt)
		if err != nil {
			lastErr = err
			continue
		}
		return s.toResult(identifier, body)
	}
	return quote.Failure(identifier, s.cfg.Name, lastErr)
}

// query parameters for one lookup attempt.
type attempt struct {
	symbol   string
	exchange string
}

// attempts lists the vendor spellings to try, most specific first: the
// suffixed form as-is, then base symbol plus named exchange, then the
// bare base symbol.
func (s *Source) attempts(identifier string, desc symbol.Descriptor) []attempt {
	formatted := symbol.FormatForVendor(identifier, symbol.VendorTwelveData)
	out := []attempt{{symbol: formatted}}
	if desc.Suffix != "" {
		if desc.ExchangeName != "" {
			out = append(out, attempt{symbol: desc.BaseSymbol, exchange: desc.ExchangeName})
		}
		out = append(out, attempt{symbol: desc.BaseSymbol})
	}
	return out
}

func (s *Source) getQuote(ctx context.Context, a attempt) (*quoteBody, error) {
	query := url.Values{}
	query.Set("symbol", a.symbol)
	if a.exchange != "" {
		query.Set("exchange", a.exchange)
	}
	if s.cfg.APIKey != "" {
		query.Set("apikey", s.cfg.APIKey)
	}

	var body quoteBody
	if err := s.client.GetJSON(ctx, s.cfg.BaseURL+"/quote?"+query.Encode(), &body); err != nil {
		return nil, err
	}
	// Errors arrive as a 200 with an embedded status object.
	if body.Status == "error" || body.Code != 0 {
		return nil, fmt.Errorf("vendor error %d for %q: %s", body.Code, a.symbol, body.Message)
	}
	if body.Close == "" {
		return nil, fmt.Errorf("no quote data for %q", a.symbol)
	}
	return &body, nil
}

func (s *Source) toResult(identifier string, body *quoteBody) quote.Result {
	r := quote.Result{
		Identifier:       identifier,
		Success:          true,
		DataSource:       s.cfg.Name,
		CurrentPrice:     parseDec(body.Close),
		OpenPrice:        parseDec(body.Open),
		HighPrice:        parseDec(body.High),
		LowPrice:         parseDec(body.Low),
		PreviousClose:    parseDec(body.PreviousClose),
		DayChange:        parseDec(body.Change),
		DayChangePercent: parseDec(body.PercentChange),
	}
	if v, err := strconv.ParseInt(strings.TrimSpace(body.Volume), 10, 64); err == nil && v > 0 {
		r.Volume = &v
	}
	return quote.Finalize(r)
}

// quoteBody mixes the success and error shapes of /quote; numeric fields
// are strings on success.
type quoteBody struct {
	Symbol        string `json:"symbol"`
	Exchange      string `json:"exchange"`
	Currency      string `json:"currency"`
	Open          string `json:"open"`
	High          string `json:"high"`
	Low           string `json:"low"`
	Close         string `json:"close"`
	PreviousClose string `json:"previous_close"`
	Change        string `json:"change"`
	PercentChange string `json:"percent_change"`
	Volume        string `json:"volume"`

	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

func parseDec(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return quote.Dec(d)
}
