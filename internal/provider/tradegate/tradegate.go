// Package tradegate fetches quotes from the Tradegate Exchange ticker
// endpoint. Tradegate only speaks ISINs, so this adapter refuses plain
// tickers up front and mostly serves German and other European listings
// the ticker vendors cannot resolve.
package tradegate

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

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
		cfg.Name = "Tradegate"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.tradegate.de"
	}
	return &Source{cfg: cfg, client: hc}
}

func (s *Source) Name() string { return s.cfg.Name }

func (s *Source) FetchQuote(ctx context.Context, identifier string) quote.Result {
	id := strings.ToUpper(strings.TrimSpace(identifier))
	if !symbol.IsISIN(id) {
		return quote.Failure(identifier, s.cfg.Name,
			fmt.Errorf("%s requires an ISIN, got %q", s.cfg.Name, identifier))
	}

	addr := fmt.Sprintf("%s/refresh.php?isin=%s", s.cfg.BaseURL, url.QueryEscape(id))

	// Fields switch between float and string depending on market state,
	// so decode into a loose map and coerce per field.
	var body map[string]any
	if err := s.client.GetJSON(ctx, addr, &body); err != nil {
		return quote.Failure(identifier, s.cfg.Name, err)
	}

	last := parseField(body["last"])
	if !last.Valid {
		// Outside trading hours "last" reads "./."; the bid still
		// tracks the instrument closely enough for a dashboard.
		last = parseField(body["bid"])
	}
	if !last.Valid || last.Decimal.Sign() <= 0 {
		return quote.Failure(identifier, s.cfg.Name,
			fmt.Errorf("no tradable price for %s", id))
	}

	r := quote.Result{
		Identifier:    identifier,
		Success:       true,
		DataSource:    s.cfg.Name,
		CurrentPrice:  last,
		HighPrice:     parseField(body["high"]),
		LowPrice:      parseField(body["low"]),
		PreviousClose: parseField(body["close"]),
	}
	return quote.Finalize(r)
}

// parseField coerces a Tradegate JSON value into a decimal. Strings use
// the German comma decimal separator and "./." marks a missing value.
func parseField(v any) decimal.NullDecimal {
	switch t := v.(type) {
	case float64:
		if t <= 0 {
			return decimal.NullDecimal{}
		}
		return quote.Dec(decimal.NewFromFloat(t))
	case string:
		t = strings.TrimSpace(t)
		if t == "" || t == "./." {
			return decimal.NullDecimal{}
		}
		t = strings.ReplaceAll(t, ",", ".")
		d, err := decimal.NewFromString(t)
		if err != nil || d.Sign() <= 0 {
			return decimal.NullDecimal{}
		}
		return quote.Dec(d)
	default:
		return decimal.NullDecimal{}
	}
}
