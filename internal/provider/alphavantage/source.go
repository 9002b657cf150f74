// Package alphavantage adapts the Alpha Vantage GLOBAL_QUOTE endpoint.
// The free tier is severely throttled (about one call per 12 seconds),
// so this adapter normally sits behind a long throttle interval and low
// in the fallback order.
package alphavantage

import (
	"context"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"marketdata/internal/quote"
	"marketdata/internal/symbol"
)

type Source struct {
	name   string
	client *Client
}

func NewSource(name string, client *Client) *Source {
	if name == "" {
		name = "Alpha Vantage"
	}
	return &Source{name: name, client: client}
}

func (s *Source) Name() string { return s.name }

func (s *Source) FetchQuote(ctx context.Context, identifier string) quote.Result {
	if err := symbol.ValidateFormat(identifier); err != nil {
		return quote.Failure(identifier, s.name, err)
	}
	desc := symbol.Parse(identifier)
	if desc.IsISIN {
		return quote.Failure(identifier, s.name, errNoISIN{})
	}

	sym := symbol.FormatForVendor(identifier, symbol.VendorAlphaVantage)
	gq, err := s.client.GetGlobalQuote(ctx, sym)
	if err != nil {
		return quote.Failure(identifier, s.name, err)
	}

	r := quote.Result{
		Identifier:       identifier,
		Success:          true,
		DataSource:       s.name,
		CurrentPrice:     parseDec(gq.Price),
		OpenPrice:        parseDec(gq.Open),
		HighPrice:        parseDec(gq.High),
		LowPrice:         parseDec(gq.Low),
		PreviousClose:    parseDec(gq.PreviousClose),
		DayChange:        parseDec(gq.Change),
		DayChangePercent: parseDec(strings.TrimSuffix(gq.ChangePercent, "%")),
	}
	if v, err := strconv.ParseInt(strings.TrimSpace(gq.Volume), 10, 64); err == nil && v > 0 {
		r.Volume = &v
	}
	return quote.Finalize(r)
}

// parseDec reads a vendor string field; blanks and junk stay unset.
func parseDec(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	if s == "" || s == "--" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return quote.Dec(d)
}

type errNoISIN struct{}

func (errNoISIN) Error() string { return "Alpha Vantage resolves tickers, not ISINs" }
