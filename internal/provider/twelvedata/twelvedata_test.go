package twelvedata_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"marketdata/internal/httpx"
	"marketdata/internal/provider/twelvedata"
)

const quoteBody = `{
  "symbol": "SAP",
  "exchange": "XETRA",
  "currency": "EUR",
  "open": "214.00",
  "high": "217.00",
  "low": "213.10",
  "close": "215.40",
  "previous_close": "210.00",
  "change": "5.40",
  "percent_change": "2.57",
  "volume": "1250000"
}`

func newSource(t *testing.T, handler http.HandlerFunc) *twelvedata.Source {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return twelvedata.New(twelvedata.Config{BaseURL: srv.URL, APIKey: "k"}, httpx.New(5*time.Second))
}

func TestFetchQuoteFirstAttempt(t *testing.T) {
	var symbols []string
	src := newSource(t, func(w http.ResponseWriter, r *http.Request) {
		symbols = append(symbols, r.URL.Query().Get("symbol"))
		require.Equal(t, "k", r.URL.Query().Get("apikey"))
		w.Write([]byte(quoteBody))
	})

	r := src.FetchQuote(context.Background(), "AAPL")

	require.True(t, r.Success, r.Error)
	require.Equal(t, []string{"AAPL"}, symbols)
	require.Equal(t, "215.4", r.CurrentPrice.Decimal.String())
	require.Equal(t, "5.4", r.DayChange.Decimal.String())
	require.NotNil(t, r.Volume)
	require.Equal(t, int64(1250000), *r.Volume)
}

func TestFetchQuoteRetriesAlternateSpellings(t *testing.T) {
	type call struct{ symbol, exchange string }
	var calls []call
	src := newSource(t, func(w http.ResponseWriter, r *http.Request) {
		c := call{r.URL.Query().Get("symbol"), r.URL.Query().Get("exchange")}
		calls = append(calls, c)
		if len(calls) < 3 {
			w.Write([]byte(`{"code":404,"message":"symbol not found","status":"error"}`))
			return
		}
		w.Write([]byte(quoteBody))
	})

	r := src.FetchQuote(context.Background(), "SAP.DE")

	require.True(t, r.Success, r.Error)
	require.Equal(t, []call{
		{"SAP.DE", ""},
		{"SAP", "XETRA"},
		{"SAP", ""},
	}, calls)
	require.Equal(t, "SAP.DE", r.Identifier)
}

func TestFetchQuoteAllAttemptsFail(t *testing.T) {
	src := newSource(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":404,"message":"symbol not found","status":"error"}`)
	})

	r := src.FetchQuote(context.Background(), "SAP.DE")

	require.False(t, r.Success)
	require.Contains(t, r.Error, "symbol not found")
	require.NotEmpty(t, r.Suggestions)
}

func TestFetchQuoteRejectsISIN(t *testing.T) {
	called := false
	src := newSource(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	r := src.FetchQuote(context.Background(), "US0378331005")

	require.False(t, r.Success)
	require.False(t, called)
}

func TestFetchQuoteEmptyBody(t *testing.T) {
	src := newSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	r := src.FetchQuote(context.Background(), "AAPL")

	require.False(t, r.Success)
	require.Contains(t, r.Error, "no quote data")
}
