package alphavantage_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"marketdata/internal/provider/alphavantage"
)

const globalQuoteBody = `{
  "Global Quote": {
    "01. symbol": "SAP.DEX",
    "02. open": "214.0000",
    "03. high": "217.0000",
    "04. low": "213.1000",
    "05. price": "215.4000",
    "06. volume": "1250000",
    "07. latest trading day": "2026-08-24",
    "08. previous close": "210.0000",
    "09. change": "5.4000",
    "10. change percent": "2.5714%"
  }
}`

func jsonResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestGetGlobalQuote(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := NewMockHTTPClient(ctrl)

	mock.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
		require.Equal(t, "GLOBAL_QUOTE", req.URL.Query().Get("function"))
		require.Equal(t, "SAP.DEX", req.URL.Query().Get("symbol"))
		require.Equal(t, "secret", req.URL.Query().Get("apikey"))
		return jsonResponse(globalQuoteBody), nil
	})

	client, err := alphavantage.NewClient("secret", alphavantage.WithHTTPClient(mock))
	require.NoError(t, err)

	gq, err := client.GetGlobalQuote(context.Background(), "SAP.DEX")
	require.NoError(t, err)
	require.Equal(t, "SAP.DEX", gq.Symbol)
	require.Equal(t, "215.4000", gq.Price)
	require.Equal(t, "2.5714%", gq.ChangePercent)
}

func TestGetGlobalQuoteRateLimitNote(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := NewMockHTTPClient(ctrl)
	mock.EXPECT().Do(gomock.Any()).Return(jsonResponse(
		`{"Note": "Thank you for using Alpha Vantage! Our standard API rate limit is 25 requests per day."}`), nil)

	client, err := alphavantage.NewClient("secret", alphavantage.WithHTTPClient(mock))
	require.NoError(t, err)

	_, err = client.GetGlobalQuote(context.Background(), "AAPL")
	require.Error(t, err)
	require.Contains(t, err.Error(), "rate limit")
}

func TestGetGlobalQuoteVendorError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := NewMockHTTPClient(ctrl)
	mock.EXPECT().Do(gomock.Any()).Return(jsonResponse(
		`{"Error Message": "Invalid API call."}`), nil)

	client, err := alphavantage.NewClient("secret", alphavantage.WithHTTPClient(mock))
	require.NoError(t, err)

	_, err = client.GetGlobalQuote(context.Background(), "NOPE")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Invalid API call")
}

func TestGetGlobalQuoteEmptyPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := NewMockHTTPClient(ctrl)
	mock.EXPECT().Do(gomock.Any()).Return(jsonResponse(`{"Global Quote": {}}`), nil)

	client, err := alphavantage.NewClient("secret", alphavantage.WithHTTPClient(mock))
	require.NoError(t, err)

	_, err = client.GetGlobalQuote(context.Background(), "NOPE")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no quote data")
}

func TestGetGlobalQuoteHTTPStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := NewMockHTTPClient(ctrl)
	mock.EXPECT().Do(gomock.Any()).Return(&http.Response{
		StatusCode: http.StatusServiceUnavailable,
		Body:       io.NopCloser(strings.NewReader("maintenance")),
	}, nil)

	client, err := alphavantage.NewClient("secret", alphavantage.WithHTTPClient(mock))
	require.NoError(t, err)

	_, err = client.GetGlobalQuote(context.Background(), "AAPL")
	require.Error(t, err)
	require.Contains(t, err.Error(), "503")
}

func TestWithBaseURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := NewMockHTTPClient(ctrl)
	mock.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
		require.Equal(t, "example.test", req.URL.Host)
		return jsonResponse(globalQuoteBody), nil
	})

	client, err := alphavantage.NewClient("secret",
		alphavantage.WithHTTPClient(mock),
		alphavantage.WithBaseURL("http://example.test"))
	require.NoError(t, err)

	_, err = client.GetGlobalQuote(context.Background(), "SAP.DEX")
	require.NoError(t, err)
}

func TestWithHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := NewMockHTTPClient(ctrl)
	mock.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
		require.Equal(t, "my-agent", req.Header.Get("User-Agent"))
		return jsonResponse(globalQuoteBody), nil
	})

	client, err := alphavantage.NewClient("secret",
		alphavantage.WithHTTPClient(mock),
		alphavantage.WithHeader(http.Header{"User-Agent": []string{"my-agent"}}))
	require.NoError(t, err)

	_, err = client.GetGlobalQuote(context.Background(), "SAP.DEX")
	require.NoError(t, err)
}
