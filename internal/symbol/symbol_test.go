package symbol_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"marketdata/internal/symbol"
)

func TestParseSuffixedIdentifier(t *testing.T) {
	d := symbol.Parse("sap.de")

	require.Equal(t, "SAP", d.BaseSymbol)
	require.Equal(t, "DE", d.Suffix)
	require.Equal(t, "XETRA", d.ExchangeName)
	require.Equal(t, "DE", d.CountryCode)
	require.Equal(t, "EUR", d.CurrencyCode)
	require.Equal(t, "Europe/Berlin", d.MarketTimezone)
	require.True(t, d.IsInternational)
	require.False(t, d.IsISIN)
}

func TestParseBareIdentifierUsesHomeMarket(t *testing.T) {
	d := symbol.Parse(" aapl ")

	require.Equal(t, "AAPL", d.BaseSymbol)
	require.Empty(t, d.Suffix)
	require.Equal(t, "US", d.CountryCode)
	require.Equal(t, "USD", d.CurrencyCode)
	require.Equal(t, "America/New_York", d.MarketTimezone)
	require.False(t, d.IsInternational)
}

func TestParseUnknownSuffixPreserved(t *testing.T) {
	d := symbol.Parse("ABC.XX")

	require.Equal(t, "ABC", d.BaseSymbol)
	require.Equal(t, "XX", d.Suffix)
	require.Empty(t, d.ExchangeName)
	require.Empty(t, d.CountryCode)
	require.True(t, d.IsInternational)
}

func TestParseISIN(t *testing.T) {
	d := symbol.Parse("de0007164600")

	require.True(t, d.IsISIN)
	require.True(t, d.IsInternational)
	require.Equal(t, "DE0007164600", d.BaseSymbol)
	require.Equal(t, "DE", d.CountryCode)
	require.Empty(t, d.Suffix)
}

func TestIsISIN(t *testing.T) {
	cases := []struct {
		id   string
		want bool
	}{
		{"US0378331005", true},
		{"DE0007164600", true},
		{"us0378331005", true},
		{"US037833100", false},  // too short
		{"US03783310055", false}, // too long
		{"1S0378331005", false},  // digit where country goes
		{"US037833100A", false},  // letter check digit
		{"AAPL", false},
		{"SAP.DE", false},
	}
	for _, c := range cases {
		if got := symbol.IsISIN(c.id); got != c.want {
			t.Errorf("IsISIN(%q) = %v, want %v", c.id, got, c.want)
		}
	}
}

func TestValidateFormat(t *testing.T) {
	valid := []string{"AAPL", "SAP.DE", "BRK-B", "VOD.L", "US0378331005", "7203.T"}
	for _, id := range valid {
		if err := symbol.ValidateFormat(id); err != nil {
			t.Errorf("ValidateFormat(%q) = %v, want nil", id, err)
		}
	}

	invalid := []string{
		"",
		"   ",
		"THISIDENTIFIERISWAYTOOLONG",
		"SAP.DE.F",
		".DE",
		"SAP.",
		"AAPL.LONG",
		"AA PL",
		"SAP$DE",
		"VERYLONGBASESYM1.DE",
	}
	for _, id := range invalid {
		if err := symbol.ValidateFormat(id); err == nil {
			t.Errorf("ValidateFormat(%q) = nil, want error", id)
		}
	}
}

func TestFormatForVendor(t *testing.T) {
	cases := []struct {
		id     string
		vendor string
		want   string
	}{
		{"SAP.DE", symbol.VendorAlphaVantage, "SAP.DEX"},
		{"VOD.L", symbol.VendorAlphaVantage, "VOD.LON"},
		{"RY.TO", symbol.VendorAlphaVantage, "RY.TRT"},
		{"SAP.DE", symbol.VendorYahoo, "SAP.DE"},
		{"AAPL", symbol.VendorAlphaVantage, "AAPL"},
		{"ABC.XX", symbol.VendorAlphaVantage, "ABC.XX"},
		{"DE0007164600", symbol.VendorAlphaVantage, "DE0007164600"},
	}
	for _, c := range cases {
		got := symbol.FormatForVendor(c.id, c.vendor)
		require.Equal(t, c.want, got, "FormatForVendor(%q, %q)", c.id, c.vendor)

		// Reformatting an already reformatted identifier must be a no-op.
		require.Equal(t, got, symbol.FormatForVendor(got, c.vendor))
	}
}

func TestSuggestAlternateFormats(t *testing.T) {
	t.Run("bare symbol gets european venues", func(t *testing.T) {
		got := symbol.SuggestAlternateFormats("SAP")
		require.Equal(t, []string{"SAP.DE", "SAP.F", "SAP.L", "SAP.PA", "SAP.AS"}, got)
	})

	t.Run("suffixed symbol gets bare plus majors without itself", func(t *testing.T) {
		got := symbol.SuggestAlternateFormats("SAP.DE")
		require.Equal(t, []string{"SAP", "SAP.L", "SAP.PA", "SAP.TO"}, got)
		require.NotContains(t, got, "SAP.DE")
	})

	t.Run("isin has no suggestions", func(t *testing.T) {
		require.Nil(t, symbol.SuggestAlternateFormats("US0378331005"))
	})

	t.Run("empty input", func(t *testing.T) {
		require.Nil(t, symbol.SuggestAlternateFormats("  "))
	})
}

func TestIsEuropeanCountry(t *testing.T) {
	require.True(t, symbol.IsEuropeanCountry("DE"))
	require.True(t, symbol.IsEuropeanCountry("GB"))
	require.False(t, symbol.IsEuropeanCountry("US"))
	require.False(t, symbol.IsEuropeanCountry(""))
}
