package symbol

// exchangeInfo describes the listing venue behind a ticker suffix.
// Vendor maps a vendor key to the suffix that vendor expects for the
// same venue (e.g. Alpha Vantage spells XETRA ".DEX", not ".DE").
type exchangeInfo struct {
	Name     string
	Country  string
	Currency string
	Timezone string
	Vendor   map[string]string
}

// Vendor keys used in reformatting templates.
const (
	VendorYahoo        = "yahoo"
	VendorAlphaVantage = "alphavantage"
	VendorTwelveData   = "twelvedata"
	VendorTradegate    = "tradegate"
)

// exchanges maps a ticker suffix (the part after the last '.') to venue
// metadata. Suffixes follow the Yahoo convention, which most retail data
// vendors accept as-is; vendor-specific respellings live in Vendor.
var exchanges = map[string]exchangeInfo{
	// Germany
	"DE": {Name: "XETRA", Country: "DE", Currency: "EUR", Timezone: "Europe/Berlin",
		Vendor: map[string]string{VendorAlphaVantage: "DEX"}},
	"F": {Name: "Frankfurt", Country: "DE", Currency: "EUR", Timezone: "Europe/Berlin",
		Vendor: map[string]string{VendorAlphaVantage: "FRK"}},
	"SG": {Name: "Stuttgart", Country: "DE", Currency: "EUR", Timezone: "Europe/Berlin"},
	"MU": {Name: "Munich", Country: "DE", Currency: "EUR", Timezone: "Europe/Berlin"},
	"DU": {Name: "Dusseldorf", Country: "DE", Currency: "EUR", Timezone: "Europe/Berlin"},
	"BE": {Name: "Berlin", Country: "DE", Currency: "EUR", Timezone: "Europe/Berlin"},
	"HM": {Name: "Hamburg", Country: "DE", Currency: "EUR", Timezone: "Europe/Berlin"},

	// Rest of Europe
	"L": {Name: "London Stock Exchange", Country: "GB", Currency: "GBP", Timezone: "Europe/London",
		Vendor: map[string]string{VendorAlphaVantage: "LON"}},
	"PA": {Name: "Euronext Paris", Country: "FR", Currency: "EUR", Timezone: "Europe/Paris",
		Vendor: map[string]string{VendorAlphaVantage: "PAR"}},
	"AS": {Name: "Euronext Amsterdam", Country: "NL", Currency: "EUR", Timezone: "Europe/Amsterdam"},
	"BR": {Name: "Euronext Brussels", Country: "BE", Currency: "EUR", Timezone: "Europe/Brussels"},
	"LS": {Name: "Euronext Lisbon", Country: "PT", Currency: "EUR", Timezone: "Europe/Lisbon"},
	"MC": {Name: "Bolsa de Madrid", Country: "ES", Currency: "EUR", Timezone: "Europe/Madrid"},
	"MI": {Name: "Borsa Italiana", Country: "IT", Currency: "EUR", Timezone: "Europe/Rome"},
	"VI": {Name: "Wiener Borse", Country: "AT", Currency: "EUR", Timezone: "Europe/Vienna"},
	"IR": {Name: "Euronext Dublin", Country: "IE", Currency: "EUR", Timezone: "Europe/Dublin"},
	"SW": {Name: "SIX Swiss Exchange", Country: "CH", Currency: "CHF", Timezone: "Europe/Zurich"},
	"ST": {Name: "Nasdaq Stockholm", Country: "SE", Currency: "SEK", Timezone: "Europe/Stockholm"},
	"CO": {Name: "Nasdaq Copenhagen", Country: "DK", Currency: "DKK", Timezone: "Europe/Copenhagen"},
	"HE": {Name: "Nasdaq Helsinki", Country: "FI", Currency: "EUR", Timezone: "Europe/Helsinki"},
	"OL": {Name: "Oslo Bors", Country: "NO", Currency: "NOK", Timezone: "Europe/Oslo"},

	// Americas
	"TO": {Name: "Toronto Stock Exchange", Country: "CA", Currency: "CAD", Timezone: "America/Toronto",
		Vendor: map[string]string{VendorAlphaVantage: "TRT"}},
	"V": {Name: "TSX Venture Exchange", Country: "CA", Currency: "CAD", Timezone: "America/Toronto",
		Vendor: map[string]string{VendorAlphaVantage: "TRV"}},

	// Asia-Pacific
	"T":  {Name: "Tokyo Stock Exchange", Country: "JP", Currency: "JPY", Timezone: "Asia/Tokyo"},
	"HK": {Name: "Hong Kong Stock Exchange", Country: "HK", Currency: "HKD", Timezone: "Asia/Hong_Kong"},
	"SS": {Name: "Shanghai Stock Exchange", Country: "CN", Currency: "CNY", Timezone: "Asia/Shanghai",
		Vendor: map[string]string{VendorAlphaVantage: "SHH"}},
	"SZ": {Name: "Shenzhen Stock Exchange", Country: "CN", Currency: "CNY", Timezone: "Asia/Shanghai",
		Vendor: map[string]string{VendorAlphaVantage: "SHZ"}},
	"SI": {Name: "Singapore Exchange", Country: "SG", Currency: "SGD", Timezone: "Asia/Singapore"},
	"AX": {Name: "Australian Securities Exchange", Country: "AU", Currency: "AUD", Timezone: "Australia/Sydney"},
	"NZ": {Name: "New Zealand Exchange", Country: "NZ", Currency: "NZD", Timezone: "Pacific/Auckland"},
}

// europeanCountries marks the countries served by the regional European
// vendors; used for suggestion lists and router grouping.
var europeanCountries = map[string]bool{
	"DE": true, "GB": true, "FR": true, "NL": true, "BE": true, "PT": true,
	"ES": true, "IT": true, "AT": true, "IE": true, "CH": true, "SE": true,
	"DK": true, "FI": true, "NO": true,
}

// IsEuropeanCountry reports whether the ISO country code belongs to a
// market covered by the European regional vendors.
func IsEuropeanCountry(code string) bool { return europeanCountries[code] }
