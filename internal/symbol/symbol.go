// Package symbol normalizes user-supplied security identifiers: tickers
// with optional exchange suffixes (SAP.DE, VOD.L) and ISINs. Parsing is
// table-driven and never fails; unknown suffixes pass through verbatim.
package symbol

import (
	"fmt"
	"regexp"
	"strings"
)

// Home-market defaults applied to identifiers without an exchange suffix.
const (
	HomeCountry  = "US"
	HomeCurrency = "USD"
	HomeTimezone = "America/New_York"
)

const (
	maxIdentifierLen = 20
	maxBaseLen       = 15
	maxSuffixLen     = 3
)

// isinRegex checks for the basic ISIN structure: 2 letters, 9 alphanumeric, 1 digit.
var isinRegex = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{9}[0-9]$`)

// identifierRegex limits identifiers to the character set every vendor accepts.
var identifierRegex = regexp.MustCompile(`^[A-Za-z0-9.\-]+$`)

// Descriptor is the canonical, derived form of an identifier. It is
// recomputed per call and never persisted.
type Descriptor struct {
	BaseSymbol      string
	Suffix          string
	ExchangeName    string
	CountryCode     string
	CurrencyCode    string
	MarketTimezone  string
	IsInternational bool
	IsISIN          bool
}

// IsISIN reports whether the identifier has ISIN shape. Shape only: the
// check digit is not verified here, vendors reject bad ISINs themselves.
func IsISIN(identifier string) bool {
	return isinRegex.MatchString(strings.ToUpper(strings.TrimSpace(identifier)))
}

// Parse turns a raw identifier into a Descriptor. It never fails: an
// unknown suffix is preserved with empty venue metadata, and a missing
// suffix means the home market, not an invalid identifier.
func Parse(identifier string) Descriptor {
	id := strings.ToUpper(strings.TrimSpace(identifier))

	if IsISIN(id) {
		return Descriptor{
			BaseSymbol:      id,
			CountryCode:     id[:2],
			IsInternational: true,
			IsISIN:          true,
		}
	}

	base, suffix := splitSuffix(id)
	if suffix == "" {
		return Descriptor{
			BaseSymbol:     base,
			CountryCode:    HomeCountry,
			CurrencyCode:   HomeCurrency,
			MarketTimezone: HomeTimezone,
		}
	}

	d := Descriptor{BaseSymbol: base, Suffix: suffix, IsInternational: true}
	if info, ok := exchanges[suffix]; ok {
		d.ExchangeName = info.Name
		d.CountryCode = info.Country
		d.CurrencyCode = info.Currency
		d.MarketTimezone = info.Timezone
	}
	return d
}

// FormatForVendor rewrites the identifier into the form a specific vendor
// expects. Identifiers the vendor has no respelling for, ISINs and
// unknown suffixes fall through unchanged, which also makes the
// operation idempotent.
func FormatForVendor(identifier, vendor string) string {
	id := strings.ToUpper(strings.TrimSpace(identifier))
	if IsISIN(id) {
		return id
	}
	base, suffix := splitSuffix(id)
	if suffix == "" {
		return id
	}
	info, ok := exchanges[suffix]
	if !ok {
		return id
	}
	if repl, ok := info.Vendor[vendor]; ok {
		return base + "." + repl
	}
	return id
}

// ValidateFormat performs a syntax-only check; it does not confirm the
// security exists. A nil error means the identifier is well-formed.
func ValidateFormat(identifier string) error {
	id := strings.TrimSpace(identifier)
	if id == "" {
		return fmt.Errorf("identifier is empty")
	}
	if len(id) > maxIdentifierLen {
		return fmt.Errorf("identifier %q is longer than %d characters", id, maxIdentifierLen)
	}
	if !identifierRegex.MatchString(id) {
		return fmt.Errorf("identifier %q contains invalid characters (allowed: letters, digits, dot, hyphen)", id)
	}
	if strings.Count(id, ".") > 1 {
		return fmt.Errorf("identifier %q has more than one exchange suffix", id)
	}
	base, suffix := splitSuffix(id)
	if base == "" {
		return fmt.Errorf("identifier %q has no symbol before the suffix", id)
	}
	if len(base) > maxBaseLen {
		return fmt.Errorf("symbol part of %q is longer than %d characters", id, maxBaseLen)
	}
	if strings.HasSuffix(id, ".") {
		return fmt.Errorf("identifier %q has an empty exchange suffix", id)
	}
	if len(suffix) > maxSuffixLen {
		return fmt.Errorf("exchange suffix of %q is longer than %d characters", id, maxSuffixLen)
	}
	return nil
}

// splitSuffix splits on the last dot. No dot means no suffix.
func splitSuffix(id string) (base, suffix string) {
	i := strings.LastIndex(id, ".")
	if i < 0 {
		return id, ""
	}
	return id[:i], id[i+1:]
}
