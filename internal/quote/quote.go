// Package quote defines the normalized result shape every vendor adapter
// returns. Failures are data, not errors: adapters convert anything that
// goes wrong into a Result with Success=false so callers branch on a flag
// instead of catching.
package quote

import (
	"github.com/shopspring/decimal"

	"marketdata/internal/symbol"
)

// Result is a single point-in-time quote for one identifier. Identifier
// is echoed back as the caller supplied it, not in any vendor spelling.
type Result struct {
	Identifier       string              `json:"identifier"`
	CurrentPrice     decimal.NullDecimal `json:"current_price"`
	OpenPrice        decimal.NullDecimal `json:"open_price"`
	HighPrice        decimal.NullDecimal `json:"high_price"`
	LowPrice         decimal.NullDecimal `json:"low_price"`
	PreviousClose    decimal.NullDecimal `json:"previous_close"`
	Volume           *int64              `json:"volume,omitempty"`
	DayChange        decimal.NullDecimal `json:"day_change"`
	DayChangePercent decimal.NullDecimal `json:"day_change_percent"`
	Success          bool                `json:"success"`
	Error            string              `json:"error,omitempty"`
	DataSource       string              `json:"data_source"`
	Suggestions      []string            `json:"suggestions,omitempty"`
}

// Failure builds the uniform failed Result every adapter returns:
// original identifier, human-readable error, producing source and
// alternate spellings the user could try instead.
func Failure(identifier, source string, err error) Result {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return Result{
		Identifier:  identifier,
		Success:     false,
		Error:       msg,
		DataSource:  source,
		Suggestions: symbol.SuggestAlternateFormats(identifier),
	}
}

// Dec wraps a decimal in a valid NullDecimal.
func Dec(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// DecFloat wraps a float price; zero stays unset because every vendor in
// the chain uses 0 to mean "no data".
func DecFloat(f float64) decimal.NullDecimal {
	if f == 0 {
		return decimal.NullDecimal{}
	}
	return Dec(decimal.NewFromFloat(f))
}

// DeriveChange fills DayChange and DayChangePercent from CurrentPrice and
// PreviousClose when the vendor did not supply them. Both stay unset when
// PreviousClose is missing.
func (r *Result) DeriveChange() {
	if r.DayChange.Valid || !r.CurrentPrice.Valid || !r.PreviousClose.Valid {
		return
	}
	change := r.CurrentPrice.Decimal.Sub(r.PreviousClose.Decimal)
	r.DayChange = Dec(change)
	if !r.PreviousClose.Decimal.IsZero() {
		pct := change.Div(r.PreviousClose.Decimal).Mul(decimal.NewFromInt(100))
		r.DayChangePercent = Dec(pct)
	}
}

// Finalize applies the shared sanity check and derived fields to a
// vendor-built Result. A "successful" result without a positive current
// price is demoted to a failure, keeping the invariant that Success
// implies CurrentPrice > 0.
func Finalize(r Result) Result {
	if r.Success && (!r.CurrentPrice.Valid || !r.CurrentPrice.Decimal.IsPositive()) {
		f := Failure(r.Identifier, r.DataSource, errNoPrice)
		return f
	}
	if r.Success {
		r.DeriveChange()
	}
	return r
}

type noPriceError struct{}

func (noPriceError) Error() string { return "vendor returned no usable price" }

var errNoPrice noPriceError
