// Package router steers each identifier toward the vendors most likely
// to know it. Regional vendors like Tradegate answer German listings the
// global APIs stumble over, so the router reorders the fallback attempt
// sequence by the identifier's home market before delegating.
package router

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"marketdata/internal/fallback"
	"marketdata/internal/provider"
	"marketdata/internal/quote"
	"marketdata/internal/symbol"
)

const routerName = "regional-router"

// RegionalSource tags a vendor source with the markets it covers.
// Countries lists ISO country codes the vendor is authoritative for;
// European marks broad pan-European coverage.
type RegionalSource struct {
	provider.Source
	Countries []string
	European  bool
}

func (rs RegionalSource) covers(country string) bool {
	for _, c := range rs.Countries {
		if c == country {
			return true
		}
	}
	return false
}

// Router is a provider.Source that prioritizes regional vendors for
// identifiers from their markets and falls back to the rest.
type Router struct {
	name    string
	sources []RegionalSource
	log     *logrus.Entry
}

func New(log *logrus.Entry, sources ...RegionalSource) *Router {
	return &Router{name: routerName, sources: sources, log: log}
}

func (r *Router) Name() string { return r.name }

// prioritize orders sources for one identifier: exact country matches
// first, then pan-European vendors for European markets, then everything
// else. Within each tier the configured order is preserved.
func (r *Router) prioritize(identifier string) []provider.Source {
	desc := symbol.Parse(identifier)

	var exact, regional, rest []provider.Source
	for _, rs := range r.sources {
		switch {
		case desc.CountryCode != "" && rs.covers(desc.CountryCode):
			exact = append(exact, rs.Source)
		case rs.European && symbol.IsEuropeanCountry(desc.CountryCode):
			regional = append(regional, rs.Source)
		default:
			rest = append(rest, rs.Source)
		}
	}
	out := make([]provider.Source, 0, len(r.sources))
	out = append(out, exact...)
	out = append(out, regional...)
	out = append(out, rest...)
	return out
}

func (r *Router) FetchQuote(ctx context.Context, identifier string) quote.Result {
	ordered := r.prioritize(identifier)
	if len(ordered) == 0 {
		return quote.Failure(identifier, r.name, fmt.Errorf("no providers configured"))
	}

	winner, failures := fallback.TryInOrder(ctx, ordered, identifier, r.log)
	if winner.Success {
		winner.DataSource = fmt.Sprintf("%s -> %s", r.name, winner.DataSource)
		return winner
	}

	last := failures[len(failures)-1]
	res := quote.Failure(identifier, r.name,
		fmt.Errorf("All providers failed. Last error: %s", last.Error))
	res.Suggestions = mergeSuggestions(res.Suggestions, failures)
	return res
}

// FetchMultiple resolves identifiers sequentially, each under its own
// regional ordering.
func (r *Router) FetchMultiple(ctx context.Context, identifiers []string) []quote.Result {
	out := make([]quote.Result, 0, len(identifiers))
	for _, id := range identifiers {
		out = append(out, r.FetchQuote(ctx, id))
	}
	return out
}

// mergeSuggestions pools alternate spellings from every failed attempt,
// deduplicated in first-seen order.
func mergeSuggestions(base []string, failures []quote.Result) []string {
	seen := make(map[string]bool, len(base))
	out := make([]string, 0, len(base))
	for _, s := range base {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, f := range failures {
		for _, s := range f.Suggestions {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
