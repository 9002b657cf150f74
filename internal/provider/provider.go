package provider

import (
	"context"

	"marketdata/internal/quote"
)

// Source is the contract every market-data vendor adapter implements.
// FetchQuote never returns an error: vendor failures come back as a
// quote.Result with Success=false so the fallback chain can keep going.
type Source interface {
	Name() string
	FetchQuote(ctx context.Context, identifier string) quote.Result
}

// BatchSource is an optional hook for vendors with a native batch
// endpoint. Sources without it are fetched one identifier at a time.
type BatchSource interface {
	Source
	FetchMultiple(ctx context.Context, identifiers []string) []quote.Result
}

// FetchAll fetches quotes for all identifiers, preserving input order.
// The default path is sequential on purpose: per-adapter throttling is
// stateful, and a predictable call order keeps rate-limit accounting
// trivial to reason about.
func FetchAll(ctx context.Context, s Source, identifiers []string) []quote.Result {
	if b, ok := s.(BatchSource); ok {
		return b.FetchMultiple(ctx, identifiers)
	}
	out := make([]quote.Result, 0, len(identifiers))
	for _, id := range identifiers {
		out = append(out, s.FetchQuote(ctx, id))
	}
	return out
}
