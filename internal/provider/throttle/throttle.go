// Package throttle enforces a vendor's minimum inter-request delay. Each
// wrapped source carries its own limiter state; there is no global gate.
package throttle

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"marketdata/internal/provider"
	"marketdata/internal/quote"
)

// Source wraps a provider and blocks before each call until the minimum
// interval since the previous call has elapsed. A burst of one means the
// first call goes through immediately.
type Source struct {
	p       provider.Source
	limiter *rate.Limiter
}

// Wrap gates p to at most one call per minInterval. A non-positive
// interval returns an unthrottled wrapper.
func Wrap(p provider.Source, minInterval time.Duration) *Source {
	s := &Source{p: p}
	if minInterval > 0 {
		s.limiter = rate.NewLimiter(rate.Every(minInterval), 1)
	}
	return s
}

func (s *Source) Name() string { return s.p.Name() }

func (s *Source) FetchQuote(ctx context.Context, identifier string) quote.Result {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return quote.Failure(identifier, s.p.Name(), fmt.Errorf("rate limit wait: %w", err))
		}
	}
	return s.p.FetchQuote(ctx, identifier)
}
