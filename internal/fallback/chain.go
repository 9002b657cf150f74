// Package fallback tries vendor sources in a fixed priority order and
// writes resolved prices back to portfolio storage.
package fallback

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"marketdata/internal/provider"
	"marketdata/internal/quote"
)

const chainName = "fallback-chain"

// TryInOrder asks each source for a quote until one succeeds. It returns
// the first successful result along with the failures that preceded it;
// on total failure the winner's Success field is false and failures holds
// every attempt.
func TryInOrder(ctx context.Context, sources []provider.Source, identifier string, log *logrus.Entry) (quote.Result, []quote.Result) {
	var failures []quote.Result
	for _, src := range sources {
		r := src.FetchQuote(ctx, identifier)
		if r.Success {
			return r, failures
		}
		if log != nil {
			log.WithFields(logrus.Fields{
				"identifier": identifier,
				"provider":   src.Name(),
				"error":      r.Error,
			}).Warn("provider failed, trying next")
		}
		failures = append(failures, r)
	}
	return quote.Result{}, failures
}

// Chain is a provider.Source that consults its sources in order and
// returns the first success. The source order is the priority order.
type Chain struct {
	name    string
	sources []provider.Source
	log     *logrus.Entry

	mu    sync.Mutex
	stats map[string]*SourceStats
}

// SourceStats counts outcomes per adapter since the chain was built.
type SourceStats struct {
	Successes int
	Failures  int
}

func New(log *logrus.Entry, sources ...provider.Source) *Chain {
	return &Chain{
		name:    chainName,
		sources: sources,
		log:     log,
		stats:   make(map[string]*SourceStats),
	}
}

func (c *Chain) Name() string { return c.name }

func (c *Chain) FetchQuote(ctx context.Context, identifier string) quote.Result {
	if len(c.sources) == 0 {
		return quote.Failure(identifier, c.name, fmt.Errorf("no providers configured"))
	}
	winner, failures := TryInOrder(ctx, c.sources, identifier, c.log)
	for i := range failures {
		c.record(c.sources[i].Name(), false)
	}
	if winner.Success {
		c.record(winner.DataSource, true)
		return winner
	}
	last := failures[len(failures)-1]
	r := quote.Failure(identifier, c.name,
		fmt.Errorf("All providers failed. Last error: %s", last.Error))
	return r
}

// FetchMultiple resolves identifiers one at a time, preserving order.
func (c *Chain) FetchMultiple(ctx context.Context, identifiers []string) []quote.Result {
	out := make([]quote.Result, 0, len(identifiers))
	for _, id := range identifiers {
		out = append(out, c.FetchQuote(ctx, id))
	}
	return out
}

// Stats returns a snapshot of per-adapter outcome counters.
func (c *Chain) Stats() map[string]SourceStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]SourceStats, len(c.stats))
	for name, s := range c.stats {
		out[name] = *s
	}
	return out
}

func (c *Chain) record(name string, success bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats[name]
	if s == nil {
		s = &SourceStats{}
		c.stats[name] = s
	}
	if success {
		s.Successes++
	} else {
		s.Failures++
	}
}
