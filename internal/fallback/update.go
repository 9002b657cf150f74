package fallback

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"marketdata/internal/provider"
	"marketdata/internal/quote"
)

// Asset is the portfolio row an identifier resolves to.
type Asset struct {
	ID         int64
	Identifier string
}

// Sink is the storage the chain writes resolved prices into.
type Sink interface {
	Begin(ctx context.Context) (Tx, error)
}

// Tx is one atomic price update batch. FindAssetByIdentifier returns
// (nil, nil) when no asset matches.
type Tx interface {
	FindAssetByIdentifier(ctx context.Context, identifier string) (*Asset, error)
	UpdateAssetPrice(ctx context.Context, assetID int64, r quote.Result) error
	UpsertPriceHistory(ctx context.Context, assetID int64, r quote.Result) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UpdateSummary reports one UpdatePrices run.
type UpdateSummary struct {
	UpdatedCount      int      `json:"updated_count"`
	FailedCount       int      `json:"failed_count"`
	FailedIdentifiers []string `json:"failed_identifiers,omitempty"`
}

// UpdatePrices fetches quotes for all identifiers from src and persists
// the successful ones in a single transaction. Fetching happens before
// the transaction opens so rate-limit waits never hold database locks.
// An identifier with no matching asset is logged and skipped; it counts
// neither as updated nor as failed. Fetch failures never abort the
// batch, but any persistence error rolls everything back.
func UpdatePrices(ctx context.Context, src provider.Source, sink Sink, identifiers []string, log *logrus.Entry) (UpdateSummary, error) {
	var summary UpdateSummary

	results := provider.FetchAll(ctx, src, identifiers)

	tx, err := sink.Begin(ctx)
	if err != nil {
		return summary, fmt.Errorf("begin price update batch: %w", err)
	}

	for _, r := range results {
		if !r.Success {
			summary.FailedCount++
			summary.FailedIdentifiers = append(summary.FailedIdentifiers, r.Identifier)
			continue
		}
		asset, err := tx.FindAssetByIdentifier(ctx, r.Identifier)
		if err != nil {
			_ = tx.Rollback(ctx)
			return summary, fmt.Errorf("look up asset %q: %w", r.Identifier, err)
		}
		if asset == nil {
			if log != nil {
				log.WithField("identifier", r.Identifier).
					Warn("quote resolved but no portfolio asset matches, skipping")
			}
			continue
		}
		if err := tx.UpdateAssetPrice(ctx, asset.ID, r); err != nil {
			_ = tx.Rollback(ctx)
			return summary, fmt.Errorf("update asset %q: %w", r.Identifier, err)
		}
		if err := tx.UpsertPriceHistory(ctx, asset.ID, r); err != nil {
			_ = tx.Rollback(ctx)
			return summary, fmt.Errorf("record price history for %q: %w", r.Identifier, err)
		}
		summary.UpdatedCount++
	}

	if err := tx.Commit(ctx); err != nil {
		_ = tx.Rollback(ctx)
		return summary, fmt.Errorf("commit price update batch: %w", err)
	}

	if log != nil {
		log.WithFields(logrus.Fields{
			"updated": summary.UpdatedCount,
			"failed":  summary.FailedCount,
		}).Info("price update batch committed")
	}
	return summary, nil
}
