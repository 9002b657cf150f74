// Package store persists resolved prices in PostgreSQL. It implements
// the fallback.Sink contract on top of a pgx pool, with schema managed
// by golang-migrate.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"marketdata/internal/fallback"
	"marketdata/internal/quote"
)

type Store struct {
	pool *pgxpool.Pool
}

// Open connects a pool and verifies the database answers.
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() { s.pool.Close() }

// Migrate applies pending schema migrations from migrationsDir. A schema
// that is already current is not an error.
func Migrate(databaseURL, migrationsDir string) error {
	m, err := migrate.New("file://"+migrationsDir, databaseURL)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// ListAssetIdentifiers returns every portfolio asset identifier, ordered
// for stable refresh runs.
func (s *Store) ListAssetIdentifiers(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT identifier FROM assets ORDER BY identifier`)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan asset identifier: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// Begin opens one atomic price update batch.
func (s *Store) Begin(ctx context.Context) (fallback.Tx, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &storeTx{tx: tx}, nil
}

type storeTx struct {
	tx pgx.Tx
}

func (t *storeTx) FindAssetByIdentifier(ctx context.Context, identifier string) (*fallback.Asset, error) {
	var a fallback.Asset
	err := t.tx.QueryRow(ctx,
		`SELECT id, identifier FROM assets WHERE upper(identifier) = upper($1)`,
		identifier,
	).Scan(&a.ID, &a.Identifier)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (t *storeTx) UpdateAssetPrice(ctx context.Context, assetID int64, r quote.Result) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE assets
		    SET current_price = $2,
		        day_change = $3,
		        day_change_percent = $4,
		        price_source = $5,
		        price_updated_at = now()
		  WHERE id = $1`,
		assetID, decArg(r.CurrentPrice), decArg(r.DayChange), decArg(r.DayChangePercent), r.DataSource)
	return err
}

func (t *storeTx) UpsertPriceHistory(ctx context.Context, assetID int64, r quote.Result) error {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	dailyReturn := t.dailyReturn(ctx, assetID, today, r)

	_, err := t.tx.Exec(ctx,
		`INSERT INTO price_history
		        (asset_id, price_date, open_price, high_price, low_price, close_price,
		         volume, daily_return, data_source)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (asset_id, price_date) DO UPDATE
		    SET open_price = EXCLUDED.open_price,
		        high_price = EXCLUDED.high_price,
		        low_price = EXCLUDED.low_price,
		        close_price = EXCLUDED.close_price,
		        volume = EXCLUDED.volume,
		        daily_return = EXCLUDED.daily_return,
		        data_source = EXCLUDED.data_source`,
		assetID, today,
		decArg(r.OpenPrice), decArg(r.HighPrice), decArg(r.LowPrice), decArg(r.CurrentPrice),
		r.Volume, dailyReturn, r.DataSource)
	return err
}

// dailyReturn computes today's percentage return against the most recent
// prior close on record. Missing history leaves it null.
func (t *storeTx) dailyReturn(ctx context.Context, assetID int64, today time.Time, r quote.Result) any {
	if !r.CurrentPrice.Valid {
		return nil
	}
	var prevStr string
	err := t.tx.QueryRow(ctx,
		`SELECT close_price::text FROM price_history
		  WHERE asset_id = $1 AND price_date < $2 AND close_price IS NOT NULL
		  ORDER BY price_date DESC LIMIT 1`,
		assetID, today,
	).Scan(&prevStr)
	if err != nil {
		return nil
	}
	prev, err := decimal.NewFromString(prevStr)
	if err != nil || prev.IsZero() {
		return nil
	}
	ret := r.CurrentPrice.Decimal.Sub(prev).Div(prev).Mul(decimal.NewFromInt(100))
	return ret.String()
}

func (t *storeTx) Commit(ctx context.Context) error   { return t.tx.Commit(ctx) }
func (t *storeTx) Rollback(ctx context.Context) error { return t.tx.Rollback(ctx) }

// decArg renders an optional decimal for a query argument. pgx accepts
// the textual form for numeric columns, so no extra codec is needed.
func decArg(d decimal.NullDecimal) any {
	if !d.Valid {
		return nil
	}
	return d.Decimal.String()
}
