// Command refresh updates stored prices for every portfolio asset. It
// applies pending schema migrations, fetches a quote per asset through
// the regional router and writes the batch back in one transaction.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"marketdata/internal/app"
	"marketdata/internal/config"
	"marketdata/internal/fallback"
	"marketdata/internal/logger"
	"marketdata/internal/store"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "", "path to config file")
	timeout := flag.Duration("timeout", 15*time.Minute, "overall refresh deadline")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log, err := logger.Configure(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output, cfg.Logging.MaxAge)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	rlog := logger.Component(log, "refresh")

	if cfg.Database.URL == "" {
		rlog.Fatal("database.url is required (or set DATABASE_URL)")
	}
	if err := store.Migrate(cfg.Database.URL, cfg.Database.MigrationsDir); err != nil {
		rlog.WithError(err).Fatal("migrate schema")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	st, err := store.Open(ctx, cfg.Database.URL)
	if err != nil {
		rlog.WithError(err).Fatal("open store")
	}
	defer st.Close()

	identifiers, err := st.ListAssetIdentifiers(ctx)
	if err != nil {
		rlog.WithError(err).Fatal("list assets")
	}
	if len(identifiers) == 0 {
		rlog.Info("no assets to refresh")
		return
	}

	rt := app.BuildRouter(cfg, rlog)
	summary, err := fallback.UpdatePrices(ctx, rt, st, identifiers, rlog)
	if err != nil {
		rlog.WithError(err).Fatal("price refresh failed")
	}

	rlog.WithFields(logrus.Fields{
		"updated":            summary.UpdatedCount,
		"failed":             summary.FailedCount,
		"failed_identifiers": summary.FailedIdentifiers,
	}).Info("refresh complete")
}
