// Command fetch resolves quotes for identifiers given on the command
// line and prints them as JSON. Handy for checking what the dashboard
// would see for a ticker before adding it to the portfolio.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"marketdata/internal/app"
	"marketdata/internal/config"
	"marketdata/internal/logger"
	"marketdata/internal/provider"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "", "path to config file")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall fetch deadline")
	flag.Parse()

	identifiers := splitArgs(flag.Args())
	if len(identifiers) == 0 {
		fmt.Fprintln(os.Stderr, "usage: fetch [-config file] IDENTIFIER [IDENTIFIER...]")
		os.Exit(2)
	}

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

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	rt := app.BuildRouter(cfg, logger.Component(log, "fetch"))
	results := provider.FetchAll(ctx, rt, identifiers)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		fmt.Fprintln(os.Stderr, "encode results:", err)
		os.Exit(1)
	}
}

// splitArgs accepts both space- and comma-separated identifier lists.
func splitArgs(args []string) []string {
	var out []string
	for _, a := range args {
		for _, part := range strings.Split(a, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
