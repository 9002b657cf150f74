// Package app wires configuration into a ready-to-use provider stack.
package app

import (
	"time"

	"github.com/sirupsen/logrus"

	"marketdata/internal/config"
	"marketdata/internal/httpx"
	"marketdata/internal/provider/alphavantage"
	"marketdata/internal/provider/throttle"
	"marketdata/internal/provider/tradegate"
	"marketdata/internal/provider/twelvedata"
	"marketdata/internal/provider/yahoo"
	"marketdata/internal/router"
)

// BuildRouter assembles the enabled vendors in priority order: regional
// Tradegate for German and other European listings, Yahoo as the global
// workhorse, then the keyed vendors as backstops. Each vendor sits
// behind its own request throttle.
func BuildRouter(cfg config.Config, log *logrus.Entry) *router.Router {
	hc := httpx.New(time.Duration(cfg.HTTP.TimeoutSec) * time.Second)

	var sources []router.RegionalSource
	if p := cfg.Providers.Tradegate; p.Enabled {
		sources = append(sources, router.RegionalSource{
			Source:    throttle.Wrap(tradegate.New(tradegate.Config{BaseURL: p.Endpoint}, hc), interval(p)),
			Countries: []string{"DE"},
			European:  true,
		})
	}
	if p := cfg.Providers.Yahoo; p.Enabled {
		sources = append(sources, router.RegionalSource{
			Source: throttle.Wrap(yahoo.New(yahoo.Config{BaseURL: p.Endpoint}, hc), interval(p)),
		})
	}
	if p := cfg.Providers.TwelveData; p.Enabled {
		sources = append(sources, router.RegionalSource{
			Source: throttle.Wrap(twelvedata.New(twelvedata.Config{BaseURL: p.Endpoint, APIKey: p.APIKey}, hc), interval(p)),
		})
	}
	if p := cfg.Providers.AlphaVantage; p.Enabled {
		client, err := alphavantage.NewClient(p.APIKey, avOptions(p)...)
		if err != nil {
			log.WithError(err).Warn("alphavantage client unavailable")
		} else {
			sources = append(sources, router.RegionalSource{
				Source: throttle.Wrap(alphavantage.NewSource("", client), interval(p)),
			})
		}
	}
	return router.New(log, sources...)
}

func avOptions(p config.ProviderConfig) []alphavantage.ClientOption {
	if p.Endpoint == "" {
		return nil
	}
	return []alphavantage.ClientOption{alphavantage.WithBaseURL(p.Endpoint)}
}

func interval(p config.ProviderConfig) time.Duration {
	return time.Duration(p.MinRequestIntervalSec) * time.Second
}
