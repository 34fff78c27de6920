package config

import (
	"log/slog"
	"time"

	"github.com/secmon-lab/kevtrend/pkg/domain/interfaces"
	"github.com/secmon-lab/kevtrend/pkg/service/feed"
	"github.com/urfave/cli/v3"
)

// Catalog holds catalog feed configuration
type Catalog struct {
	Path            string
	URL             string
	RefreshInterval time.Duration
}

// Flags returns CLI flags for Catalog configuration
func (c *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "catalog-path",
			Usage:       "Local KEV catalog CSV path (takes precedence over the URL)",
			Category:    "Catalog",
			Sources:     cli.EnvVars("KEVTREND_CATALOG_PATH"),
			Destination: &c.Path,
		},
		&cli.StringFlag{
			Name:        "catalog-url",
			Usage:       "KEV catalog CSV URL",
			Category:    "Catalog",
			Value:       feed.DefaultCatalogURL,
			Sources:     cli.EnvVars("KEVTREND_CATALOG_URL"),
			Destination: &c.URL,
		},
		&cli.DurationFlag{
			Name:        "refresh-interval",
			Usage:       "Catalog refresh interval (0 disables refresh)",
			Category:    "Catalog",
			Value:       0,
			Sources:     cli.EnvVars("KEVTREND_REFRESH_INTERVAL"),
			Destination: &c.RefreshInterval,
		},
	}
}

// Configure builds the feed source for this configuration
func (c *Catalog) Configure() interfaces.FeedSource {
	if c.Path != "" {
		return feed.NewFileSource(c.Path)
	}
	return feed.NewHTTPSource(c.URL)
}

// LogValue returns structured log value
func (c Catalog) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("path", c.Path),
		slog.String("url", c.URL),
		slog.Duration("refreshInterval", c.RefreshInterval),
	)
}
