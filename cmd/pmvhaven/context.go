package main

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"pmvhaven/internal/catalog"
	"pmvhaven/internal/config"
	"pmvhaven/internal/identification"
	"pmvhaven/internal/logging"
	"pmvhaven/internal/services"
)

// searcherFactory builds the catalog client for a loaded configuration.
type searcherFactory func(cfg *config.Config, logger *slog.Logger) (catalog.Searcher, error)

type commandContext struct {
	configFlag   string
	logLevelFlag string
	stderr       io.Writer
	newSearcher  searcherFactory

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(stderr io.Writer) *commandContext {
	if stderr == nil {
		stderr = os.Stderr
	}
	return &commandContext{
		stderr:      stderr,
		newSearcher: newCatalogSearcher,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(strings.TrimSpace(c.configFlag))
		if err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "config", "load", "", err)
			return
		}
		if level := strings.TrimSpace(c.logLevelFlag); level != "" {
			cfg.Logging.Level = strings.ToLower(level)
			if err := cfg.Validate(); err != nil {
				c.configErr = services.Wrap(services.ErrConfiguration, "config", "log-level flag", "", err)
				return
			}
		}
		c.config = cfg
		c.configPath = path
		c.configExists = exists
	})
	return c.config, c.configErr
}

// loggerValue returns the invocation logger. When configuration could not be
// loaded it falls back to an info-level stderr logger.
func (c *commandContext) loggerValue() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, _ := c.ensureConfig()
		logger, err := logging.NewFromConfig(cfg, c.stderr)
		if err != nil {
			logger, _ = logging.NewFromConfig(nil, c.stderr)
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) resolver() (*identification.Resolver, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger := c.loggerValue()
	searcher, err := c.newSearcher(cfg, logger)
	if err != nil {
		return nil, err
	}
	return identification.NewResolver(searcher, identification.SettingsFromConfig(cfg), logger), nil
}

func newCatalogSearcher(cfg *config.Config, logger *slog.Logger) (catalog.Searcher, error) {
	client, err := catalog.New(cfg.API.BaseURL,
		catalog.WithUserAgent(cfg.API.UserAgent),
		catalog.WithHTTPClient(catalog.NewHTTPClient(catalog.Timeouts{
			Connect: cfg.ConnectTimeout(),
			Read:    cfg.ReadTimeout(),
		})),
		catalog.WithLogger(logger),
	)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "config", "catalog client", "", err)
	}
	return client, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
