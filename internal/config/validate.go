package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validateSearch(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateAPI() error {
	parsed, err := url.Parse(c.API.BaseURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return fmt.Errorf("api.base_url must be an absolute http(s) URL, got %q", c.API.BaseURL)
	}
	if c.API.ConnectTimeout <= 0 {
		return errors.New("api.connect_timeout must be positive")
	}
	if c.API.ReadTimeout <= 0 {
		return errors.New("api.read_timeout must be positive")
	}
	return nil
}

func (c *Config) validateSearch() error {
	s := c.Search
	switch {
	case s.Limit <= 0:
		return errors.New("search.limit must be positive")
	case s.Page < 1:
		return errors.New("search.page must be at least 1")
	case s.Attempts < 1:
		return errors.New("search.attempts must be at least 1")
	case s.DurationTolerance < 0:
		return errors.New("search.duration_tolerance must not be negative")
	case s.PrefilterThreshold < 0:
		return errors.New("search.prefilter_threshold must not be negative")
	case s.DetailLimit < 1:
		return errors.New("search.detail_limit must be at least 1")
	case s.ShortlistSize < 1:
		return errors.New("search.shortlist_size must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
