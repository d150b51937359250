package testsupport

import (
	"path/filepath"
	"testing"

	"pmvhaven/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a validated default config whose side log lives in a
// per-test temp directory, then applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Logging.Dir = filepath.Join(base, "logs")
	cfgVal.Logging.Level = "debug"

	builder := &configBuilder{t: t, baseDir: base, cfg: &cfgVal}
	for _, opt := range opts {
		opt(builder)
	}
	if err := builder.cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return builder.cfg
}

// WithBaseURL points the config at a test catalog server.
func WithBaseURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.API.BaseURL = url
	}
}

// WithSearch mutates the search section in place.
func WithSearch(fn func(*config.Search)) ConfigOption {
	return func(b *configBuilder) {
		fn(&b.cfg.Search)
	}
}

// WithoutSideLog disables the shared log file.
func WithoutSideLog() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Logging.File = ""
	}
}
