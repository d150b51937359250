package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// API contains connection settings for the PMVHaven HTTP API.
type API struct {
	BaseURL   string `toml:"base_url"`
	UserAgent string `toml:"user_agent"`
	// Timeouts are in seconds.
	ConnectTimeout int `toml:"connect_timeout"`
	ReadTimeout    int `toml:"read_timeout"`
}

// Search contains the tuning knobs for candidate search and scoring.
type Search struct {
	Limit              int     `toml:"limit"`
	Page               int     `toml:"page"`
	Attempts           int     `toml:"attempts"`
	DurationTolerance  float64 `toml:"duration_tolerance"`
	PrefilterThreshold int     `toml:"prefilter_threshold"`
	DetailLimit        int     `toml:"detail_limit"`
	ShortlistSize      int     `toml:"shortlist_size"`
	// BroadenOnRetry drops the leading query word on each retry.
	BroadenOnRetry bool `toml:"broaden_on_retry"`
	// SummaryDurationFilter narrows candidates by summary durations before
	// detail fetches.
	SummaryDurationFilter bool `toml:"summary_duration_filter"`
}

// Logging contains configuration for diagnostic output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Dir    string `toml:"dir"`
	// File is the side-log name inside Dir. Empty disables the side log.
	File string `toml:"file"`
}

// Config encapsulates all configuration values for the scraper.
type Config struct {
	API     API     `toml:"api"`
	Search  Search  `toml:"search"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/pmvhaven/config.toml")
}

// Load locates, parses, and validates a configuration file. It returns the
// config, the path consulted, and whether that file existed. A missing file
// yields defaults.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

// resolveConfigPath checks, in order: the explicit path, the per-user default,
// pmvhaven.toml in the working directory, and pmvhaven.toml beside the
// executable (the Stash scrapers directory).
func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	candidates := []string{defaultPath}
	if projectPath, err := filepath.Abs("pmvhaven.toml"); err == nil {
		candidates = append(candidates, projectPath)
	}
	if dir := executableDir(); dir != "" {
		candidates = append(candidates, filepath.Join(dir, "pmvhaven.toml"))
	}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true, nil
		}
	}
	return defaultPath, false, nil
}

// ConnectTimeout returns the dial timeout.
func (c *Config) ConnectTimeout() time.Duration {
	return time.Duration(c.API.ConnectTimeout) * time.Second
}

// ReadTimeout returns the response timeout.
func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.API.ReadTimeout) * time.Second
}

// LogFilePath returns the side-log location, or "" when disabled.
func (c *Config) LogFilePath() string {
	if strings.TrimSpace(c.Logging.File) == "" || strings.TrimSpace(c.Logging.Dir) == "" {
		return ""
	}
	return filepath.Join(c.Logging.Dir, c.Logging.File)
}

// Encode renders the config as TOML.
func (c *Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Dir(exe)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
