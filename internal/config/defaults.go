package config

const (
	defaultBaseURL            = "https://pmvhaven.com"
	defaultUserAgent          = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	defaultConnectTimeout     = 10
	defaultReadTimeout        = 20
	defaultSearchLimit        = 32
	defaultSearchPage         = 1
	defaultSearchAttempts     = 3
	defaultDurationTolerance  = 10.0
	defaultPrefilterThreshold = 10
	defaultDetailLimit        = 5
	defaultShortlistSize      = 3
	defaultLogLevel           = "debug"
	defaultLogFormat          = "console"
	defaultLogFile            = "pmvhaven.scraper.log"

	envLogDir  = "STASH_LOG_DIR"
	envBaseURL = "PMVHAVEN_BASE_URL"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		API: API{
			BaseURL:        defaultBaseURL,
			UserAgent:      defaultUserAgent,
			ConnectTimeout: defaultConnectTimeout,
			ReadTimeout:    defaultReadTimeout,
		},
		Search: Search{
			Limit:              defaultSearchLimit,
			Page:               defaultSearchPage,
			Attempts:           defaultSearchAttempts,
			DurationTolerance:  defaultDurationTolerance,
			PrefilterThreshold: defaultPrefilterThreshold,
			DetailLimit:        defaultDetailLimit,
			ShortlistSize:      defaultShortlistSize,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
			File:   defaultLogFile,
		},
	}
}
