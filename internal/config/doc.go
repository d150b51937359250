// Package config loads, normalizes, and validates scraper configuration.
//
// It supplies defaults that match the public PMVHaven API, reads an optional
// TOML file, and honours environment fallbacks such as STASH_LOG_DIR (set by
// Stash for scraper processes) and PMVHAVEN_BASE_URL. Every knob the resolver,
// catalog client, and logger need lives on Config so a scrape run discovers
// its settings in one pass.
package config
