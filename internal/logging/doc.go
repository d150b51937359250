// Package logging assembles the structured slog loggers used by the scraper.
//
// Records fan out to stderr (console or JSON, coloured when attached to a
// terminal) and to an optional side-log file that several scraper processes may
// append to at once; each write to the file holds an advisory lock. Every
// record carries the session_id of the invocation that produced it, and
// context helpers tag lines with the scrape method and stage.
//
// Stdout is never written here: it belongs to the single JSON result line.
package logging
