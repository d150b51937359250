// Package identification turns a Stash scrape request into a PMVHaven scene.
//
// A fragment is reduced to either a 24-character catalog id (fetched
// directly) or a free-text query. Queries run against the catalog search with
// bounded retries; up to a handful of candidates are fetched in detail,
// scored by title similarity plus a duration bonus, and the Resolver then
// commits to the best match, falls back to a duration match, or returns a
// shortlist for the user to pick from.
//
// The parsing helpers (BuildQuery, ExtractTokens, LocalDurations) are pure and
// safe to call from any goroutine. The Resolver issues catalog requests
// sequentially.
package identification
