// Package services defines shared utilities consumed by the resolution
// pipeline and the remote catalog client.
//
// Key responsibilities:
//   - Context helpers that stamp the scrape method, pipeline stage, and
//     session identifier for logging and tracing.
//   - Structured error markers plus the Wrap helper that keep the failure
//     taxonomy (input, transport, bad response, no match) visible to the
//     dispatcher while preserving the underlying cause.
//
// Use these helpers when wiring new pipeline steps so failure classification
// and log correlation stay uniform.
package services
