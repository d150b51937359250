// Package catalog provides the minimal PMVHaven API client used during scene
// resolution.
//
// It exposes the watch-page detail lookup by video id and the keyword search
// endpoint. Responses are returned as document values because the remote
// schema is not stable: Candidates locates the result list under any of the
// known keys and VideoID reads whichever id field a record carries.
//
// Transport failures are reported as services.ErrTransport; a reply that is not
// JSON, or that carries an "error" member, is reported as services.ErrBadResponse
// so callers can drop a single candidate without aborting the whole run. Options
// allow tests to supply custom HTTP clients without modifying production code.
package catalog
