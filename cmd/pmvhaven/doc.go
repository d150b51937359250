// Package main hosts the pmvhaven scraper entrypoint and command graph.
//
// Stash invokes the binary with a single method argument (sceneByURL or
// sceneByFragment) and a JSON fragment on stdin. Exactly one JSON object is
// written to stdout: the resolved scene, a selection shortlist, or an error
// object. Diagnostics go to stderr and the shared side log.
//
// The explain and config commands are operator tooling and are not part of
// the Stash invocation contract.
package main
