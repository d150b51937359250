// Package stash defines the JSON shapes exchanged with the calling media
// organizer: the search fragment read from standard input and the scene,
// selection, or error object written to standard output.
//
// Scene and SelectionOptions are distinguishable on the wire: only
// SelectionOptions carries a "results" key.
package stash
