// Package document models loosely typed JSON payloads as an explicit tagged
// value.
//
// The remote catalog and the caller's fragment are not schema-stable: the same
// field may arrive as a string, a number, a list, or be absent, and result lists
// move between top-level and nested keys. Value keeps that shape intact and
// exposes named operations (recursive string collection, fallback-path lookup,
// numeric coercion) instead of ad hoc type switches at every call site.
//
// Object keys retain their wire order so traversals are deterministic.
package document
