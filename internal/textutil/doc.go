// Package textutil provides text processing utilities for title comparison and
// URL slugs.
//
// The primary use cases are:
//   - Scoring how closely two titles match with a longest-matching-block
//     sequence ratio (two equal strings score 1.0, disjoint strings near 0)
//   - Lower-casing titles with Unicode-aware case mapping before comparison
//   - Building lowercase ASCII slugs for canonical scene URLs
package textutil
