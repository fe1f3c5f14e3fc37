// Package diagnostic provides structured warnings, errors, and infos for the
// record generator.
//
// Key capabilities:
//   - Invalid annotation usage warnings, grouped by variant and expected kind
//   - Per-request failure reports (unsupported shapes, write failures)
//   - Aggregation across a whole processing pass
package diagnostic
