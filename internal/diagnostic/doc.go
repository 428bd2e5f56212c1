// Package diagnostic provides structured errors and warnings collected while
// resolving context variants.
//
// Diagnostics are the batch channel of the resolver: the validator records
// every conflict and coverage gap it finds instead of stopping at the first,
// and the session fails afterwards if any error was recorded. Structural
// problems in the rule source do not go through this package; they are
// returned immediately as positioned errors by the rule parser.
//
// Key capabilities:
//   - Conflicting classifications for one field in one context
//   - Fields left without a fate in a context
//   - Unknown field names with "did you mean" suggestions
package diagnostic
