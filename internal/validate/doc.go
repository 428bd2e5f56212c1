// Package validate checks a classified rule set and collects every finding
// instead of stopping at the first.
//
// Errors:
//   - field_conflict: a field selected by more than one of a context's
//     requires/optional/excludes lists.
//   - missing_coverage: fields selected by no list in a context that has no
//     default, and with no global default.
//
// Warnings:
//   - unknown_field: a literal reference, exception or group member that
//     names no declared field.
//   - duplicate_reference: a field selected twice by the same list.
package validate
