// Package session runs one resolution over one entity: parse the rule
// source, expand groups, classify every field in every context, validate,
// and expose the resolved table.
//
// Structural problems in the rule source stop the session immediately with a
// *rules.Error. Semantic problems are collected in full and returned together
// as a *ValidationError. Either way no table is produced; a table is only
// returned when resolution succeeds.
package session
