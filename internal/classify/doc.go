// Package classify decides the fate of every declared field in every context
// of an expanded rule set.
//
// Precedence, first match wins: the excluded list, the optional list, the
// required list, the context default, the global default, and finally
// Optional. A type override is recorded from whichever list matched (the
// excluded list first) and is dropped for excluded fields.
package classify
