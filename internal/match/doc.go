// Package match suggests the closest known name for a misspelled one.
//
// Names are compared after normalization (case folding, separator and
// CamelCase folding) using edit distance, so "createdAt" and "created_at"
// are considered the same name.
package match
