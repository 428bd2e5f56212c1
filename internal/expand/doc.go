// Package expand rewrites a parsed rule set so that every context list holds
// only literal field references and wildcards.
//
// Group names are replaced by their members (minus exceptions), group
// definitions that contain a wildcard are resolved against the declared
// fields, and references to undefined groups are rejected. Wildcards inside
// context lists are kept as-is; the classifier matches them against each
// field directly.
package expand
