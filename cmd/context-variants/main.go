// Package main provides the CLI entrypoint for context-variants.
//
// context-variants resolves, for every context of a record definition, which
// fields are required, optional or excluded:
//   - Reads YAML definition files or annotated Go structs
//   - Parses the rule language and expands field groups
//   - Reports conflicts and coverage gaps with suggestions
//   - Prints or exports the resolved per-context tables
package main

import (
	"os"

	"context-variants/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
