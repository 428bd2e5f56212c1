// Package commands implements the context-variants subcommands.
//
// Every command reads its configuration and logger from the command context,
// where the root command stores them before running.
package commands
