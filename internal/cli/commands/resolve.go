package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"context-variants/internal/cli/config"
)

// NewResolveCommand creates the resolve command.
func NewResolveCommand() *cobra.Command {
	in := &InputOptions{}
	cmd := &cobra.Command{
		Use:   "resolve [definition files...]",
		Short: "Resolve the per-context field tables",
		Long: `Resolve the rules of every entity into per-context field tables.

The tables are printed to stdout, or written one file per entity when
out_dir is set. Diagnostics go to stderr. Nothing is printed or written
when any entity fails.

Output adapts to the output setting:
  - table: box-drawn grid per entity
  - yaml, json: stable export documents`,
		Example: `  # Print the tables of a definition file
  context-variants resolve users.yaml

  # Export annotated structs as JSON files
  context-variants resolve --package ./models -o json --out-dir build/variants`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, args, in)
		},
	}

	in.AddFlags(cmd.Flags())

	return cmd
}

func runResolve(cmd *cobra.Command, files []string, in *InputOptions) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	log := config.Logger(ctx)

	ents, err := in.Load(files)
	if err != nil {
		return err
	}

	outcomes, err := ResolveAll(ctx, ents, sessionOptions(cfg, &log), cfg.Jobs)
	if err != nil {
		return err
	}

	styles := DefaultStyles()
	for _, o := range outcomes {
		renderOutcome(cmd.ErrOrStderr(), styles, o)
	}

	if failed := outcomes.Failed(); failed > 0 {
		return fmt.Errorf("%w: %d of %d entities", ErrResolveFailed, failed, len(outcomes))
	}

	tables := outcomes.Tables()

	if cfg.OutDir == "" {
		return render(cmd.OutOrStdout(), cfg.Output, tables)
	}

	outFiles, err := outputFiles(cfg.Output, tables)
	if err != nil {
		return err
	}

	if err := WriteFiles(outFiles, cfg.OutDir); err != nil {
		return err
	}

	log.Debug().Int("files", len(outFiles)).Str("dir", cfg.OutDir).Msg("tables written")
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d %s to %s\n", len(outFiles), plural(len(outFiles), "file", "files"), cfg.OutDir)

	return nil
}
