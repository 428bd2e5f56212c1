package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"context-variants/internal/cli/config"
)

// ErrResolveFailed is returned when at least one entity did not resolve.
var ErrResolveFailed = errors.New("resolution failed")

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	in := &InputOptions{}
	cmd := &cobra.Command{
		Use:   "check [definition files...]",
		Short: "Validate rules without printing the resolved tables",
		Long: `Resolve every entity and report conflicts, coverage gaps and warnings.

Exits non-zero when any entity fails to resolve.`,
		Example: `  # Check a definition file
  context-variants check users.yaml

  # Check annotated structs in a Go package
  context-variants check --package ./models`,
		RunE: func(cmd *cobra.Command, args []string) error {
			outcomes, err := checkOnce(cmd.Context(), cmd.OutOrStdout(), args, in)
			if err != nil {
				return err
			}

			if failed := outcomes.Failed(); failed > 0 {
				return fmt.Errorf("%w: %d of %d entities", ErrResolveFailed, failed, len(outcomes))
			}

			return nil
		},
	}

	in.AddFlags(cmd.Flags())

	return cmd
}

// checkOnce loads and resolves the inputs and writes every diagnostic
// followed by a summary line to w.
func checkOnce(ctx context.Context, w io.Writer, files []string, in *InputOptions) (Outcomes, error) {
	cfg := config.FromContext(ctx)
	log := config.Logger(ctx)

	ents, err := in.Load(files)
	if err != nil {
		return nil, err
	}

	outcomes, err := ResolveAll(ctx, ents, sessionOptions(cfg, &log), cfg.Jobs)
	if err != nil {
		return nil, err
	}

	styles := DefaultStyles()
	for _, o := range outcomes {
		renderOutcome(w, styles, o)
	}

	renderSummary(w, styles, outcomes)

	return outcomes, nil
}
