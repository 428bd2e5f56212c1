package commands

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"context-variants/internal/cli/config"
	"context-variants/internal/entity"
	"context-variants/internal/session"
)

// Outcome is the result of resolving one entity.
type Outcome struct {
	Entity *entity.Entity
	Table  *session.Table
	Err    error
}

// Outcomes keeps resolution results in input order.
type Outcomes []Outcome

// Failed counts the entities that did not resolve.
func (o Outcomes) Failed() int {
	n := 0

	for i := range o {
		if o[i].Err != nil {
			n++
		}
	}

	return n
}

// Tables returns the resolved tables in input order, skipping failures.
func (o Outcomes) Tables() []*session.Table {
	out := make([]*session.Table, 0, len(o))

	for i := range o {
		if o[i].Table != nil {
			out = append(out, o[i].Table)
		}
	}

	return out
}

// sessionOptions builds the session options for cfg.
func sessionOptions(cfg *config.Config, log *zerolog.Logger) session.Options {
	return session.Options{Logger: log, OptionalWrapper: cfg.OptionalWrapper}
}

// ResolveAll resolves independent entities with at most jobs sessions at a
// time. A failing entity does not stop the others; only cancellation of ctx
// aborts the run.
func ResolveAll(ctx context.Context, ents []*entity.Entity, opts session.Options, jobs int) (Outcomes, error) {
	out := make(Outcomes, len(ents))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(max(jobs, 1))

	for i, ent := range ents {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}

			table, err := session.Resolve(ent, opts)
			out[i] = Outcome{Entity: ent, Table: table, Err: err}

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
