package session

import (
	"fmt"

	"github.com/rs/zerolog"

	"context-variants/internal/classify"
	"context-variants/internal/entity"
	"context-variants/internal/expand"
	"context-variants/internal/rules"
	"context-variants/internal/validate"
)

// Options configures a session.
type Options struct {
	// Logger receives debug output. Nil discards it.
	Logger *zerolog.Logger
	// OptionalWrapper is the optional type template, "*%s" when empty.
	OptionalWrapper string
}

// Session resolves one entity. It owns a private copy of the entity and is
// not safe for concurrent use; independent sessions may run in parallel.
type Session struct {
	ent  *entity.Entity
	opts Options
	log  zerolog.Logger
}

// New creates a session for ent.
func New(ent *entity.Entity, opts Options) *Session {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = opts.Logger.With().Str("entity", ent.Name).Logger()
	}

	return &Session{ent: ent.Clone(), opts: opts, log: log}
}

// Resolve runs the pipeline. On success the returned table is complete; on
// failure the error is a *rules.Error (structural) or a *ValidationError
// (semantic), possibly wrapped, and the table is nil.
func (s *Session) Resolve() (*Table, error) {
	if err := s.ent.Validate(); err != nil {
		return nil, err
	}

	opt, err := classify.NewOptionalizer(s.opts.OptionalWrapper)
	if err != nil {
		return nil, err
	}

	parsed, err := rules.Parse(s.ent.Rules)
	if err != nil {
		return nil, fmt.Errorf("entity %s: %w", s.ent.Name, err)
	}

	s.log.Debug().
		Int("contexts", len(parsed.Contexts)).
		Int("groups", len(parsed.Groups)).
		Msg("rules parsed")

	expanded, err := expand.Expand(parsed, s.ent.FieldNames())
	if err != nil {
		return nil, fmt.Errorf("entity %s: %w", s.ent.Name, err)
	}

	cls := classify.New(expanded, s.ent, opt)

	diags := validate.New(s.ent, parsed, expanded, cls).Validate().WithEntity(s.ent.Name)
	if diags.HasErrors() {
		s.log.Debug().
			Int("errors", len(diags.Errors)).
			Int("warnings", len(diags.Warnings)).
			Msg("validation failed")

		return nil, &ValidationError{Entity: s.ent.Name, Diagnostics: diags}
	}

	table := &Table{
		Entity:       s.ent.Name,
		TypeParams:   s.ent.TypeParams,
		Origin:       s.ent.Origin,
		Contexts:     make([]ContextTable, 0, len(expanded.Contexts)),
		BuildBase:    expanded.BuildBase,
		OptionalBase: expanded.OptionalBase,
		Warnings:     diags.Warnings,
	}

	for i := range expanded.Contexts {
		ctx := &expanded.Contexts[i]
		ct := ContextTable{Context: ctx.Name, Name: expanded.OutputName(ctx.Name)}

		for _, res := range cls.Context(ctx) {
			if res.Classification == rules.Excluded {
				continue
			}

			ct.Fields = append(ct.Fields, ResolvedFieldSpec{
				Context:        ctx.Name,
				Field:          res.Field,
				Classification: res.Classification,
				Source:         res.Source,
				Type:           res.Type,
				Overridden:     res.Overridden,
				Attrs:          res.Attrs,
			})
		}

		s.log.Debug().
			Str("context", ctx.Name).
			Str("output", ct.Name).
			Int("fields", len(ct.Fields)).
			Msg("context resolved")

		table.Contexts = append(table.Contexts, ct)
	}

	if expanded.BuildBase {
		for _, b := range cls.Base() {
			table.Base = append(table.Base, BaseField{Field: b.Field, Type: b.Type, Attrs: b.Attrs})
		}
	}

	return table, nil
}

// Resolve is a shorthand for New(ent, opts).Resolve().
func Resolve(ent *entity.Entity, opts Options) (*Table, error) {
	return New(ent, opts).Resolve()
}
