package classify

import (
	"context-variants/internal/common"
	"context-variants/internal/entity"
	"context-variants/internal/rules"
)

// Source tells which rule decided a classification.
type Source int

const (
	// SourceList means the field was matched by a requires/optional/excludes list.
	SourceList Source = iota
	// SourceContextDefault means the context's default(...) applied.
	SourceContextDefault
	// SourceGlobalDefault means the global default directive applied.
	SourceGlobalDefault
	// SourceFallback means nothing applied and the field became Optional.
	SourceFallback
)

func (s Source) String() string {
	switch s {
	case SourceList:
		return "list"
	case SourceContextDefault:
		return "context_default"
	case SourceGlobalDefault:
		return "global_default"
	case SourceFallback:
		return "fallback"
	default:
		return common.UnknownStr
	}
}

// ListMatch records that one reference list of a context selected a field.
type ListMatch struct {
	Classification rules.Classification
	// Ref is the first reference in the list that selected the field.
	Ref rules.FieldRef
	// Count is how many references in the list selected the field.
	Count int
	// Override is the first type override among the selecting references.
	Override string
}

// Result is the fate of one field in one context.
type Result struct {
	Field          string
	Classification rules.Classification
	Source         Source
	// Type is the effective type. Empty for excluded fields.
	Type string
	// Overridden is true when Type comes from a type override.
	Overridden bool
	// Attrs is the effective overlay. Empty for excluded fields.
	Attrs entity.Overlay
}

// BaseField is one field of the unmodified base record.
type BaseField struct {
	Field string
	Type  string
	Attrs entity.Overlay
}

// Classifier classifies the fields of one entity under one expanded rule set.
type Classifier struct {
	rs       *rules.RuleSet
	ent      *entity.Entity
	declared map[string]struct{}
	opt      *Optionalizer
}

// New creates a classifier. rs must already be expanded.
func New(rs *rules.RuleSet, ent *entity.Entity, opt *Optionalizer) *Classifier {
	return &Classifier{
		rs:       rs,
		ent:      ent,
		declared: common.SetOf(ent.FieldNames()),
		opt:      opt,
	}
}

// Matches tests field against every reference of the context and returns
// one entry per list that selected it, in required, optional, excluded order.
func (c *Classifier) Matches(ctx *rules.Context, field string) []ListMatch {
	var out []ListMatch

	for _, cl := range rules.Classifications {
		var m *ListMatch

		for _, ref := range ctx.Refs(cl) {
			if !ref.Matches(field, c.declared) {
				continue
			}

			if m == nil {
				m = &ListMatch{Classification: cl, Ref: ref}
			}

			if m.Override == "" && ref.HasOverride() {
				m.Override = ref.Type
			}

			m.Count++
		}

		if m != nil {
			out = append(out, *m)
		}
	}

	return out
}

// precedence is the order in which lists decide a classification.
var precedence = []rules.Classification{rules.Excluded, rules.Optional, rules.Required}

// Classify decides the fate of f in ctx.
func (c *Classifier) Classify(ctx *rules.Context, f *entity.FieldDescriptor) Result {
	matches := c.Matches(ctx, f.Name)
	res := Result{Field: f.Name}

	var matched *ListMatch

	for _, cl := range precedence {
		for i := range matches {
			if matches[i].Classification == cl {
				matched = &matches[i]
				break
			}
		}

		if matched != nil {
			break
		}
	}

	switch {
	case matched != nil:
		res.Classification, res.Source = matched.Classification, SourceList
	case ctx.Default != nil:
		res.Classification, res.Source = *ctx.Default, SourceContextDefault
	case c.rs.Default != nil:
		res.Classification, res.Source = *c.rs.Default, SourceGlobalDefault
	default:
		res.Classification, res.Source = rules.Optional, SourceFallback
	}

	if res.Classification == rules.Excluded {
		return res
	}

	res.Type = f.Type
	if matched != nil && matched.Override != "" {
		res.Type, res.Overridden = matched.Override, true
	}

	if res.Classification == rules.Optional && (res.Overridden || !f.Optional) {
		res.Type = c.opt.Wrap(res.Type)
	}

	res.Attrs = c.overlay(f, res.Classification)

	return res
}

// overlay concatenates the field's own overlay for cl with the global one.
func (c *Classifier) overlay(f *entity.FieldDescriptor, cl rules.Classification) entity.Overlay {
	own := f.RequiredAttrs
	if cl == rules.Optional {
		own = f.OptionalAttrs
	}

	if f.SkipDefaultAttrs {
		return own.Concat()
	}

	return own.Concat(c.rs.DefaultAttrs(cl))
}

// Context classifies every declared field of the entity in ctx, in
// declaration order.
func (c *Classifier) Context(ctx *rules.Context) []Result {
	out := make([]Result, len(c.ent.Fields))
	for i := range c.ent.Fields {
		out[i] = c.Classify(ctx, &c.ent.Fields[i])
	}

	return out
}

// Base returns the base record view: declared types, wrapped when the rule
// set asks for an optional base, with the base-only overlay.
func (c *Classifier) Base() []BaseField {
	out := make([]BaseField, len(c.ent.Fields))

	for i := range c.ent.Fields {
		f := &c.ent.Fields[i]

		typ := f.Type
		if c.rs.OptionalBase && !f.Optional {
			typ = c.opt.Wrap(typ)
		}

		out[i] = BaseField{Field: f.Name, Type: typ, Attrs: f.BaseAttrs.Concat()}
	}

	return out
}
