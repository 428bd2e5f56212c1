package session

import (
	"context-variants/internal/classify"
	"context-variants/internal/diagnostic"
	"context-variants/internal/entity"
	"context-variants/internal/rules"
)

// Table is the resolved per-context field table of one entity.
type Table struct {
	Entity     string
	TypeParams string
	Origin     string
	// Contexts in declaration order.
	Contexts []ContextTable
	// BuildBase asks for the unmodified base record to be emitted too.
	BuildBase bool
	// OptionalBase wraps every base record field as optional.
	OptionalBase bool
	// Base is the base record view, in field declaration order.
	Base []BaseField
	// Warnings raised while validating. They never fail a resolution.
	Warnings []diagnostic.Diagnostic
}

// ContextTable is the resolved field list of one context.
type ContextTable struct {
	Context string
	// Name is the output name, prefix + context + suffix.
	Name string
	// Fields in declaration order; excluded fields are omitted.
	Fields []ResolvedFieldSpec
}

// ResolvedFieldSpec is the fate of one field in one context.
type ResolvedFieldSpec struct {
	Context        string
	Field          string
	Classification rules.Classification
	Source         classify.Source
	Type           string
	Overridden     bool
	Attrs          entity.Overlay
}

// BaseField is one field of the base record.
type BaseField struct {
	Field string
	Type  string
	Attrs entity.Overlay
}

// ContextNames returns the context names in declaration order.
func (t *Table) ContextNames() []string {
	names := make([]string, len(t.Contexts))
	for i := range t.Contexts {
		names[i] = t.Contexts[i].Context
	}

	return names
}

// Context looks up a context by name.
func (t *Table) Context(name string) (*ContextTable, bool) {
	for i := range t.Contexts {
		if t.Contexts[i].Context == name {
			return &t.Contexts[i], true
		}
	}

	return nil, false
}

// Field looks up a field in a context. ok is false when the field is
// excluded from the context or the context does not exist.
func (t *Table) Field(context, field string) (*ResolvedFieldSpec, bool) {
	ct, ok := t.Context(context)
	if !ok {
		return nil, false
	}

	return ct.Field(field)
}

// Field looks up a field by name.
func (c *ContextTable) Field(name string) (*ResolvedFieldSpec, bool) {
	for i := range c.Fields {
		if c.Fields[i].Field == name {
			return &c.Fields[i], true
		}
	}

	return nil, false
}

// FieldNames returns the names of the fields present in the context.
func (c *ContextTable) FieldNames() []string {
	names := make([]string, len(c.Fields))
	for i := range c.Fields {
		names[i] = c.Fields[i].Field
	}

	return names
}
