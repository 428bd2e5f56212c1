package entity

import (
	"errors"
	"fmt"
	"slices"
)

// FieldDescriptor describes one declared field of an entity.
type FieldDescriptor struct {
	// Name is unique within the entity.
	Name string
	// Type is the declared type expression, opaque to the resolver.
	Type string
	// Optional is true when the declared type already denotes optionality.
	Optional bool
	// BaseAttrs apply only to the unmodified base record.
	BaseAttrs Overlay
	// RequiredAttrs apply when the field is Required in a context.
	RequiredAttrs Overlay
	// OptionalAttrs apply when the field is Optional in a context.
	OptionalAttrs Overlay
	// SkipDefaultAttrs opts the field out of the global required/optional overlays.
	SkipDefaultAttrs bool
}

// Entity is a record definition together with its rule source.
type Entity struct {
	// Name of the record.
	Name string
	// TypeParams is passed through to the emitter untouched (e.g. "[T any]").
	TypeParams string
	// Origin tells where the entity came from, for messages only.
	Origin string
	// Rules is the raw rule source.
	Rules string
	// Fields in declaration order.
	Fields []FieldDescriptor
}

// FieldNames returns the declared field names in order.
func (e *Entity) FieldNames() []string {
	names := make([]string, len(e.Fields))
	for i := range e.Fields {
		names[i] = e.Fields[i].Name
	}

	return names
}

// Field looks up a field by name.
func (e *Entity) Field(name string) (*FieldDescriptor, bool) {
	for i := range e.Fields {
		if e.Fields[i].Name == name {
			return &e.Fields[i], true
		}
	}

	return nil, false
}

// Validate checks the structural well-formedness of the entity.
func (e *Entity) Validate() error {
	if e.Name == "" {
		return errors.New("entity has no name")
	}

	seen := make(map[string]struct{}, len(e.Fields))

	for i := range e.Fields {
		f := &e.Fields[i]
		if f.Name == "" {
			return fmt.Errorf("entity %s: field #%d has no name", e.Name, i+1)
		}

		if f.Type == "" {
			return fmt.Errorf("entity %s: field %q has no type", e.Name, f.Name)
		}

		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("entity %s: duplicate field %q", e.Name, f.Name)
		}

		seen[f.Name] = struct{}{}
	}

	return nil
}

// Clone returns a deep copy so a resolver can own its input.
func (e *Entity) Clone() *Entity {
	c := *e
	c.Fields = make([]FieldDescriptor, len(e.Fields))

	for i, f := range e.Fields {
		f.BaseAttrs = slices.Clone(f.BaseAttrs)
		f.RequiredAttrs = slices.Clone(f.RequiredAttrs)
		f.OptionalAttrs = slices.Clone(f.OptionalAttrs)
		c.Fields[i] = f
	}

	return &c
}
