package rules

import (
	"strings"

	"context-variants/internal/entity"
)

// RefKind tells how a FieldRef selects fields.
type RefKind int

const (
	// RefField names a single field. Before expansion the name may also be a group.
	RefField RefKind = iota
	// RefAllFields selects every declared field not in Except.
	RefAllFields
	// RefGroup selects a group's members not in Except. Removed by expansion.
	RefGroup
)

// FieldRef is one argument of a requires/optional/excludes call, or one
// member of a group definition.
type FieldRef struct {
	Kind RefKind
	// Name is the field name (RefField) or group name (RefGroup).
	Name string
	// Type is the per-context type override; empty when none.
	Type string
	// Except lists names subtracted from a wildcard or group.
	Except []string
	Pos    Position
}

// HasOverride reports whether the reference carries a type override.
func (r FieldRef) HasOverride() bool {
	return r.Type != ""
}

// Matches reports whether the reference selects field. declared is the full
// field set of the entity. Group references never match; expand them first.
func (r FieldRef) Matches(field string, declared map[string]struct{}) bool {
	switch r.Kind {
	case RefField:
		return r.Name == field
	case RefAllFields:
		if _, ok := declared[field]; !ok {
			return false
		}

		return !r.excepts(field)
	default:
		return false
	}
}

func (r FieldRef) excepts(field string) bool {
	for _, e := range r.Except {
		if e == field {
			return true
		}
	}

	return false
}

// String renders the reference in rule syntax.
func (r FieldRef) String() string {
	switch r.Kind {
	case RefAllFields:
		if len(r.Except) == 0 {
			return "all_fields()"
		}

		return "all_fields().except(" + strings.Join(r.Except, ", ") + ")"
	case RefGroup:
		return r.Name + ".except(" + strings.Join(r.Except, ", ") + ")"
	default:
		if r.HasOverride() {
			return r.Name + " as " + r.Type
		}

		return r.Name
	}
}

// Group is a named, reusable set of field references.
type Group struct {
	Name    string
	Members []FieldRef
	Pos     Position
}

// Context is one named use-case and its classification rules.
type Context struct {
	Name     string
	Required []FieldRef
	Optional []FieldRef
	Excluded []FieldRef
	// Default applies to fields no list mentions; nil when not set.
	Default *Classification
	// Pos is the position of the context name.
	Pos Position
	// End is just past the rule chain; diagnostics are anchored here.
	End Position
}

// Refs returns the reference list for a classification.
func (c *Context) Refs(cl Classification) []FieldRef {
	switch cl {
	case Required:
		return c.Required
	case Optional:
		return c.Optional
	default:
		return c.Excluded
	}
}

// SetRefs replaces the reference list for a classification.
func (c *Context) SetRefs(cl Classification, refs []FieldRef) {
	switch cl {
	case Required:
		c.Required = refs
	case Optional:
		c.Optional = refs
	default:
		c.Excluded = refs
	}
}

func (c *Context) appendRefs(cl Classification, refs []FieldRef) {
	c.SetRefs(cl, append(c.Refs(cl), refs...))
}

// RuleSet is the parsed form of a rule source.
type RuleSet struct {
	// Contexts in declaration order.
	Contexts []Context
	// Groups in declaration order.
	Groups []Group
	Prefix string
	Suffix string
	// Default is the global fallback; nil when not set.
	Default *Classification
	// RequiredAttrs are applied to every Required field unless it opts out.
	RequiredAttrs entity.Overlay
	// OptionalAttrs are applied to every Optional field unless it opts out.
	OptionalAttrs entity.Overlay
	// BuildBase asks the emitter to also emit the unmodified base record.
	BuildBase bool
	// OptionalBase makes every base record field optional.
	OptionalBase bool
}

// OutputName composes the variant name for a context.
func (rs *RuleSet) OutputName(context string) string {
	return rs.Prefix + context + rs.Suffix
}

// DefaultAttrs returns the global overlay for a classification.
func (rs *RuleSet) DefaultAttrs(cl Classification) entity.Overlay {
	switch cl {
	case Required:
		return rs.RequiredAttrs
	case Optional:
		return rs.OptionalAttrs
	default:
		return nil
	}
}

// ContextNames returns the context names in declaration order.
func (rs *RuleSet) ContextNames() []string {
	names := make([]string, len(rs.Contexts))
	for i := range rs.Contexts {
		names[i] = rs.Contexts[i].Name
	}

	return names
}

// Group looks up a group definition by name.
func (rs *RuleSet) Group(name string) (*Group, bool) {
	for i := range rs.Groups {
		if rs.Groups[i].Name == name {
			return &rs.Groups[i], true
		}
	}

	return nil, false
}
