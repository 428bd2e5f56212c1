package expand

import (
	"slices"

	"context-variants/internal/common"
	"context-variants/internal/rules"
)

// Expander resolves groups of one rule set against one field list.
type Expander struct {
	rs       *rules.RuleSet
	fields   []string
	declared map[string]struct{}
	members  map[string][]string
}

// New prepares an expander. fields are the declared field names in order.
func New(rs *rules.RuleSet, fields []string) *Expander {
	return &Expander{
		rs:       rs,
		fields:   fields,
		declared: common.SetOf(fields),
	}
}

// Expand returns a copy of rs whose context lists contain no group
// references. Structural problems are returned as *rules.Error.
func Expand(rs *rules.RuleSet, fields []string) (*rules.RuleSet, error) {
	return New(rs, fields).Expand()
}

// Expand performs the expansion.
func (e *Expander) Expand() (*rules.RuleSet, error) {
	members, err := e.resolveGroups()
	if err != nil {
		return nil, err
	}

	e.members = members

	out := *e.rs
	out.Contexts = make([]rules.Context, len(e.rs.Contexts))

	for i := range e.rs.Contexts {
		ctx := e.rs.Contexts[i]

		for _, cl := range rules.Classifications {
			refs, err := e.expandRefs(ctx.Refs(cl))
			if err != nil {
				return nil, err
			}

			ctx.SetRefs(cl, refs)
		}

		out.Contexts[i] = ctx
	}

	return &out, nil
}

// Members returns the resolved member names of a group, after Expand.
func (e *Expander) Members(group string) ([]string, bool) {
	m, ok := e.members[group]
	return m, ok
}

// resolveGroups computes the ordered unique member names of every group.
func (e *Expander) resolveGroups() (map[string][]string, error) {
	out := make(map[string][]string, len(e.rs.Groups))

	for _, g := range e.rs.Groups {
		var names []string

		for _, m := range g.Members {
			switch m.Kind {
			case rules.RefAllFields:
				names = append(names, e.wildcard(m.Except)...)
			default:
				if _, isGroup := e.rs.Group(m.Name); isGroup {
					return nil, rules.Errorf(m.Pos, "group %q: member %q is a group; groups cannot be nested", g.Name, m.Name)
				}

				names = append(names, m.Name)
			}
		}

		out[g.Name] = common.Uniq(names)
	}

	return out, nil
}

// wildcard lists the declared fields that are not excepted.
func (e *Expander) wildcard(except []string) []string {
	out := make([]string, 0, len(e.fields))

	for _, f := range e.fields {
		if !slices.Contains(except, f) {
			out = append(out, f)
		}
	}

	return out
}

func (e *Expander) expandRefs(refs []rules.FieldRef) ([]rules.FieldRef, error) {
	if len(refs) == 0 {
		return nil, nil
	}

	out := make([]rules.FieldRef, 0, len(refs))

	for _, ref := range refs {
		switch ref.Kind {
		case rules.RefAllFields:
			out = append(out, ref)
		case rules.RefGroup:
			names, ok := e.members[ref.Name]
			if !ok {
				return nil, rules.Errorf(ref.Pos, "unknown group %q", ref.Name)
			}

			out = appendMembers(out, names, ref)
		default:
			names, isGroup := e.members[ref.Name]
			if !isGroup {
				out = append(out, ref)
				continue
			}

			if ref.HasOverride() {
				return nil, rules.Errorf(ref.Pos, "group %q cannot take a type override", ref.Name)
			}

			out = appendMembers(out, names, ref)
		}
	}

	return out, nil
}

// appendMembers adds one literal reference per group member not excepted,
// positioned at the group reference.
func appendMembers(out []rules.FieldRef, names []string, ref rules.FieldRef) []rules.FieldRef {
	for _, n := range names {
		if slices.Contains(ref.Except, n) {
			continue
		}

		out = append(out, rules.FieldRef{Kind: rules.RefField, Name: n, Pos: ref.Pos})
	}

	return out
}
