package validate

import (
	"fmt"
	"strings"

	"context-variants/internal/classify"
	"context-variants/internal/common"
	"context-variants/internal/diagnostic"
	"context-variants/internal/entity"
	"context-variants/internal/match"
	"context-variants/internal/rules"
)

// Diagnostic codes.
const (
	CodeFieldConflict      = "field_conflict"
	CodeMissingCoverage    = "missing_coverage"
	CodeUnknownField       = "unknown_field"
	CodeDuplicateReference = "duplicate_reference"
)

// Validator checks one entity's rules.
type Validator struct {
	ent *entity.Entity
	// parsed is the rule set as written, used for name checks.
	parsed *rules.RuleSet
	// expanded has group references replaced, used for conflict and coverage.
	expanded *rules.RuleSet
	cls      *classify.Classifier
	declared map[string]struct{}
}

// New creates a validator.
func New(ent *entity.Entity, parsed, expanded *rules.RuleSet, cls *classify.Classifier) *Validator {
	return &Validator{ent: ent, parsed: parsed, expanded: expanded, cls: cls, declared: common.SetOf(ent.FieldNames())}
}

// Validate runs every check. Diagnostics follow context declaration order,
// then field declaration order.
func (v *Validator) Validate() diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	for i := range v.expanded.Contexts {
		v.checkContext(&v.expanded.Contexts[i], &diags)
		v.checkNames(&v.parsed.Contexts[i], &diags)
	}

	v.checkGroups(&diags)

	return diags
}

func (v *Validator) checkContext(ctx *rules.Context, diags *diagnostic.Diagnostics) {
	var missing []string

	for _, f := range v.ent.Fields {
		matches := v.cls.Matches(ctx, f.Name)

		switch {
		case len(matches) == 0:
			missing = append(missing, f.Name)
		case len(matches) > 1:
			cls := make([]string, len(matches))
			for i, m := range matches {
				cls[i] = m.Classification.String()
			}

			diags.Report(diagnostic.Diagnostic{
				Severity:        diagnostic.DiagnosticError,
				Code:            CodeFieldConflict,
				Message:         fmt.Sprintf("field '%s' mentioned multiple times: %s", f.Name, strings.Join(cls, ", ")),
				Context:         ctx.Name,
				Fields:          []string{f.Name},
				Classifications: cls,
				Pos:             ctx.End,
			})
		}

		for _, m := range matches {
			if m.Count < 2 {
				continue
			}

			diags.Report(diagnostic.Diagnostic{
				Severity: diagnostic.DiagnosticWarning,
				Code:     CodeDuplicateReference,
				Message:  fmt.Sprintf("field '%s' is selected %d times by %s()", f.Name, m.Count, listCall(m.Classification)),
				Context:  ctx.Name,
				Fields:   []string{f.Name},
				Pos:      m.Ref.Pos,
			})
		}
	}

	if len(missing) == 0 || ctx.Default != nil || v.expanded.Default != nil {
		return
	}

	diags.Report(diagnostic.Diagnostic{
		Severity:    diagnostic.DiagnosticError,
		Code:        CodeMissingCoverage,
		Message:     "missing fields: " + strings.Join(missing, ", "),
		Context:     ctx.Name,
		Fields:      missing,
		Pos:         ctx.End,
		Suggestions: []string{CoverageSuggestion(missing)},
	})
}

// CoverageSuggestion is the fix offered for uncovered fields.
func CoverageSuggestion(fields []string) string {
	list := strings.Join(fields, ",")

	return fmt.Sprintf("add .requires(%s), .optional(%s), .excludes(%s), or .default(optional/required/exclude)", list, list, list)
}

func listCall(cl rules.Classification) string {
	switch cl {
	case rules.Required:
		return "requires"
	case rules.Optional:
		return "optional"
	default:
		return "excludes"
	}
}

// checkNames warns about names in a context's lists that match nothing.
func (v *Validator) checkNames(ctx *rules.Context, diags *diagnostic.Diagnostics) {
	for _, cl := range rules.Classifications {
		for _, ref := range ctx.Refs(cl) {
			switch ref.Kind {
			case rules.RefField:
				if _, isGroup := v.parsed.Group(ref.Name); isGroup {
					continue
				}

				v.checkName(ref.Name, "field", ctx.Name, ref.Pos, diags)
			case rules.RefAllFields, rules.RefGroup:
				for _, e := range ref.Except {
					v.checkName(e, "exception", ctx.Name, ref.Pos, diags)
				}
			}
		}
	}
}

func (v *Validator) checkGroups(diags *diagnostic.Diagnostics) {
	for _, g := range v.parsed.Groups {
		for _, m := range g.Members {
			what := "member of group '" + g.Name + "'"

			if m.Kind == rules.RefAllFields {
				for _, e := range m.Except {
					v.checkName(e, "exception in group '"+g.Name+"'", "", m.Pos, diags)
				}

				continue
			}

			v.checkName(m.Name, what, "", m.Pos, diags)
		}
	}
}

func (v *Validator) checkName(name, what, context string, pos rules.Position, diags *diagnostic.Diagnostics) {
	if _, ok := v.declared[name]; ok {
		return
	}

	d := diagnostic.Diagnostic{
		Severity: diagnostic.DiagnosticWarning,
		Code:     CodeUnknownField,
		Message:  fmt.Sprintf("unknown %s '%s'", what, name),
		Context:  context,
		Fields:   []string{name},
		Pos:      pos,
	}

	if best, ok := match.Closest(name, v.ent.FieldNames()); ok {
		d.Suggestions = []string{fmt.Sprintf("did you mean '%s'?", best)}
	}

	diags.Report(d)
}
