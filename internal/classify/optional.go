package classify

import (
	"fmt"
	"strings"
)

// DefaultWrapper wraps an optional type as a Go pointer.
const DefaultWrapper = "*%s"

// Optionalizer wraps types in an optional container described by a
// template holding exactly one %s, e.g. "*%s" or "Option<%s>".
type Optionalizer struct {
	template string
	prefix   string
	suffix   string
}

// NewOptionalizer validates the template. An empty template means DefaultWrapper.
func NewOptionalizer(template string) (*Optionalizer, error) {
	if template == "" {
		template = DefaultWrapper
	}

	if strings.Count(template, "%s") != 1 || strings.Count(template, "%") != 1 {
		return nil, fmt.Errorf("optional wrapper %q must contain exactly one %%s", template)
	}

	prefix, suffix, _ := strings.Cut(template, "%s")

	return &Optionalizer{template: template, prefix: prefix, suffix: suffix}, nil
}

// Template returns the wrapper template.
func (o *Optionalizer) Template() string {
	return o.template
}

// IsWrapped reports whether typ already has the optional container shape.
func (o *Optionalizer) IsWrapped(typ string) bool {
	typ = strings.TrimSpace(typ)

	return len(typ) > len(o.prefix)+len(o.suffix) &&
		strings.HasPrefix(typ, o.prefix) &&
		strings.HasSuffix(typ, o.suffix)
}

// Wrap returns typ inside the optional container. Wrapping is idempotent.
func (o *Optionalizer) Wrap(typ string) string {
	if o.IsWrapped(typ) {
		return typ
	}

	return o.prefix + typ + o.suffix
}
