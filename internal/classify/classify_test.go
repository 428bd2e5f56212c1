package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"context-variants/internal/entity"
	"context-variants/internal/expand"
	"context-variants/internal/rules"
)

func newClassifier(t *testing.T, ent *entity.Entity, src string) (*Classifier, *rules.RuleSet) {
	t.Helper()

	rs, err := rules.Parse(src)
	require.NoError(t, err)

	rs, err = expand.Expand(rs, ent.FieldNames())
	require.NoError(t, err)

	opt, err := NewOptionalizer("")
	require.NoError(t, err)

	return New(rs, ent, opt), rs
}

func simpleEntity(fields ...string) *entity.Entity {
	ent := &entity.Entity{Name: "User"}
	for _, f := range fields {
		ent.Fields = append(ent.Fields, entity.FieldDescriptor{Name: f, Type: "string"})
	}

	return ent
}

type fate struct {
	cl  rules.Classification
	typ string
}

func fates(results []Result) map[string]fate {
	out := make(map[string]fate, len(results))
	for _, r := range results {
		out[r.Field] = fate{r.Classification, r.Type}
	}

	return out
}

func TestClassifyPrecedence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		src    string
		want   rules.Classification
		source Source
	}{
		{"excluded beats optional", "A: optional(x).excludes(x)", rules.Excluded, SourceList},
		{"optional beats required", "A: requires(x).optional(x)", rules.Optional, SourceList},
		{"required", "A: requires(x)", rules.Required, SourceList},
		{"context default", "default = optional, A: default(exclude)", rules.Excluded, SourceContextDefault},
		{"global default", "default = required, A", rules.Required, SourceGlobalDefault},
		{"fallback", "A", rules.Optional, SourceFallback},
		{"list beats default", "A: requires(x).default(exclude)", rules.Required, SourceList},
		{"wildcard", "A: excludes(all_fields())", rules.Excluded, SourceList},
		{"wildcard exception", "A: excludes(all_fields().except(x)).default(required)", rules.Required, SourceContextDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, rs := newClassifier(t, simpleEntity("x"), tt.src)
			res := c.Context(&rs.Contexts[0])

			require.Len(t, res, 1)
			assert.Equal(t, tt.want, res[0].Classification)
			assert.Equal(t, tt.source, res[0].Source)
		})
	}
}

func TestClassifyScenarios(t *testing.T) {
	t.Parallel()

	t.Run("create and update", func(t *testing.T) {
		c, rs := newClassifier(t, simpleEntity("id", "name", "email"), `
			Create: requires(name, email).excludes(id),
			Update: requires(id).optional(name, email),
		`)

		assert.Equal(t, map[string]fate{
			"id":    {rules.Excluded, ""},
			"name":  {rules.Required, "string"},
			"email": {rules.Required, "string"},
		}, fates(c.Context(&rs.Contexts[0])))
		assert.Equal(t, map[string]fate{
			"id":    {rules.Required, "string"},
			"name":  {rules.Optional, "*string"},
			"email": {rules.Optional, "*string"},
		}, fates(c.Context(&rs.Contexts[1])))
	})

	t.Run("group with default", func(t *testing.T) {
		c, rs := newClassifier(t, simpleEntity("user_id", "token", "name"),
			`groups = auth(user_id, token), Login: requires(auth).default(exclude)`)

		assert.Equal(t, map[string]fate{
			"user_id": {rules.Required, "string"},
			"token":   {rules.Required, "string"},
			"name":    {rules.Excluded, ""},
		}, fates(c.Context(&rs.Contexts[0])))
	})

	t.Run("wildcard with exception", func(t *testing.T) {
		c, rs := newClassifier(t, simpleEntity("id", "name", "password"),
			`Update: requires(id).optional(all_fields().except(password)).default(exclude)`)

		// id is also matched by the wildcard; optional outranks required.
		got := fates(c.Context(&rs.Contexts[0]))
		assert.Equal(t, rules.Optional, got["name"].cl)
		assert.Equal(t, rules.Excluded, got["password"].cl)
	})
}

func TestClassifyTypeOverride(t *testing.T) {
	t.Parallel()

	ent := &entity.Entity{Name: "T", Fields: []entity.FieldDescriptor{
		{Name: "user_id", Type: "int64"},
		{Name: "note", Type: "*string", Optional: true},
	}}

	c, rs := newClassifier(t, ent, `
		A: requires(user_id as StringType).optional(note),
		B: optional(user_id as string, note as string),
		C: excludes(user_id as string).requires(note),
	`)

	a := c.Context(&rs.Contexts[0])
	assert.Equal(t, Result{Field: "user_id", Classification: rules.Required, Type: "StringType", Overridden: true}, a[0])
	assert.Equal(t, "*string", a[1].Type, "inherently optional field must not be wrapped twice")

	b := c.Context(&rs.Contexts[1])
	assert.Equal(t, "*string", b[0].Type)
	assert.Equal(t, "*string", b[1].Type, "override is wrapped on its own")

	cres := c.Context(&rs.Contexts[2])
	assert.Equal(t, rules.Excluded, cres[0].Classification)
	assert.Empty(t, cres[0].Type)
	assert.False(t, cres[0].Overridden)
	assert.Equal(t, "*string", cres[1].Type)
}

func TestClassifyOverlays(t *testing.T) {
	t.Parallel()

	ent := &entity.Entity{Name: "T", Fields: []entity.FieldDescriptor{
		{
			Name: "a", Type: "int",
			RequiredAttrs: entity.Overlay{{Key: "validate", Value: "required"}},
			OptionalAttrs: entity.Overlay{{Key: "json", Value: "a,omitempty"}},
			BaseAttrs:     entity.Overlay{{Key: "db", Value: "a"}},
		},
		{
			Name: "b", Type: "int",
			OptionalAttrs:    entity.Overlay{{Key: "json", Value: "b"}},
			SkipDefaultAttrs: true,
		},
	}}

	c, rs := newClassifier(t, ent, `
		optional_attrs = [json:",omitempty"],
		required_attrs = [validate("required")],
		R: requires(a, b),
		O: optional(a, b),
	`)

	r := c.Context(&rs.Contexts[0])
	assert.Equal(t, []string{"validate:required", "validate:required"}, r[0].Attrs.Strings())
	assert.Empty(t, r[1].Attrs)

	o := c.Context(&rs.Contexts[1])
	assert.Equal(t, []string{"json:a,omitempty", "json:,omitempty"}, o[0].Attrs.Strings())
	assert.Equal(t, []string{"json:b"}, o[1].Attrs.Strings())

	for _, res := range append(r, o...) {
		for _, a := range res.Attrs {
			assert.NotEqual(t, "db", a.Key, "base overlay never reaches a context")
		}
	}
}

func TestClassifyMatchesCountsDuplicates(t *testing.T) {
	t.Parallel()

	c, rs := newClassifier(t, simpleEntity("x", "y"), `A: requires(x, all_fields()).optional(y as int)`)

	assert.Equal(t, []ListMatch{
		{Classification: rules.Required, Ref: rs.Contexts[0].Required[0], Count: 2},
	}, c.Matches(&rs.Contexts[0], "x"))

	m := c.Matches(&rs.Contexts[0], "y")
	require.Len(t, m, 2)
	assert.Equal(t, rules.Required, m[0].Classification)
	assert.Equal(t, rules.Optional, m[1].Classification)
	assert.Equal(t, "int", m[1].Override)

	assert.Empty(t, c.Matches(&rs.Contexts[0], "ghost"))
}

func TestWildcardExceptionLaw(t *testing.T) {
	t.Parallel()

	fields := []string{"a", "b", "c", "d"}
	ent := simpleEntity(fields...)

	for _, except := range [][]string{nil, {"a"}, {"a", "c"}, {"a", "b", "c", "d"}, {"zz"}} {
		src := "A: excludes(all_fields())"
		if len(except) > 0 {
			src = "A: excludes(all_fields().except(" + join(except) + ")).default(required)"
		}

		c, rs := newClassifier(t, ent, src)
		for _, r := range c.Context(&rs.Contexts[0]) {
			excepted := contains(except, r.Field)
			assert.Equal(t, !excepted, r.Classification == rules.Excluded, "%s except %v", r.Field, except)
		}
	}

	c, rs := newClassifier(t, ent, `groups = g(a, b, c), A: excludes(g.except(b)).default(required)`)
	got := fates(c.Context(&rs.Contexts[0]))
	assert.Equal(t, rules.Excluded, got["a"].cl)
	assert.Equal(t, rules.Required, got["b"].cl)
	assert.Equal(t, rules.Excluded, got["c"].cl)
	assert.Equal(t, rules.Required, got["d"].cl)
}

func TestBase(t *testing.T) {
	t.Parallel()

	ent := &entity.Entity{Name: "T", Fields: []entity.FieldDescriptor{
		{Name: "a", Type: "int", BaseAttrs: entity.Overlay{{Key: "db", Value: "a"}}},
		{Name: "b", Type: "*int", Optional: true},
	}}

	c, _ := newClassifier(t, ent, "A: requires(a, b)")
	assert.Equal(t, []BaseField{
		{Field: "a", Type: "int", Attrs: entity.Overlay{{Key: "db", Value: "a"}}},
		{Field: "b", Type: "*int"},
	}, c.Base())

	c, _ = newClassifier(t, ent, "optional_base = true, A: requires(a, b)")
	base := c.Base()
	assert.Equal(t, "*int", base[0].Type)
	assert.Equal(t, "*int", base[1].Type)
}

func TestSourceString(t *testing.T) {
	assert.Equal(t, "list", SourceList.String())
	assert.Equal(t, "fallback", SourceFallback.String())
	assert.Equal(t, "unknown", Source(9).String())
}

func join(s []string) string {
	out := ""
	for i, v := range s {
		if i > 0 {
			out += ", "
		}

		out += v
	}

	return out
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}

	return false
}
