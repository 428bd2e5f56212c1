package session

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"context-variants/internal/entity"
)

func TestExportYAML(t *testing.T) {
	t.Parallel()

	table, err := Resolve(&entity.Entity{
		Name:  "User",
		Rules: `build_base = false, suffix = "Input", Create: requires(name).optional(email as Email).excludes(id)`,
		Fields: []entity.FieldDescriptor{
			{Name: "id", Type: "uint64"},
			{Name: "name", Type: "string", RequiredAttrs: entity.Overlay{{Key: "validate", Value: "required"}}},
			{Name: "email", Type: "string"},
		},
	}, Options{})
	require.NoError(t, err)

	out, err := ExportYAML(table)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, `version: "1"`)
	assert.Contains(t, text, "name: CreateInput")
	assert.Contains(t, text, "- validate:required")
	assert.NotContains(t, text, " base:")
	assert.NotContains(t, text, "field: id")

	var b Bundle
	require.NoError(t, yaml.Unmarshal(out, &b))
	require.Len(t, b.Entities, 1)
	assert.Equal(t, []ContextDoc{{
		Context: "Create",
		Name:    "CreateInput",
		Fields: []FieldDoc{
			{Field: "name", Classification: "required", Type: "string", Attrs: []string{"validate:required"}},
			{Field: "email", Classification: "optional", Type: "*Email", Overridden: true},
		},
	}}, b.Entities[0].Contexts)
}

func TestExportJSONRoundTrip(t *testing.T) {
	t.Parallel()

	first, err := Resolve(fullEntity(), Options{})
	require.NoError(t, err)

	out, err := ExportJSON(first, first)
	require.NoError(t, err)

	var b Bundle
	require.NoError(t, json.Unmarshal(out, &b))
	assert.Equal(t, ExportVersion, b.Version)
	require.Len(t, b.Entities, 2)
	assert.Equal(t, "Account", b.Entities[0].Entity)
	assert.Equal(t, "[T any]", b.Entities[0].TypeParams)
	assert.Len(t, b.Entities[0].Base, 6)
	assert.Equal(t, NewDocument(first), b.Entities[1])
}

func TestExportYAMLDecodes(t *testing.T) {
	t.Parallel()

	table, err := Resolve(fullEntity(), Options{})
	require.NoError(t, err)

	out, err := ExportYAML(table)
	require.NoError(t, err)

	var b Bundle
	require.NoError(t, yaml.Unmarshal(out, &b))
	assert.Equal(t, NewBundle(table), b)
}
