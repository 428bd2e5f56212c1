package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"context-variants/internal/session"
)

const definition = `
entities:
  - name: User
    rules: |
      Create: requires(name).optional(email).excludes(id)
    fields:
      - name: id
        type: int
      - name: name
        type: string
      - name: email
        type: string
`

func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func setup(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "users.yaml")
	require.NoError(t, os.WriteFile(path, []byte(definition), 0o644))

	return path
}

func TestRootCommands(t *testing.T) {
	cmd := NewRootCmd()

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}

	assert.Subset(t, names, []string{"version", "resolve", "check", "watch"})

	for _, flag := range []string{"config", "log-level", "log-format", "output", "optional-wrapper", "out-dir", "jobs"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRootFlagsReachCommands(t *testing.T) {
	path := setup(t)

	stdout, _, err := runRoot(t, "resolve", path, "-o", "json", "--optional-wrapper", "Maybe[%s]", "-j", "1")
	require.NoError(t, err)

	var bundle session.Bundle
	require.NoError(t, json.Unmarshal([]byte(stdout), &bundle))
	require.Len(t, bundle.Entities, 1)
	assert.Equal(t, "Maybe[string]", bundle.Entities[0].Contexts[0].Fields[1].Type)
}

func TestRootConfigFileAndEnv(t *testing.T) {
	path := setup(t)

	require.NoError(t, os.WriteFile(".context-variants.yaml", []byte("output: yaml\noptional_wrapper: \"Opt<%s>\"\n"), 0o644))
	t.Setenv("CONTEXT_VARIANTS_OPTIONAL_WRAPPER", "Env<%s>")

	stdout, _, err := runRoot(t, "resolve", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "entities:")
	assert.Contains(t, stdout, "Env<string>")
}

func TestRootDebugLogging(t *testing.T) {
	path := setup(t)

	_, stderr, err := runRoot(t, "check", path, "--log-level", "debug", "--log-format", "json")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"message":"context resolved"`)
	assert.Contains(t, stderr, `"entity":"User"`)
}

func TestRootRejectsBadConfig(t *testing.T) {
	path := setup(t)

	_, _, err := runRoot(t, "resolve", path, "-o", "xml")
	require.ErrorContains(t, err, "output must be table, yaml or json")
}

func TestRootVersion(t *testing.T) {
	setup(t)

	stdout, _, err := runRoot(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "context-variants v"+Version+"\n", stdout)
}
