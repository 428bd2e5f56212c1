package commands

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		name   string
		newCmd func() *cobra.Command
		use    string
		flags  []string
	}{
		{name: "resolve", newCmd: NewResolveCommand, use: "resolve [definition files...]", flags: []string{"package", "type", "dir"}},
		{name: "check", newCmd: NewCheckCommand, use: "check [definition files...]", flags: []string{"package", "type", "dir"}},
		{name: "watch", newCmd: NewWatchCommand, use: "watch [definition files...]", flags: []string{"package", "type", "dir", "debounce"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := tt.newCmd()

			assert.Equal(t, tt.use, cmd.Use)
			assert.NotEmpty(t, cmd.Short, "Short should not be empty")
			assert.NotEmpty(t, cmd.Example, "Example should not be empty")

			for _, flag := range tt.flags {
				assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}
}

func TestNewVersionCommand(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    string
	}{
		{name: "release", version: "0.1.0", want: "context-variants v0.1.0\n"},
		{name: "dev", version: "dev", want: "context-variants vdev\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewVersionCommand(tt.version)
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)

			require.NoError(t, cmd.Execute())
			assert.Equal(t, tt.want, buf.String())
			assert.NotEmpty(t, cmd.Long)
		})
	}
}
