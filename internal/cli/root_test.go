package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twistorlab/mtx/internal/cli/config"
)

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := NewRootCmd()

	expected := []string{"parse", "tokens", "check", "repl", "version", "completion"}
	for _, name := range expected {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		assert.True(t, found, "subcommand %q should be registered", name)
	}
}

func TestRootCommandGlobalFlags(t *testing.T) {
	cmd := NewRootCmd()

	flags := []string{"config", "expr-dir", "output", "verbose"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRootCommandRunsParse(t *testing.T) {
	config.ResetConfig()
	t.Chdir(t.TempDir())

	cmd := NewRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"-o", "text", "parse", "2^3^2"})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "infix:  (2^(3^2))")
	assert.Contains(t, out.String(), "prefix: pow 2 pow 3 2")
}

func TestRootCommandSurfacesParseError(t *testing.T) {
	config.ResetConfig()
	t.Chdir(t.TempDir())

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"parse", "Z1 $ Z2"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lex error")
}
