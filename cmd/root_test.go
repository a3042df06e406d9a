package cmd

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestRootCmd_ConfigDefaultsToEnv(t *testing.T) {
	t.Setenv(CONFIG_ENV, "/etc/evently.json")

	flag := newRootCmd().Flags().Lookup("config")

	require.NotNil(t, flag)
	assert.Equal(t, "/etc/evently.json", flag.DefValue)
}

func TestRootCmd_FlagOverridesEnv(t *testing.T) {
	t.Setenv(CONFIG_ENV, writeConfig(t, `{}`))
	broken := writeConfig(t, `{not json`)

	root := newRootCmd()
	root.SetArgs([]string{"--config", broken})
	err := root.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestRootCmd_RejectsPositionalArgs(t *testing.T) {
	t.Setenv(CONFIG_ENV, "")

	root := newRootCmd()
	root.SetArgs([]string{"serve"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	assert.Error(t, root.Execute())
}
