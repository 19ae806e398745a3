package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "beenthere", rootCmd.Use)
}

func TestRootCmd_RegistersCommands(t *testing.T) {
	expected := []string{"serve", "match", "moderate", "chat", "import", "index", "train", "config", "version"}

	registered := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		registered[strings.Fields(cmd.Use)[0]] = true
	}

	for _, name := range expected {
		assert.True(t, registered[name], "command %q not registered", name)
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
}

func TestMatchCmd_Flags(t *testing.T) {
	assert.NotNil(t, matchCmd.Flags().Lookup("top-k"))
	assert.NotNil(t, matchCmd.Flags().Lookup("min-similarity"))
	assert.NotNil(t, matchCmd.Flags().Lookup("json"))
}

func TestConfigInitCmd_WritesFile(t *testing.T) {
	dir := t.TempDir()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"--config", dir, "config", "init"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "config.toml")
}

func TestConfigShowCmd_PrintsEffectiveConfig(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"--config", t.TempDir(), "config", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "[server]")
}

func TestSummarise(t *testing.T) {
	assert.Equal(t, "short text", summarise("short text", 50))

	long := strings.Repeat("word ", 100)
	got := summarise(long, 50)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, len([]rune(got)), 53)

	assert.Equal(t, "collapses internal whitespace", summarise("collapses \n  internal\twhitespace", 50))
}
