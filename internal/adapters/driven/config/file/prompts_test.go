package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDefaults() map[string]string {
	return map[string]string{
		PromptIntakeSystem: "default system prompt",
		PromptGreeting:     "default greeting",
	}
}

// TestPromptStore_FallsBackToDefaults tests loading before any
// override exists.
func TestPromptStore_FallsBackToDefaults(t *testing.T) {
	store, err := NewPromptStore(filepath.Join(t.TempDir(), "prompts"), testDefaults())
	require.NoError(t, err)

	prompt, err := store.Load(PromptGreeting)
	require.NoError(t, err)
	assert.Equal(t, "default greeting", prompt)
}

// TestPromptStore_SeedsDefaultFiles tests that the first load writes
// editable default files.
func TestPromptStore_SeedsDefaultFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "prompts")
	store, err := NewPromptStore(dir, testDefaults())
	require.NoError(t, err)

	_, err = store.Load(PromptIntakeSystem)
	require.NoError(t, err)

	for name := range testDefaults() {
		_, err := os.Stat(filepath.Join(dir, name+".txt"))
		assert.NoError(t, err, "expected seeded file for %q", name)
	}
}

// TestPromptStore_LoadsOverride tests that a user-edited file wins
// over the default.
func TestPromptStore_LoadsOverride(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "prompts")
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, PromptGreeting+".txt"),
		[]byte("custom greeting\n"), 0600))

	store, err := NewPromptStore(dir, testDefaults())
	require.NoError(t, err)

	prompt, err := store.Load(PromptGreeting)
	require.NoError(t, err)
	assert.Equal(t, "custom greeting", prompt)
}

// TestPromptStore_UnknownPrompt tests the error for names without a
// default.
func TestPromptStore_UnknownPrompt(t *testing.T) {
	store, err := NewPromptStore(filepath.Join(t.TempDir(), "prompts"), testDefaults())
	require.NoError(t, err)

	_, err = store.Load("no_such_prompt")
	assert.Error(t, err)
}

// TestPromptStore_ReloadPicksUpEdits tests the cache flush.
func TestPromptStore_ReloadPicksUpEdits(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "prompts")
	store, err := NewPromptStore(dir, testDefaults())
	require.NoError(t, err)

	first, err := store.Load(PromptGreeting)
	require.NoError(t, err)
	assert.Equal(t, "default greeting", first)

	require.NoError(t, os.WriteFile(filepath.Join(dir, PromptGreeting+".txt"),
		[]byte("edited greeting"), 0600))
	store.Reload()

	second, err := store.Load(PromptGreeting)
	require.NoError(t, err)
	assert.Equal(t, "edited greeting", second)
}
