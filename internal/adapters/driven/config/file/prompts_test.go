package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wwm-locale/localetool/internal/core/ports/driven"
)

func TestPromptStore_LoadCreatesDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "prompts")
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	// Constructor does no I/O
	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))

	prompt, err := store.Load(driven.PromptTranslateSystem)
	require.NoError(t, err)
	assert.Contains(t, prompt, "%s")
	assert.Contains(t, prompt, "translator")

	// First load materialised the editable file
	_, err = os.Stat(filepath.Join(dir, driven.PromptTranslateSystem+".txt"))
	assert.NoError(t, err)
}

func TestPromptStore_UserEditWins(t *testing.T) {
	dir := t.TempDir()
	custom := "Translate to %s, formal register only."
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, driven.PromptTranslateSystem+".txt"), []byte(custom), 0600))

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptTranslateSystem)
	require.NoError(t, err)
	assert.Equal(t, custom, prompt)
}

func TestPromptStore_UnknownPrompt(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("no_such_prompt")
	assert.Error(t, err)
}

func TestPromptStore_ReloadPicksUpChanges(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	// Prime the cache with the default
	_, err = store.Load(driven.PromptTranslateSystem)
	require.NoError(t, err)

	edited := "Edited template for %s."
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, driven.PromptTranslateSystem+".txt"), []byte(edited), 0600))

	store.Reload()
	prompt, err := store.Load(driven.PromptTranslateSystem)
	require.NoError(t, err)
	assert.Equal(t, edited, prompt)
}
