package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("translator.model", "google/gemini-2.0-flash-001"))
	require.NoError(t, store.Set("orchestrator.workers", int64(8)))
	require.NoError(t, store.Set("orchestrator.requests_per_second", 1.5))
	require.NoError(t, store.Set("verbose", true))

	assert.Equal(t, "google/gemini-2.0-flash-001", store.GetString("translator.model"))
	assert.Equal(t, 8, store.GetInt("orchestrator.workers"))
	assert.Equal(t, 1.5, store.GetFloat("orchestrator.requests_per_second"))
	assert.True(t, store.GetBool("verbose"))
}

func TestConfigStore_MissingKeys(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "", store.GetString("nope"))
	assert.Equal(t, 0, store.GetInt("nope"))
	assert.Equal(t, 0.0, store.GetFloat("nope"))
	assert.False(t, store.GetBool("nope"))

	_, ok := store.Get("nope")
	assert.False(t, ok)
}

func TestConfigStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("packer.binary", "yanyun"))

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "yanyun", reopened.GetString("packer.binary"))
}

func TestConfigStore_LoadsNestedTOML(t *testing.T) {
	dir := t.TempDir()
	content := "[translator]\nmodel = \"test-model\"\n\n[orchestrator]\nworkers = 4\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	// Nested tables flatten to dot keys
	assert.Equal(t, "test-model", store.GetString("translator.model"))
	assert.Equal(t, 4, store.GetInt("orchestrator.workers"))
}

func TestConfigStore_FileHasRestrictedPermissions(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("translator.api_key", "sk-secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
