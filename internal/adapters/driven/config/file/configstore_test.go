package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.DirExists(t, dir)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("store.backend", "bolt"))
	require.NoError(t, store.Set("web.burst", 20))
	require.NoError(t, store.Set("web.rate_limit", 2.5))
	require.NoError(t, store.Set("log.verbose", true))

	assert.Equal(t, "bolt", store.GetString("store.backend"))
	assert.Equal(t, 20, store.GetInt("web.burst"))
	assert.InDelta(t, 2.5, store.GetFloat("web.rate_limit"), 0.0001)
	assert.InDelta(t, 20.0, store.GetFloat("web.burst"), 0.0001)
	assert.True(t, store.GetBool("log.verbose"))

	assert.Equal(t, "", store.GetString("web.burst"), "wrong type reads as zero")
	assert.Equal(t, 0, store.GetInt("store.backend"))
	assert.Zero(t, store.GetFloat("missing"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_SaveReload_PreservesData(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("store.backend", "sqlite"))
	require.NoError(t, store.Set("store.path", "/var/lib/passman"))
	require.NoError(t, store.Set("web.burst", 7))
	require.NoError(t, store.Set("web.rate_limit", 1.5))
	require.NoError(t, store.Set("log.verbose", true))

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", reloaded.GetString("store.backend"))
	assert.Equal(t, "/var/lib/passman", reloaded.GetString("store.path"))
	assert.Equal(t, 7, reloaded.GetInt("web.burst"), "TOML integers come back as int64")
	assert.InDelta(t, 1.5, reloaded.GetFloat("web.rate_limit"), 0.0001)
	assert.True(t, reloaded.GetBool("log.verbose"))
}

func TestConfigStore_WritesNestedTables(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("store.backend", "bolt"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[store]")
	assert.Contains(t, string(data), "backend = ")
}

func TestConfigStore_LoadsHandWrittenFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[store]
backend = "mongo"
mongo_uri = "mongodb://localhost:27017"

[web]
addr = ":9000"
burst = 3
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "mongo", store.GetString("store.backend"))
	assert.Equal(t, "mongodb://localhost:27017", store.GetString("store.mongo_uri"))
	assert.Equal(t, ":9000", store.GetString("web.addr"))
	assert.Equal(t, 3, store.GetInt("web.burst"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("log.format", "json"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), nil, 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	_, ok := store.Get("anything")
	assert.False(t, ok)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[[[not toml"), 0600))

	_, err := NewConfigStore(dir)
	assert.Error(t, err)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("web.burst", n)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("web.burst")
		}()
	}
	wg.Wait()

	_, ok := store.Get("web.burst")
	assert.True(t, ok)
}

func TestNestMap_FlattenMap_Inverse(t *testing.T) {
	flat := map[string]any{
		"store.backend": "bolt",
		"web.burst":     int64(5),
		"top":           true,
	}

	assert.Equal(t, flat, flattenMap(nestMap(flat), ""))
}
