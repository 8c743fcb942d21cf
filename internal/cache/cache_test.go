package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()
	c, err := NewCache(filepath.Join(t.TempDir(), "cache"), ttl)
	require.NoError(t, err)
	return c
}

func TestNewCache(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")

	c, err := NewCache(dir, time.Hour)

	require.NoError(t, err)
	assert.NotNil(t, c)
	assert.DirExists(t, dir)
}

func TestCache_GenerateHash(t *testing.T) {
	c := &Cache{}

	hash1 := c.GenerateHash("gemini-2.5-flash", "prompt")
	hash2 := c.GenerateHash("gemini-2.5-flash", "prompt")
	hash3 := c.GenerateHash("gemini-2.5-pro", "prompt")
	hash4 := c.GenerateHash("gemini-2.5-flashprompt")

	assert.Equal(t, hash1, hash2)
	assert.NotEqual(t, hash1, hash3)
	assert.NotEqual(t, hash1, hash4, "parts are separated")
	assert.Len(t, hash1, 64)
}

func TestCache_SetGet(t *testing.T) {
	c := setupTestCache(t, time.Hour)
	hash := c.GenerateHash("key")

	var missing int
	found, err := c.Get(hash, &missing)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(hash, 42))

	var got int
	found, err = c.Get(hash, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 42, got)
}

func TestCache_Expiration(t *testing.T) {
	c := setupTestCache(t, time.Hour)
	now := time.Now()
	c.now = func() time.Time { return now }

	hash := c.GenerateHash("key")
	require.NoError(t, c.Set(hash, "value"))

	c.now = func() time.Time { return now.Add(2 * time.Hour) }

	var got string
	found, err := c.Get(hash, &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoFileExists(t, c.path(hash))
}

func TestCache_CorruptEntry(t *testing.T) {
	c := setupTestCache(t, time.Hour)
	hash := c.GenerateHash("key")
	require.NoError(t, os.WriteFile(c.path(hash), []byte("{broken"), 0600))

	var got int
	found, err := c.Get(hash, &got)

	assert.Error(t, err)
	assert.False(t, found)
	assert.NoFileExists(t, c.path(hash))
}

func TestCache_CleanExpired(t *testing.T) {
	c := setupTestCache(t, time.Hour)
	require.NoError(t, c.Set("fresh", 1))
	require.NoError(t, c.Set("old", 2))

	past := time.Now().Add(-3 * time.Hour)
	require.NoError(t, os.Chtimes(c.path("old"), past, past))

	require.NoError(t, c.CleanExpired())

	assert.FileExists(t, c.path("fresh"))
	assert.NoFileExists(t, c.path("old"))
}

func TestCache_Clean(t *testing.T) {
	c := setupTestCache(t, time.Hour)
	require.NoError(t, c.Set("entry", 1))

	require.NoError(t, c.Clean())

	assert.NoDirExists(t, c.cacheDir)
}

func TestDefaultDir(t *testing.T) {
	assert.Equal(t, filepath.Join("/home/u/.soapgen", "cache"), DefaultDir("/home/u/.soapgen/config.json"))
}
