package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oowekyala/mlir-zsh-plugin/internal/options"
	"github.com/oowekyala/mlir-zsh-plugin/internal/zspec"
)

func testPayload() *zspec.Payload {
	return zspec.BuildPayload([]*options.Record{
		{Name: "--cse", Category: options.CategoryPass, Style: options.StyleFlag, Description: "CSE"},
	})
}

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := New(filepath.Join(t.TempDir(), "cache.json"))
	require.NoError(t, err)
	return c
}

func TestCache_SetGet(t *testing.T) {
	c := newTestCache(t)

	entry := &Entry{
		Binary:   "/usr/bin/tilefirst-opt",
		MTime:    1234567,
		Checksum: Hash("help text"),
		Payload:  testPayload(),
	}
	require.NoError(t, c.Set(entry))

	got, found := c.Get("/usr/bin/tilefirst-opt")
	require.True(t, found)
	assert.Equal(t, int64(1234567), got.MTime)
	assert.Equal(t, Hash("help text"), got.Checksum)
	assert.False(t, got.LastAccessed.IsZero())

	_, found = c.Get("/usr/bin/other-opt")
	assert.False(t, found)
}

func TestCache_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	c1, err := New(path)
	require.NoError(t, err)
	require.NoError(t, c1.Set(&Entry{
		Binary:   "/opt/bin/mlir-opt",
		MTime:    42,
		Checksum: "abc",
		Payload:  testPayload(),
	}))

	c2, err := New(path)
	require.NoError(t, err)
	entry, found := c2.Get("/opt/bin/mlir-opt")
	require.True(t, found)
	assert.Equal(t, int64(42), entry.MTime)
	require.NotNil(t, entry.Payload)
	assert.Equal(t, []string{"*--cse[CSE]::"}, entry.Payload.OptionSpecs)
}

func TestCache_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	c, err := New(path)
	require.NoError(t, err)
	assert.Empty(t, c.Entries())
}

func TestCache_Clear(t *testing.T) {
	c := newTestCache(t)
	require.NoError(t, c.Set(&Entry{Binary: "/a", Payload: testPayload()}))

	require.NoError(t, c.Clear())
	assert.Empty(t, c.Entries())
	_, err := os.Stat(c.Path())
	assert.True(t, os.IsNotExist(err))

	// Clearing an already-missing file is fine
	require.NoError(t, c.Clear())
}

func TestCache_PrunesIdleEntries(t *testing.T) {
	c := newTestCache(t)

	stale := &Entry{Binary: "/stale", Payload: testPayload()}
	require.NoError(t, c.Set(stale))
	// Backdate past the pruning horizon; the next persist drops it
	stale.LastAccessed = time.Now().Add(-MaxEntryAge - time.Hour)

	require.NoError(t, c.Set(&Entry{Binary: "/fresh", Payload: testPayload()}))

	_, found := c.Get("/stale")
	assert.False(t, found)
	_, found = c.Get("/fresh")
	assert.True(t, found)
}

func TestCache_GetRefreshesIdleTimer(t *testing.T) {
	c := newTestCache(t)

	entry := &Entry{Binary: "/hot", Payload: testPayload()}
	require.NoError(t, c.Set(entry))
	entry.LastAccessed = time.Now().Add(-MaxEntryAge - time.Hour)

	// A hit resets the idle timer, so the entry survives the next persist
	_, found := c.Get("/hot")
	require.True(t, found)
	require.NoError(t, c.Set(&Entry{Binary: "/other", Payload: testPayload()}))

	_, found = c.Get("/hot")
	assert.True(t, found)
}

func TestHash_Deterministic(t *testing.T) {
	assert.Equal(t, Hash("same"), Hash("same"))
	assert.NotEqual(t, Hash("a"), Hash("b"))
	assert.Len(t, Hash(""), 64)
}

func TestMTimeOf(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bin")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0755))

	assert.NotZero(t, MTimeOf(path))
	assert.Zero(t, MTimeOf("/nonexistent/bin"))
}
