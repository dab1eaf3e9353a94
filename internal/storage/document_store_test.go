// internal/storage/document_store_test.go
package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDoc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestStore(t *testing.T) *DocumentStore {
	t.Helper()
	store, err := NewDocumentStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	saved := testDoc{Name: "projeto", Count: 3}
	require.NoError(t, store.Save("projects", "p1", saved))

	var loaded testDoc
	require.NoError(t, store.Load("projects", "p1", &loaded))
	assert.Equal(t, saved, loaded)
}

func TestLoadMissingDocument(t *testing.T) {
	store := newTestStore(t)

	var doc testDoc
	err := store.Load("projects", "missing", &doc)

	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteMissingDocument(t *testing.T) {
	store := newTestStore(t)

	err := store.Delete("projects", "missing")

	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestExists(t *testing.T) {
	store := newTestStore(t)

	assert.False(t, store.Exists("projects", "p1"))
	require.NoError(t, store.Save("projects", "p1", testDoc{Name: "a"}))
	assert.True(t, store.Exists("projects", "p1"))

	require.NoError(t, store.Delete("projects", "p1"))
	assert.False(t, store.Exists("projects", "p1"))
}

func TestListIDs(t *testing.T) {
	store := newTestStore(t)

	ids, err := store.ListIDs("projects")
	require.NoError(t, err)
	assert.Nil(t, ids)

	require.NoError(t, store.Save("projects", "a", testDoc{}))
	require.NoError(t, store.Save("projects", "b", testDoc{}))

	// Non-JSON clutter is ignored.
	require.NoError(t, os.WriteFile(filepath.Join(store.BaseDir, "projects", "notes.txt"), []byte("x"), 0644))

	ids, err = store.ListIDs("projects")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, ids)
}

func TestSaveInvalidatesCache(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save("projects", "p1", testDoc{Name: "first"}))

	var loaded testDoc
	require.NoError(t, store.Load("projects", "p1", &loaded)) // warms the cache
	assert.Equal(t, "first", loaded.Name)

	require.NoError(t, store.Save("projects", "p1", testDoc{Name: "second"}))

	require.NoError(t, store.Load("projects", "p1", &loaded))
	assert.Equal(t, "second", loaded.Name)
}

func TestDeleteInvalidatesCache(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save("projects", "p1", testDoc{Name: "first"}))

	var loaded testDoc
	require.NoError(t, store.Load("projects", "p1", &loaded))
	require.NoError(t, store.Delete("projects", "p1"))

	err := store.Load("projects", "p1", &loaded)
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestAtomicWriteLeavesNoTempFile(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save("projects", "p1", testDoc{Name: "a"}))

	entries, err := os.ReadDir(filepath.Join(store.BaseDir, "projects"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "p1.json", entries[0].Name())
}
