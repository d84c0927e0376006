package docstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/pipekit/catalog"
	"github.com/c360/pipekit/codec"
	"github.com/c360/pipekit/docstore"
	pkgerrors "github.com/c360/pipekit/errors"
	"github.com/c360/pipekit/storage"
	"github.com/c360/pipekit/storage/localfs"
)

func newLocalStore(t *testing.T) (*docstore.Store, docstore.Locations) {
	t.Helper()
	dir := t.TempDir()

	registry := storage.NewRegistry(localfs.New())
	locations := docstore.Locations{
		Config:  filepath.Join(dir, "config.json"),
		State:   filepath.Join(dir, "state.json"),
		Catalog: filepath.Join(dir, "catalog.json"),
	}
	return docstore.New(registry), locations
}

func TestStore_StateRoundTrip(t *testing.T) {
	store, locations := newLocalStore(t)
	ctx := context.Background()

	state := map[string]any{"bookmarks": map[string]any{"users": map[string]any{"id": 42.0}}}
	require.NoError(t, store.SaveState(ctx, locations, state))

	got, found, err := store.LoadState(ctx, locations)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, state, got)
}

func TestStore_SaveReplacesWholesale(t *testing.T) {
	store, locations := newLocalStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveConfig(ctx, locations, map[string]any{"old": true, "keep": 1.0}))
	require.NoError(t, store.SaveConfig(ctx, locations, map[string]any{"new": true}))

	got, _, err := store.LoadConfig(ctx, locations)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"new": true}, got)
}

func TestStore_CatalogRoundTripPreservesOrder(t *testing.T) {
	store, locations := newLocalStore(t)
	ctx := context.Background()

	entry1 := catalog.NewEntry("db-users", "users", map[string]any{"type": "object"})
	entry2 := catalog.NewEntry("db-orders", "orders", map[string]any{"type": "object"})
	require.NoError(t, store.SaveCatalog(ctx, locations, catalog.NewCatalog([]catalog.Entry{entry1, entry2})))

	got, found, err := store.LoadCatalog(ctx, locations)
	require.NoError(t, err)
	assert.True(t, found)

	// Re-decode through the typed model to compare entries.
	encoded, err := codec.Encode(got)
	require.NoError(t, err)
	var loaded catalog.Catalog
	require.NoError(t, codec.DecodeInto(encoded, &loaded))

	require.Len(t, loaded.Streams, 2)
	assert.Equal(t, entry1, loaded.Streams[0])
	assert.Equal(t, entry2, loaded.Streams[1])
}

func TestStore_LoadFreshAfterExternalWrite(t *testing.T) {
	store, locations := newLocalStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveState(ctx, locations, map[string]any{"v": 1.0}))
	_, _, err := store.LoadState(ctx, locations)
	require.NoError(t, err)

	// A second writer replaces the document behind the store's back.
	other := docstore.New(storage.NewRegistry(localfs.New()))
	require.NoError(t, other.SaveState(ctx, locations, map[string]any{"v": 2.0}))

	got, _, err := store.LoadState(ctx, locations)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"v": 2.0}, got,
		"load must re-read the backend, never serve a cached value")
}

func TestStore_MissingLocation(t *testing.T) {
	store, _ := newLocalStore(t)

	_, _, err := store.LoadState(context.Background(), docstore.Locations{})
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.ErrMissingConfig))
}

func TestStore_LocalAbsentIsError(t *testing.T) {
	store, locations := newLocalStore(t)

	_, found, err := store.LoadState(context.Background(), locations)
	require.Error(t, err)
	assert.False(t, found)
	assert.True(t, pkgerrors.Is(err, pkgerrors.ErrDocumentNotFound))
}
