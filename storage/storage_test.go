package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/c360/pipekit/errors"
	"github.com/c360/pipekit/storage"
)

// recordingBackend captures the paths it is called with.
type recordingBackend struct {
	lastOp   string
	lastPath string
	doc      any
}

func (b *recordingBackend) Read(_ context.Context, path string) (any, bool, error) {
	b.lastOp, b.lastPath = "read", path
	return b.doc, b.doc != nil, nil
}

func (b *recordingBackend) Write(_ context.Context, path string, doc any) error {
	b.lastOp, b.lastPath = "write", path
	b.doc = doc
	return nil
}

func (b *recordingBackend) Delete(_ context.Context, path string) error {
	b.lastOp, b.lastPath = "delete", path
	b.doc = nil
	return nil
}

func TestRegistry_SchemeDispatch(t *testing.T) {
	local := &recordingBackend{}
	remote := &recordingBackend{}

	registry := storage.NewRegistry(local)
	require.NoError(t, registry.Register("s3", remote))

	ctx := context.Background()

	require.NoError(t, registry.WriteDocument(ctx, "s3://bucket/state.json", map[string]any{"a": 1}))
	assert.Equal(t, "write", remote.lastOp)
	assert.Equal(t, "bucket/state.json", remote.lastPath, "scheme must be stripped before dispatch")
	assert.Empty(t, local.lastOp)

	require.NoError(t, registry.WriteDocument(ctx, "/tmp/config.json", map[string]any{"b": 2}))
	assert.Equal(t, "write", local.lastOp)
	assert.Equal(t, "/tmp/config.json", local.lastPath, "bare paths go to the local backend unchanged")
}

func TestRegistry_UnknownScheme(t *testing.T) {
	registry := storage.NewRegistry(&recordingBackend{})

	_, _, err := registry.ReadDocument(context.Background(), "gs://bucket/x.json")
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.ErrUnknownScheme))
}

func TestRegistry_RegisterValidation(t *testing.T) {
	registry := storage.NewRegistry(&recordingBackend{})

	assert.Error(t, registry.Register("", &recordingBackend{}))
	assert.Error(t, registry.Register("s3", nil))

	require.NoError(t, registry.Register("s3", &recordingBackend{}))
	err := registry.Register("s3", &recordingBackend{})
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.ErrAlreadyRegistered))
}

func TestRegistry_AddedSchemeRoutesWithoutDispatchChanges(t *testing.T) {
	local := &recordingBackend{}
	registry := storage.NewRegistry(local)

	nats := &recordingBackend{}
	require.NoError(t, registry.Register("nats", nats))

	require.NoError(t, registry.DeleteDocument(context.Background(), "nats://docs/catalog.json"))
	assert.Equal(t, "delete", nats.lastOp)
	assert.Equal(t, "docs/catalog.json", nats.lastPath)
}

func TestSplitBucketPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		bucket  string
		object  string
		wantErr bool
	}{
		{"simple", "bucket/state.json", "bucket", "state.json", false},
		{"nested object", "bucket/a/b/c.json", "bucket", "a/b/c.json", false},
		{"no object", "bucket", "", "", true},
		{"empty bucket", "/state.json", "", "", true},
		{"trailing slash only", "bucket/", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, object, err := storage.SplitBucketPath(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, pkgerrors.Is(err, pkgerrors.ErrInvalidData))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.bucket, bucket)
			assert.Equal(t, tt.object, object)
		})
	}
}
