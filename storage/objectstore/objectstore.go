// Package objectstore implements a document backend on NATS JetStream
// ObjectStore buckets. It exists both as a production backend for
// NATS-based deployments and as the reference for adding a new scheme:
// registering it under "nats" touches no dispatch logic.
//
// The presence contract matches the remote-object backend: a read of a
// missing object returns an explicit absent result, not an error.
package objectstore

import (
	"context"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/c360/pipekit/codec"
	"github.com/c360/pipekit/errors"
	"github.com/c360/pipekit/metric"
	"github.com/c360/pipekit/storage"
)

// Backend stores whole JSON documents in JetStream ObjectStore
// buckets, one bucket per location's first path segment.
type Backend struct {
	js      jetstream.JetStream
	metrics *metric.OpMetrics

	// CreateBuckets controls whether Write creates a missing bucket
	// instead of failing. Reads never create buckets.
	CreateBuckets bool
}

var _ storage.Backend = (*Backend)(nil)

// New creates a JetStream-backed document backend. metrics may be nil.
func New(js jetstream.JetStream, metrics *metric.OpMetrics) *Backend {
	return &Backend{js: js, metrics: metrics, CreateBuckets: true}
}

// Read fetches and decodes the object at bucket/name. A missing bucket
// or object returns (nil, false, nil).
func (b *Backend) Read(ctx context.Context, path string) (doc any, found bool, err error) {
	start := time.Now()
	defer func() { b.metrics.Observe("read", start, err) }()

	bucket, name, err := storage.SplitBucketPath(path)
	if err != nil {
		return nil, false, err
	}

	store, err := b.js.ObjectStore(ctx, bucket)
	if err != nil {
		if errors.Is(err, jetstream.ErrBucketNotFound) {
			return nil, false, nil
		}
		return nil, false, errors.WrapTransient(errors.ErrBackendIO, "ObjectStore", "Read", err.Error())
	}

	data, err := store.GetBytes(ctx, name)
	if err != nil {
		if errors.Is(err, jetstream.ErrObjectNotFound) {
			return nil, false, nil
		}
		return nil, false, errors.WrapTransient(errors.ErrBackendIO, "ObjectStore", "Read", err.Error())
	}

	doc, err = codec.Decode(data)
	if err != nil {
		return nil, false, errors.Wrap(err, "ObjectStore", "Read", "document decode")
	}
	return doc, true, nil
}

// Write encodes doc and replaces the object at bucket/name.
func (b *Backend) Write(ctx context.Context, path string, doc any) (err error) {
	start := time.Now()
	defer func() { b.metrics.Observe("write", start, err) }()

	bucket, name, err := storage.SplitBucketPath(path)
	if err != nil {
		return err
	}

	encoded, err := codec.Encode(doc)
	if err != nil {
		return errors.Wrap(err, "ObjectStore", "Write", "document encode")
	}

	store, err := b.store(ctx, bucket)
	if err != nil {
		return err
	}

	if _, err := store.PutBytes(ctx, name, encoded); err != nil {
		return errors.WrapTransient(errors.ErrBackendIO, "ObjectStore", "Write", err.Error())
	}
	return nil
}

// Delete removes the object at bucket/name. Absent objects and buckets
// are idempotent no-ops.
func (b *Backend) Delete(ctx context.Context, path string) (err error) {
	start := time.Now()
	defer func() { b.metrics.Observe("delete", start, err) }()

	bucket, name, err := storage.SplitBucketPath(path)
	if err != nil {
		return err
	}

	store, err := b.js.ObjectStore(ctx, bucket)
	if err != nil {
		if errors.Is(err, jetstream.ErrBucketNotFound) {
			return nil
		}
		return errors.WrapTransient(errors.ErrBackendIO, "ObjectStore", "Delete", err.Error())
	}

	if err := store.Delete(ctx, name); err != nil {
		if errors.Is(err, jetstream.ErrObjectNotFound) {
			return nil
		}
		return errors.WrapTransient(errors.ErrBackendIO, "ObjectStore", "Delete", err.Error())
	}
	return nil
}

// store resolves the bucket handle for writes, creating the bucket
// when configured to.
func (b *Backend) store(ctx context.Context, bucket string) (jetstream.ObjectStore, error) {
	store, err := b.js.ObjectStore(ctx, bucket)
	if err == nil {
		return store, nil
	}
	if !errors.Is(err, jetstream.ErrBucketNotFound) {
		return nil, errors.WrapTransient(errors.ErrBackendIO, "ObjectStore", "store", err.Error())
	}
	if !b.CreateBuckets {
		return nil, errors.WrapTransient(errors.ErrBucketNotFound, "ObjectStore", "store", bucket)
	}

	store, err = b.js.CreateObjectStore(ctx, jetstream.ObjectStoreConfig{Bucket: bucket})
	if err != nil {
		return nil, errors.WrapTransient(errors.ErrBackendIO, "ObjectStore", "store", err.Error())
	}
	return store, nil
}
