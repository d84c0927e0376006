// Package blobstore implements the remote object-storage document
// backend over an injected blob-store client.
//
// The client is treated as an opaque get/put/delete-by-name service
// behind the ObjectClient interface; MinioClient adapts a
// *minio.Client for S3-compatible stores. The backend splits a
// scheme-stripped path into bucket (first segment) and object name
// (remainder).
//
// Unlike the local backend, a read of a missing object is not an
// error: it returns an explicit absent result, because remote callers
// (state documents on first run, for example) treat absence as a valid
// empty state. Backend failures (network, auth) propagate as
// errors.ErrBackendIO.
package blobstore

import (
	"context"
	"time"

	"github.com/c360/pipekit/codec"
	"github.com/c360/pipekit/errors"
	"github.com/c360/pipekit/metric"
	"github.com/c360/pipekit/storage"
)

// contentType applied to every uploaded document.
const contentType = "application/json"

// ErrObjectNotFound is the client-level sentinel for a missing object.
// Adapters translate their store's native not-found signal to this so
// the backend can produce the non-error absent read result.
var ErrObjectNotFound = errors.New("object not found")

// ObjectClient is the opaque blob-store seam. Implementations must
// return ErrObjectNotFound (wrapped or bare) from GetObject and
// RemoveObject when the named object does not exist.
type ObjectClient interface {
	GetObject(ctx context.Context, bucket, name string) ([]byte, error)
	PutObject(ctx context.Context, bucket, name string, data []byte, contentType string) error
	RemoveObject(ctx context.Context, bucket, name string) error
}

// Backend stores whole JSON documents as blobs.
type Backend struct {
	client  ObjectClient
	metrics *metric.OpMetrics
}

var _ storage.Backend = (*Backend)(nil)

// New creates a blob backend over client. metrics may be nil.
func New(client ObjectClient, metrics *metric.OpMetrics) *Backend {
	return &Backend{client: client, metrics: metrics}
}

// Read fetches and decodes the blob at bucket/name. A missing blob
// returns (nil, false, nil): absent, not failed.
func (b *Backend) Read(ctx context.Context, path string) (doc any, found bool, err error) {
	start := time.Now()
	defer func() { b.metrics.Observe("read", start, err) }()

	bucket, name, err := storage.SplitBucketPath(path)
	if err != nil {
		return nil, false, err
	}

	data, err := b.client.GetObject(ctx, bucket, name)
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return nil, false, nil
		}
		return nil, false, errors.WrapTransient(errors.ErrBackendIO, "BlobStore", "Read", err.Error())
	}

	doc, err = codec.Decode(data)
	if err != nil {
		return nil, false, errors.Wrap(err, "BlobStore", "Read", "document decode")
	}
	return doc, true, nil
}

// Write encodes doc and uploads it, replacing any existing blob.
func (b *Backend) Write(ctx context.Context, path string, doc any) (err error) {
	start := time.Now()
	defer func() { b.metrics.Observe("write", start, err) }()

	bucket, name, err := storage.SplitBucketPath(path)
	if err != nil {
		return err
	}

	encoded, err := codec.Encode(doc)
	if err != nil {
		return errors.Wrap(err, "BlobStore", "Write", "document encode")
	}

	if err := b.client.PutObject(ctx, bucket, name, encoded, contentType); err != nil {
		return errors.WrapTransient(errors.ErrBackendIO, "BlobStore", "Write", err.Error())
	}
	return nil
}

// Delete removes the named blob. Deleting an absent blob is idempotent.
func (b *Backend) Delete(ctx context.Context, path string) (err error) {
	start := time.Now()
	defer func() { b.metrics.Observe("delete", start, err) }()

	bucket, name, err := storage.SplitBucketPath(path)
	if err != nil {
		return err
	}

	if err := b.client.RemoveObject(ctx, bucket, name); err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return nil
		}
		return errors.WrapTransient(errors.ErrBackendIO, "BlobStore", "Delete", err.Error())
	}
	return nil
}
