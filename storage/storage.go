// Package storage provides the scheme-dispatched document storage layer.
//
// A location string is classified by its URI scheme: "s3://bucket/path"
// selects the backend registered for "s3", while a bare path with no
// "://" selects the default local backend. The Registry exposes three
// polymorphic operations (read, write, delete) implemented once per
// backend; adding a backend means registering a new scheme key, never
// modifying dispatch logic.
//
// Reads report presence explicitly. The local backend fails a read of
// an absent file with errors.ErrDocumentNotFound; remote object
// backends instead return (nil, false, nil) for a missing object. That
// asymmetry is deliberate and preserved: callers of remote storage
// treat an absent document as a valid empty state, not a failure.
package storage

import (
	"context"
	"strings"
	"sync"

	"github.com/c360/pipekit/errors"
)

// Backend implements document persistence for one location scheme.
//
// Read returns the decoded document and whether it was found. Write
// replaces the document at path wholesale; there are no partial
// updates. All implementations must be safe for concurrent use.
type Backend interface {
	Read(ctx context.Context, path string) (doc any, found bool, err error)
	Write(ctx context.Context, path string, doc any) error
	Delete(ctx context.Context, path string) error
}

// Registry dispatches document operations to the backend selected by a
// location string's scheme.
type Registry struct {
	backends     map[string]Backend
	defaultLocal Backend
	mu           sync.RWMutex
}

// NewRegistry creates a registry with the given default backend for
// scheme-less (local) paths.
func NewRegistry(local Backend) *Registry {
	return &Registry{
		backends:     make(map[string]Backend),
		defaultLocal: local,
	}
}

// Register adds a backend under a scheme key, e.g. "s3". Registering
// an empty scheme or a duplicate is an error; existing callers never
// change when a scheme is added.
func (r *Registry) Register(scheme string, backend Backend) error {
	if scheme == "" {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Registry", "Register", "scheme validation")
	}
	if backend == nil {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Registry", "Register", "backend validation")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.backends[scheme]; exists {
		return errors.WrapInvalid(errors.ErrAlreadyRegistered, "Registry", "Register", "scheme "+scheme)
	}
	r.backends[scheme] = backend
	return nil
}

// resolve classifies the location and returns the backend plus the
// scheme-stripped path the backend should operate on.
func (r *Registry) resolve(location string) (Backend, string, error) {
	scheme, rest, ok := strings.Cut(location, "://")
	if !ok {
		if r.defaultLocal == nil {
			return nil, "", errors.WrapInvalid(errors.ErrUnknownScheme, "Registry", "resolve", "no local backend")
		}
		return r.defaultLocal, location, nil
	}

	r.mu.RLock()
	backend, exists := r.backends[scheme]
	r.mu.RUnlock()

	if !exists {
		return nil, "", errors.WrapInvalid(errors.ErrUnknownScheme, "Registry", "resolve", "scheme "+scheme)
	}
	return backend, rest, nil
}

// ReadDocument reads and decodes the document at location. The found
// flag follows the backend's presence contract.
func (r *Registry) ReadDocument(ctx context.Context, location string) (any, bool, error) {
	backend, path, err := r.resolve(location)
	if err != nil {
		return nil, false, err
	}
	return backend.Read(ctx, path)
}

// WriteDocument encodes doc and replaces the document at location
// wholesale.
func (r *Registry) WriteDocument(ctx context.Context, location string, doc any) error {
	backend, path, err := r.resolve(location)
	if err != nil {
		return err
	}
	return backend.Write(ctx, path, doc)
}

// DeleteDocument removes the document at location.
func (r *Registry) DeleteDocument(ctx context.Context, location string) error {
	backend, path, err := r.resolve(location)
	if err != nil {
		return err
	}
	return backend.Delete(ctx, path)
}

// SplitBucketPath splits a scheme-stripped remote path into its bucket
// (first segment) and object name (remainder). Remote backends share
// this so "bucket/a/b.json" always means bucket "bucket", object
// "a/b.json".
func SplitBucketPath(path string) (bucket, object string, err error) {
	bucket, object, ok := strings.Cut(path, "/")
	if !ok || bucket == "" || object == "" {
		return "", "", errors.WrapInvalid(errors.ErrInvalidData,
			"Storage", "SplitBucketPath", "path must be bucket/object, got "+path)
	}
	return bucket, object, nil
}
