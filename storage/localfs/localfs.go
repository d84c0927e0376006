// Package localfs implements the local filesystem document backend.
// It is the default backend for location strings without a scheme
// prefix.
package localfs

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/c360/pipekit/codec"
	"github.com/c360/pipekit/errors"
	"github.com/c360/pipekit/storage"
)

// Backend reads and writes whole JSON documents as local files.
type Backend struct{}

var _ storage.Backend = (*Backend)(nil)

// New creates a local filesystem backend.
func New() *Backend {
	return &Backend{}
}

// Read decodes the full file content at path. A missing file fails
// with errors.ErrDocumentNotFound; access failures with
// errors.ErrPermissionDenied. This is the strict half of the
// local/remote asymmetry: local callers asked for a file that should
// exist.
func (b *Backend) Read(_ context.Context, path string) (any, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, classifyFSError(err, "Read")
	}

	doc, err := codec.Decode(data)
	if err != nil {
		return nil, false, errors.Wrap(err, "LocalFS", "Read", "document decode")
	}
	return doc, true, nil
}

// Write encodes doc and replaces the file at path entirely. The
// document lands via a temp file and rename in the same directory, so
// a failed write never leaves a partial document behind.
func (b *Backend) Write(_ context.Context, path string, doc any) error {
	encoded, err := codec.Encode(doc)
	if err != nil {
		return errors.Wrap(err, "LocalFS", "Write", "document encode")
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".pipekit-*")
	if err != nil {
		return classifyFSError(err, "Write")
	}
	tmpName := tmp.Name()

	_, writeErr := tmp.Write(append(encoded, '\n'))
	closeErr := tmp.Close()
	if writeErr != nil || closeErr != nil {
		_ = os.Remove(tmpName)
		if writeErr == nil {
			writeErr = closeErr
		}
		return classifyFSError(writeErr, "Write")
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return classifyFSError(err, "Write")
	}
	return nil
}

// Delete removes the file at path.
func (b *Backend) Delete(_ context.Context, path string) error {
	if err := os.Remove(path); err != nil {
		return classifyFSError(err, "Delete")
	}
	return nil
}

func classifyFSError(err error, method string) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return errors.WrapInvalid(errors.ErrDocumentNotFound, "LocalFS", method, err.Error())
	case errors.Is(err, fs.ErrPermission):
		return errors.WrapFatal(errors.ErrPermissionDenied, "LocalFS", method, err.Error())
	default:
		return errors.WrapTransient(err, "LocalFS", method, "file access")
	}
}
