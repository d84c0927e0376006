// Package catalog provides the discovery document model: the stream
// entries a tap found and the replication metadata describing how each
// stream should be extracted.
//
// A catalog is a pure value built once from a list of entries and
// serialized as a whole single JSON document. It is the output of
// discovery and the input to a configured extraction run; there is no
// partial-update operation.
package catalog

import (
	"io"

	"github.com/c360/pipekit/codec"
	"github.com/c360/pipekit/errors"
)

// Entry describes one discoverable stream.
type Entry struct {
	TapStreamID string `json:"tap_stream_id"`
	Stream      string `json:"stream"`
	Schema      any    `json:"schema"`
}

// Catalog is the full discovery document, an ordered sequence of
// stream entries.
type Catalog struct {
	Streams []Entry `json:"streams"`
}

// NewEntry constructs a stream entry.
func NewEntry(tapStreamID, stream string, schema any) Entry {
	return Entry{
		TapStreamID: tapStreamID,
		Stream:      stream,
		Schema:      schema,
	}
}

// NewCatalog builds a catalog from entries, preserving order. A nil
// entries slice produces an empty streams array rather than a JSON
// null, so the document shape is stable.
func NewCatalog(entries []Entry) Catalog {
	if entries == nil {
		entries = []Entry{}
	}
	return Catalog{Streams: entries}
}

// WriteCatalog encodes the full catalog and emits it as one JSON
// document. Unlike the protocol channel this is not line-delimited:
// the catalog is the single discovery output, not a message stream.
func WriteCatalog(w io.Writer, entries []Entry) error {
	encoded, err := codec.Encode(NewCatalog(entries))
	if err != nil {
		return errors.Wrap(err, "Catalog", "WriteCatalog", "catalog encode")
	}
	if _, err := w.Write(append(encoded, '\n')); err != nil {
		return errors.WrapTransient(err, "Catalog", "WriteCatalog", "document write")
	}
	return nil
}
