package message

import (
	"encoding/json"

	"github.com/c360/pipekit/errors"
)

// SchemaMessage announces the shape of records that will follow for a
// named stream. KeyProperties lists the fields forming the record key;
// BookmarkProperties lists the fields a tap uses for incremental
// checkpoints.
type SchemaMessage struct {
	Stream             string   `json:"stream"`
	Schema             any      `json:"schema"`
	KeyProperties      []string `json:"key_properties"`
	BookmarkProperties []string `json:"bookmark_properties,omitempty"`
}

// NewSchemaMessage constructs a SchemaMessage. bookmarkProperties may
// be nil, in which case the field is omitted from the wire form.
func NewSchemaMessage(stream string, schema any, keyProperties, bookmarkProperties []string) SchemaMessage {
	return SchemaMessage{
		Stream:             stream,
		Schema:             schema,
		KeyProperties:      keyProperties,
		BookmarkProperties: bookmarkProperties,
	}
}

// Kind returns KindSchema.
func (m SchemaMessage) Kind() Kind {
	return KindSchema
}

// Validate checks protocol-required fields.
func (m SchemaMessage) Validate() error {
	if m.Stream == "" {
		return errors.WrapInvalid(errors.ErrMalformedMessage, "SchemaMessage", "Validate", "stream is required")
	}
	if m.Schema == nil {
		return errors.WrapInvalid(errors.ErrMalformedMessage, "SchemaMessage", "Validate", "schema is required")
	}
	return nil
}

// MarshalJSON emits the wire form with the "type" tag first.
func (m SchemaMessage) MarshalJSON() ([]byte, error) {
	type envelope struct {
		Type               Kind     `json:"type"`
		Stream             string   `json:"stream"`
		Schema             any      `json:"schema"`
		KeyProperties      []string `json:"key_properties"`
		BookmarkProperties []string `json:"bookmark_properties,omitempty"`
	}
	return json.Marshal(envelope{
		Type:               KindSchema,
		Stream:             m.Stream,
		Schema:             m.Schema,
		KeyProperties:      m.KeyProperties,
		BookmarkProperties: m.BookmarkProperties,
	})
}
