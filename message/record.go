package message

import (
	"encoding/json"
	"time"

	"github.com/c360/pipekit/errors"
)

// RecordMessage carries one extracted record for a named stream.
//
// Version and TimeExtracted are optional on the wire; when a tap does
// not supply them they are absent from the emitted line, not defaulted.
type RecordMessage struct {
	Stream        string              `json:"stream"`
	Record        map[string]any      `json:"record"`
	Version       Optional[int64]     `json:"version,omitzero"`
	TimeExtracted Optional[time.Time] `json:"time_extracted,omitzero"`
}

// NewRecordMessage constructs a RecordMessage with both optional fields
// absent. Callers set Version or TimeExtracted on the returned value
// before writing if the tap tracks them.
func NewRecordMessage(stream string, record map[string]any) RecordMessage {
	return RecordMessage{
		Stream: stream,
		Record: record,
	}
}

// Kind returns KindRecord.
func (m RecordMessage) Kind() Kind {
	return KindRecord
}

// Validate checks protocol-required fields.
func (m RecordMessage) Validate() error {
	if m.Stream == "" {
		return errors.WrapInvalid(errors.ErrMalformedMessage, "RecordMessage", "Validate", "stream is required")
	}
	if m.Record == nil {
		return errors.WrapInvalid(errors.ErrMalformedMessage, "RecordMessage", "Validate", "record is required")
	}
	return nil
}

// MarshalJSON emits the wire form with the "type" tag first.
func (m RecordMessage) MarshalJSON() ([]byte, error) {
	type envelope struct {
		Type          Kind                `json:"type"`
		Stream        string              `json:"stream"`
		Record        map[string]any      `json:"record"`
		Version       Optional[int64]     `json:"version,omitzero"`
		TimeExtracted Optional[time.Time] `json:"time_extracted,omitzero"`
	}
	return json.Marshal(envelope{
		Type:          KindRecord,
		Stream:        m.Stream,
		Record:        m.Record,
		Version:       m.Version,
		TimeExtracted: m.TimeExtracted,
	})
}
