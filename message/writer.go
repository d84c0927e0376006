package message

import (
	"io"

	"github.com/c360/pipekit/codec"
	"github.com/c360/pipekit/errors"
)

// Writer emits protocol messages to an output channel, one encoded line
// per message.
//
// Writes are simple sequential appends to the shared sink; no internal
// lock is provided. Hosts running concurrent workers must serialize
// their own writers.
type Writer struct {
	w io.Writer
}

// NewWriter wraps the process data-output channel, typically os.Stdout
// for a tap.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteMessage validates, encodes, and emits one message as a single
// line. The line is written in one call to the underlying writer, so a
// failed write never leaves a partial message followed by a retry.
func (wr *Writer) WriteMessage(m Message) error {
	if m == nil {
		return errors.WrapInvalid(errors.ErrMalformedMessage, "Writer", "WriteMessage", "nil message")
	}
	if err := m.Validate(); err != nil {
		return err
	}

	encoded, err := codec.Encode(m)
	if err != nil {
		return errors.Wrap(err, "Writer", "WriteMessage", "message encode")
	}

	line := make([]byte, 0, len(encoded)+1)
	line = append(line, encoded...)
	line = append(line, '\n')
	if _, err := wr.w.Write(line); err != nil {
		return errors.WrapTransient(err, "Writer", "WriteMessage", "channel write")
	}
	return nil
}

// WriteRecord emits a single RECORD message for the stream.
func (wr *Writer) WriteRecord(stream string, record map[string]any) error {
	return wr.WriteMessage(NewRecordMessage(stream, record))
}

// WriteRecords emits one RECORD message per record, in order. Emission
// stops at the first failure.
func (wr *Writer) WriteRecords(stream string, records []map[string]any) error {
	for _, record := range records {
		if err := wr.WriteRecord(stream, record); err != nil {
			return err
		}
	}
	return nil
}

// WriteSchema emits a SCHEMA message for the stream.
func (wr *Writer) WriteSchema(stream string, schema any, keyProperties, bookmarkProperties []string) error {
	return wr.WriteMessage(NewSchemaMessage(stream, schema, keyProperties, bookmarkProperties))
}

// WriteState emits a STATE checkpoint message.
func (wr *Writer) WriteState(value any) error {
	return wr.WriteMessage(NewStateMessage(value))
}
