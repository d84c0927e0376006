package message_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/c360/pipekit/errors"
	"github.com/c360/pipekit/message"
)

func TestParseMessage_Record(t *testing.T) {
	line := []byte(`{"type":"RECORD","stream":"users","record":{"id":1,"name":"Mary"}}`)

	parsed, err := message.ParseMessage(line)
	require.NoError(t, err)

	record, ok := parsed.(message.RecordMessage)
	require.True(t, ok, "expected RecordMessage, got %T", parsed)
	assert.Equal(t, message.KindRecord, record.Kind())
	assert.Equal(t, "users", record.Stream)
	assert.Equal(t, map[string]any{"id": 1.0, "name": "Mary"}, record.Record)
	assert.False(t, record.Version.Present(), "absent version must decode as absent")
	assert.False(t, record.TimeExtracted.Present(), "absent time_extracted must decode as absent")
}

func TestParseMessage_RecordOptionalFields(t *testing.T) {
	line := []byte(`{"type":"RECORD","stream":"users","record":{"id":1},` +
		`"version":3,"time_extracted":"2024-06-01T12:00:00Z"}`)

	parsed, err := message.ParseMessage(line)
	require.NoError(t, err)

	record := parsed.(message.RecordMessage)
	version, ok := record.Version.Get()
	require.True(t, ok)
	assert.Equal(t, int64(3), version)

	extracted, ok := record.TimeExtracted.Get()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), extracted)
}

func TestParseMessage_NullVersionDistinctFromAbsent(t *testing.T) {
	withNull, err := message.ParseMessage(
		[]byte(`{"type":"RECORD","stream":"users","record":{},"version":null}`))
	require.NoError(t, err)

	record := withNull.(message.RecordMessage)
	assert.True(t, record.Version.Present(), "explicit null is present on the wire")
	assert.True(t, record.Version.IsNull())
	_, ok := record.Version.Get()
	assert.False(t, ok)

	without, err := message.ParseMessage(
		[]byte(`{"type":"RECORD","stream":"users","record":{}}`))
	require.NoError(t, err)

	record = without.(message.RecordMessage)
	assert.False(t, record.Version.Present())
	assert.False(t, record.Version.IsNull())
}

func TestParseMessage_Schema(t *testing.T) {
	line := []byte(`{"type":"SCHEMA","stream":"users",` +
		`"schema":{"type":"object"},"key_properties":["id"],"bookmark_properties":["updated_at"]}`)

	parsed, err := message.ParseMessage(line)
	require.NoError(t, err)

	schema, ok := parsed.(message.SchemaMessage)
	require.True(t, ok, "expected SchemaMessage, got %T", parsed)
	assert.Equal(t, "users", schema.Stream)
	assert.Equal(t, map[string]any{"type": "object"}, schema.Schema)
	assert.Equal(t, []string{"id"}, schema.KeyProperties)
	assert.Equal(t, []string{"updated_at"}, schema.BookmarkProperties)
}

func TestParseMessage_State(t *testing.T) {
	line := []byte(`{"type":"STATE","value":{"bookmarks":{"users":{"id":42}}}}`)

	parsed, err := message.ParseMessage(line)
	require.NoError(t, err)

	state, ok := parsed.(message.StateMessage)
	require.True(t, ok, "expected StateMessage, got %T", parsed)
	assert.Equal(t,
		map[string]any{"bookmarks": map[string]any{"users": map[string]any{"id": 42.0}}},
		state.Value)
}

func TestParseMessage_Failures(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		sentinel error
	}{
		{"not json", `{"type":`, pkgerrors.ErrDecodeFailed},
		{"not an object", `["RECORD"]`, pkgerrors.ErrMalformedMessage},
		{"missing type", `{"stream":"users","record":{}}`, pkgerrors.ErrMalformedMessage},
		{"type not a string", `{"type":7}`, pkgerrors.ErrMalformedMessage},
		{"empty type", `{"type":""}`, pkgerrors.ErrMalformedMessage},
		{"unknown type", `{"type":"ACTIVATE_VERSION","stream":"users"}`, pkgerrors.ErrUnknownMessageType},
		{"record without stream", `{"type":"RECORD","record":{}}`, pkgerrors.ErrMalformedMessage},
		{"record without record", `{"type":"RECORD","stream":"users"}`, pkgerrors.ErrMalformedMessage},
		{"schema without schema", `{"type":"SCHEMA","stream":"users"}`, pkgerrors.ErrMalformedMessage},
		{"record with bad version", `{"type":"RECORD","stream":"u","record":{},"version":"x"}`, pkgerrors.ErrMalformedMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := message.ParseMessage([]byte(tt.line))
			require.Error(t, err)
			assert.Nil(t, parsed, "failed parse must not return a partial message")
			assert.True(t, pkgerrors.Is(err, tt.sentinel),
				"expected %v in chain, got %v", tt.sentinel, err)
		})
	}
}

func TestParseMessage_RoundTrip(t *testing.T) {
	extracted := message.Some(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))

	record := message.NewRecordMessage("orders", map[string]any{"id": 7.0})
	record.Version = message.Some[int64](2)
	record.TimeExtracted = extracted

	messages := []message.Message{
		record,
		message.NewSchemaMessage("orders",
			map[string]any{"type": "object"}, []string{"id"}, []string{"updated_at"}),
		message.NewStateMessage(map[string]any{"cursor": "abc"}),
	}

	for _, original := range messages {
		t.Run(string(original.Kind()), func(t *testing.T) {
			encoded, err := original.MarshalJSON()
			require.NoError(t, err)

			parsed, err := message.ParseMessage(encoded)
			require.NoError(t, err)
			assert.Equal(t, original, parsed)
		})
	}
}
