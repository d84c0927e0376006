// Package message implements the tap/sink protocol message model.
//
// # Wire Format
//
// The protocol channel carries newline-delimited JSON objects, one
// message per line, each discriminated by a "type" tag:
//
//	{"type":"SCHEMA","stream":"users","schema":{...},"key_properties":["id"]}
//	{"type":"RECORD","stream":"users","record":{"id":1,"name":"Mary"}}
//	{"type":"STATE","value":{"bookmarks":{"users":{"id":1}}}}
//
// There is no envelope, length prefix, or checksum; a corrupted line
// fails that line's parse only.
//
// # Parsing
//
// ParseMessage is the single entry point for decoding. It dispatches on
// the "type" tag and fails with a classified error for non-JSON input,
// non-message JSON, or an unknown tag. Absent optional fields decode to
// absent, not null: RecordMessage.Version and TimeExtracted use the
// Optional wrapper so "no version" and "version is null" survive a
// round trip distinguishably.
//
// # Emission
//
// Writer is the only operation in the package with a side effect. Each
// WriteMessage call appends exactly one encoded line to the configured
// output sink:
//
//	out := message.NewWriter(os.Stdout)
//	if err := out.WriteSchema("users", schema, []string{"id"}, nil); err != nil {
//	    return err
//	}
//	if err := out.WriteRecord("users", map[string]any{"id": 1}); err != nil {
//	    return err
//	}
package message
