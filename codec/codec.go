// Package codec provides the single-line JSON encoding shared by the
// protocol channel and the document storage layer.
//
// Encode produces canonical compact JSON with no trailing newline and no
// HTML escaping, so an encoded value is always exactly one line of the
// protocol channel. Decode is the inverse: objects come back as
// map[string]any so downstream code can address fields uniformly, and
// malformed input fails with errors.ErrDecodeFailed.
package codec

import (
	"bytes"
	"encoding/json"

	"github.com/c360/pipekit/errors"
)

// Encode serializes any JSON-representable value to its canonical
// single-line form. The output round-trips through Decode.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, errors.WrapInvalid(err, "Codec", "Encode", "JSON marshal")
	}
	// json.Encoder appends a newline; the caller owns line framing.
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Decode parses data into a JSON-representable value. JSON objects
// decode to map[string]any, arrays to []any, numbers to float64.
func Decode(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, errors.WrapInvalid(errors.ErrDecodeFailed, "Codec", "Decode", err.Error())
	}
	return v, nil
}

// DecodeInto parses data into a typed target. Used where the caller
// knows the document shape, such as catalog documents.
func DecodeInto(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return errors.WrapInvalid(errors.ErrDecodeFailed, "Codec", "DecodeInto", err.Error())
	}
	return nil
}
