package message

import (
	"encoding/json"

	"github.com/c360/pipekit/codec"
	"github.com/c360/pipekit/errors"
)

// ParseMessage decodes one line of the protocol channel into a typed
// Message. It is a pure function with no side effects and never returns
// a partially-built message: on any failure the result is nil.
//
// Failure modes, in order of detection:
//   - errors.ErrDecodeFailed: the line is not well-formed JSON
//   - errors.ErrMalformedMessage: valid JSON but not an object, the
//     "type" tag is missing, or the tagged fields don't fit the kind
//   - errors.ErrUnknownMessageType: a tag outside RECORD/SCHEMA/STATE
func ParseMessage(line []byte) (Message, error) {
	decoded, err := codec.Decode(line)
	if err != nil {
		return nil, err
	}

	obj, ok := decoded.(map[string]any)
	if !ok {
		return nil, errors.WrapInvalid(errors.ErrMalformedMessage,
			"Message", "ParseMessage", "line is not a JSON object")
	}

	rawKind, ok := obj["type"]
	if !ok {
		return nil, errors.WrapInvalid(errors.ErrMalformedMessage,
			"Message", "ParseMessage", "missing type tag")
	}
	tag, ok := rawKind.(string)
	if !ok || tag == "" {
		return nil, errors.WrapInvalid(errors.ErrMalformedMessage,
			"Message", "ParseMessage", "type tag is not a string")
	}

	switch Kind(tag) {
	case KindRecord:
		return parseTyped[RecordMessage](line)
	case KindSchema:
		return parseTyped[SchemaMessage](line)
	case KindState:
		return parseTyped[StateMessage](line)
	default:
		return nil, errors.WrapInvalid(errors.ErrUnknownMessageType,
			"Message", "ParseMessage", "type "+tag)
	}
}

// parseTyped unmarshals the already-validated JSON line into a concrete
// message type and runs its protocol validation.
func parseTyped[M Message](line []byte) (Message, error) {
	var m M
	if err := json.Unmarshal(line, &m); err != nil {
		return nil, errors.WrapInvalid(errors.ErrMalformedMessage,
			"Message", "ParseMessage", err.Error())
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
