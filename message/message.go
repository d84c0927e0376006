package message

import "encoding/json"

// Kind identifies the protocol message kind carried in the "type" tag.
type Kind string

// The three protocol message kinds. Any other tag on the wire is a
// decode error, never a silently ignored line.
const (
	KindRecord Kind = "RECORD"
	KindSchema Kind = "SCHEMA"
	KindState  Kind = "STATE"
)

// IsValid checks whether the kind is one of the three protocol tags.
func (k Kind) IsValid() bool {
	switch k {
	case KindRecord, KindSchema, KindState:
		return true
	default:
		return false
	}
}

// Message represents a single protocol message exchanged between taps
// and sinks. Messages are immutable values: once constructed, each
// write emits exactly one line of encoded output, and a message has no
// identity beyond its position in the output stream.
//
// By protocol convention a sink must see a SCHEMA message for a stream
// before RECORD messages for that stream; emission order is the
// caller's responsibility and is not enforced here.
type Message interface {
	// Kind returns the discriminating type tag of this message.
	Kind() Kind

	// Validate checks the message fields for protocol correctness.
	Validate() error

	// Messages marshal to their exact wire form, a single JSON object
	// with "type" as the first field.
	json.Marshaler
}
