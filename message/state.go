package message

import "encoding/json"

// StateMessage carries an opaque checkpoint value. The value's schema
// is owned by the tap that emits it; sinks and the pipeline driver
// treat it as a black box to persist.
type StateMessage struct {
	Value any `json:"value"`
}

// NewStateMessage constructs a StateMessage.
func NewStateMessage(value any) StateMessage {
	return StateMessage{Value: value}
}

// Kind returns KindState.
func (m StateMessage) Kind() Kind {
	return KindState
}

// Validate always succeeds: any JSON value, including null, is a legal
// checkpoint.
func (m StateMessage) Validate() error {
	return nil
}

// MarshalJSON emits the wire form with the "type" tag first.
func (m StateMessage) MarshalJSON() ([]byte, error) {
	type envelope struct {
		Type  Kind `json:"type"`
		Value any  `json:"value"`
	}
	return json.Marshal(envelope{Type: KindState, Value: m.Value})
}
