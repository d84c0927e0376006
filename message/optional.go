package message

import (
	"bytes"
	"encoding/json"
)

var jsonNull = []byte("null")

// Optional is a tri-state wrapper for optional wire fields. It
// distinguishes "absent" (field not on the wire) from "present but
// null" from "present with a value", so a sink can tell "no version"
// apart from "version is null". A sentinel value cannot make that
// distinction, hence the explicit presence wrapper.
//
// The zero value is absent. Fields typed Optional must carry the
// "omitzero" JSON tag so absent values stay off the wire entirely.
type Optional[T any] struct {
	value   T
	present bool
	null    bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

// Null returns an Optional that is present on the wire as an explicit null.
func Null[T any]() Optional[T] {
	return Optional[T]{present: true, null: true}
}

// None returns an absent Optional. Equivalent to the zero value.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Present reports whether the field appeared on the wire, including as
// an explicit null.
func (o Optional[T]) Present() bool {
	return o.present
}

// IsNull reports whether the field was an explicit null.
func (o Optional[T]) IsNull() bool {
	return o.present && o.null
}

// Get returns the held value and whether a non-null value is present.
func (o Optional[T]) Get() (T, bool) {
	if !o.present || o.null {
		var zero T
		return zero, false
	}
	return o.value, true
}

// IsZero reports absence, letting "omitzero" struct tags drop the field
// from marshaled output.
func (o Optional[T]) IsZero() bool {
	return !o.present
}

// MarshalJSON emits the held value, or null when explicitly null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.present || o.null {
		return jsonNull, nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON is only invoked when the field exists on the wire, so
// anything it sees is present; "null" marks the explicit-null state.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.present = true
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		o.null = true
		var zero T
		o.value = zero
		return nil
	}
	o.null = false
	return json.Unmarshal(data, &o.value)
}
