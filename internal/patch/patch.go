// Package patch provides a tri-state JSON field for partial updates.
//
// A PUT body that omits a field must leave it untouched, while a body that
// sends an explicit null must clear it. A plain pointer cannot represent
// both, so update payloads use Field, which records whether the key was
// present in the JSON at all.
package patch

import "encoding/json"

// Field is a JSON value that is either absent, explicitly null, or set.
// The zero value is absent.
type Field[T any] struct {
	present bool
	value   *T
}

// UnmarshalJSON implements json.Unmarshaler. It is only invoked when the
// key is present in the payload, which is what distinguishes absent from
// null.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.present = true
	if string(data) == "null" {
		f.value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.value = &v
	return nil
}

// Present reports whether the key appeared in the payload.
func (f Field[T]) Present() bool { return f.present }

// Null reports whether the key was set to an explicit null.
func (f Field[T]) Null() bool { return f.present && f.value == nil }

// Value returns the decoded value and whether one was set (present and
// non-null).
func (f Field[T]) Value() (T, bool) {
	if f.value == nil {
		var zero T
		return zero, false
	}
	return *f.value, true
}

// Ptr returns the decoded value as a pointer, nil when absent or null.
func (f Field[T]) Ptr() *T { return f.value }

// Set constructs a present field holding v.
func Set[T any](v T) Field[T] {
	return Field[T]{present: true, value: &v}
}

// Null constructs a present field holding an explicit null.
func Null[T any]() Field[T] {
	return Field[T]{present: true}
}
