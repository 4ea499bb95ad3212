package content

import (
	"encoding/json"
	"strings"
)

// Optional holds a value that is either Present or Absent.
// The zero value is Absent.
type Optional[T any] struct {
	value T
	ok    bool
}

// Present wraps a value
func Present[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

// Absent returns an empty Optional
func Absent[T any]() Optional[T] {
	return Optional[T]{}
}

// NonEmpty trims s and returns it as Present, or Absent when nothing is left.
func NonEmpty(s string) Optional[string] {
	s = strings.TrimSpace(s)
	if s == "" {
		return Absent[string]()
	}
	return Present(s)
}

// IsPresent reports whether a value is held
func (o Optional[T]) IsPresent() bool {
	return o.ok
}

// Value returns the held value, or the zero value when Absent
func (o Optional[T]) Value() T {
	return o.value
}

// Get returns the value and whether it is present
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

// IsZero reports whether the Optional is Absent. It lets `omitzero` drop
// absent values from JSON output.
func (o Optional[T]) IsZero() bool {
	return !o.ok
}

// MarshalJSON encodes the held value, or null when Absent
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}
