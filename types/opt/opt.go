// Copyright (c) The lockkit Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package opt defines an optional value type: a value that is either
// present or absent, with the discriminant carried alongside the
// payload instead of in a sentinel or a second return value.
//
// Every operation in this module whose "no value" outcome is an
// expected alternative rather than an error reports it through
// [Value]; see the sibling package types/result for the
// success-or-error counterpart.
package opt

import (
	"fmt"
	"reflect"

	jsonv2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Value is an optional value of type T.
//
// The zero Value is absent. A zero Value is marshaled as JSON null,
// and unmarshaling null produces an absent Value.
type Value[T any] struct {
	value T
	set   bool
}

// equatable reports whether the receiver and the other value are equal.
// If the type parameter T in Value[T] implements an Equal method, it is
// used instead of the == operator for comparing values.
type equatable[T any] interface {
	Equal(other T) bool
}

// ValueOf returns a present Value containing v.
func ValueOf[T any](v T) Value[T] {
	return Value[T]{value: v, set: true}
}

// None returns an absent Value.
//
// It is equivalent to the zero Value and exists so call sites can
// state absence explicitly.
func None[T any]() Value[T] {
	return Value[T]{}
}

// String implements [fmt.Stringer].
func (o Value[T]) String() string {
	if !o.set {
		return fmt.Sprintf("(none[%T])", o.value)
	}
	return fmt.Sprint(o.value)
}

// Set assigns the value v to o, making it present.
func (o *Value[T]) Set(v T) {
	*o = ValueOf(v)
}

// Clear resets o to the absent state.
func (o *Value[T]) Clear() {
	*o = Value[T]{}
}

// IsSet reports whether o holds a value.
func (o Value[T]) IsSet() bool {
	return o.set
}

// Get returns the value of o.
// If o is absent, the zero value of T is returned; callers that have
// not already checked IsSet should use GetOk instead.
func (o Value[T]) Get() T {
	return o.value
}

// GetOr returns the value of o, or def if o is absent.
func (o Value[T]) GetOr(def T) T {
	if o.set {
		return o.value
	}
	return def
}

// GetOk returns the value of o and whether it is present.
func (o Value[T]) GetOk() (v T, ok bool) {
	return o.value, o.set
}

// Equal reports whether o equals v.
// Two optional values are equal if both are absent, or if both are
// present and their values are equal. If T implements an Equal(T) bool
// method it is used instead of ==. If T is not comparable, Equal
// returns false.
func (o Value[T]) Equal(v Value[T]) bool {
	if o.set != v.set {
		return false
	}
	if !o.set {
		return true
	}
	ov := any(o.value)
	if eq, ok := ov.(equatable[T]); ok {
		return eq.Equal(v.value)
	}
	if reflect.TypeFor[T]().Comparable() {
		return ov == any(v.value)
	}
	return false
}

// MarshalJSONTo implements [jsonv2.MarshalerTo].
func (o Value[T]) MarshalJSONTo(enc *jsontext.Encoder) error {
	if !o.set {
		return enc.WriteToken(jsontext.Null)
	}
	return jsonv2.MarshalEncode(enc, &o.value)
}

// UnmarshalJSONFrom implements [jsonv2.UnmarshalerFrom].
func (o *Value[T]) UnmarshalJSONFrom(dec *jsontext.Decoder) error {
	if dec.PeekKind() == 'n' {
		*o = Value[T]{}
		_, err := dec.ReadToken() // read null
		return err
	}
	o.set = true
	return jsonv2.UnmarshalDecode(dec, &o.value)
}

// MarshalJSON implements [json.Marshaler].
func (o Value[T]) MarshalJSON() ([]byte, error) {
	return jsonv2.Marshal(o) // uses MarshalJSONTo
}

// UnmarshalJSON implements [json.Unmarshaler].
func (o *Value[T]) UnmarshalJSON(b []byte) error {
	return jsonv2.Unmarshal(b, o) // uses UnmarshalJSONFrom
}
