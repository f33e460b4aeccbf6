// Copyright (c) The lockkit Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package result defines a fallible value type: a value that is either
// a success payload or an error payload, with the discriminant carried
// alongside the payloads.
//
// It differs from the (T, error) convention in that the error variant
// is an arbitrary payload type rather than an error interface value;
// the lock primitives in this module use that to return a still-usable
// guard as the error payload of an acquisition on a poisoned mutex.
package result

import (
	"fmt"
	"reflect"

	jsonv2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Result is a value that is either a success of type T or an error of
// type E.
//
// The zero Result is the error variant holding the zero value of E, so
// a Result that was never constructed is never mistaken for success.
type Result[T, E any] struct {
	v  T
	e  E
	ok bool
}

// equatable reports whether the receiver and the other value are equal.
type equatable[T any] interface {
	Equal(other T) bool
}

// Ok returns a success Result containing v.
func Ok[T, E any](v T) Result[T, E] {
	return Result[T, E]{v: v, ok: true}
}

// Err returns an error Result containing e.
func Err[T, E any](e E) Result[T, E] {
	return Result[T, E]{e: e}
}

// IsOk reports whether r is the success variant.
func (r Result[T, E]) IsOk() bool {
	return r.ok
}

// Value returns r's success payload.
// If r is the error variant, the zero value of T is returned; callers
// that have not already checked IsOk should use ValueOk instead.
func (r Result[T, E]) Value() T {
	return r.v
}

// Err returns r's error payload, or the zero value of E if r is the
// success variant.
func (r Result[T, E]) Err() E {
	return r.e
}

// ValueOk returns r's success payload and whether r is the success
// variant.
func (r Result[T, E]) ValueOk() (v T, ok bool) {
	return r.v, r.ok
}

// ErrOk returns r's error payload and whether r is the error variant.
func (r Result[T, E]) ErrOk() (e E, ok bool) {
	return r.e, !r.ok
}

// Either returns the payload of a Result whose variants carry the same
// type, regardless of which variant is in use.
//
// This is the shape of a lock acquisition on a possibly-poisoned
// mutex: both variants carry the guard, and callers that choose to
// proceed despite poisoning collapse the result with Either.
func Either[T any](r Result[T, T]) T {
	if r.ok {
		return r.v
	}
	return r.e
}

// String implements [fmt.Stringer].
func (r Result[T, E]) String() string {
	if r.ok {
		return fmt.Sprintf("ok(%v)", r.v)
	}
	return fmt.Sprintf("err(%v)", r.e)
}

// Equal reports whether r equals v.
// Two results are equal if they are the same variant and the payloads
// of that variant are equal. Payload types that implement an
// Equal(T) bool method are compared with it; otherwise comparable
// payloads are compared with ==, and non-comparable payloads are never
// equal.
func (r Result[T, E]) Equal(v Result[T, E]) bool {
	if r.ok != v.ok {
		return false
	}
	if r.ok {
		return payloadEqual(r.v, v.v)
	}
	return payloadEqual(r.e, v.e)
}

func payloadEqual[T any](a, b T) bool {
	av := any(a)
	if eq, ok := av.(equatable[T]); ok {
		return eq.Equal(b)
	}
	if reflect.TypeFor[T]().Comparable() {
		return av == any(b)
	}
	return false
}

// jsonResult is the wire form of a Result: exactly one of the two
// fields is present.
type jsonResult[T, E any] struct {
	OK  *T `json:"ok,omitzero"`
	Err *E `json:"err,omitzero"`
}

// MarshalJSONTo implements [jsonv2.MarshalerTo].
// A success marshals as {"ok": v}, an error as {"err": e}.
func (r Result[T, E]) MarshalJSONTo(enc *jsontext.Encoder) error {
	var j jsonResult[T, E]
	if r.ok {
		j.OK = &r.v
	} else {
		j.Err = &r.e
	}
	return jsonv2.MarshalEncode(enc, &j)
}

// UnmarshalJSONFrom implements [jsonv2.UnmarshalerFrom].
func (r *Result[T, E]) UnmarshalJSONFrom(dec *jsontext.Decoder) error {
	var j jsonResult[T, E]
	if err := jsonv2.UnmarshalDecode(dec, &j); err != nil {
		return err
	}
	switch {
	case j.OK != nil && j.Err != nil:
		return fmt.Errorf("result: both %q and %q present", "ok", "err")
	case j.OK != nil:
		*r = Ok[T, E](*j.OK)
	case j.Err != nil:
		*r = Err[T](*j.Err)
	default:
		return fmt.Errorf("result: neither %q nor %q present", "ok", "err")
	}
	return nil
}

// MarshalJSON implements [json.Marshaler].
func (r Result[T, E]) MarshalJSON() ([]byte, error) {
	return jsonv2.Marshal(r) // uses MarshalJSONTo
}

// UnmarshalJSON implements [json.Unmarshaler].
func (r *Result[T, E]) UnmarshalJSON(b []byte) error {
	return jsonv2.Unmarshal(b, r) // uses UnmarshalJSONFrom
}
