// Copyright (c) The lockkit Authors
// SPDX-License-Identifier: BSD-3-Clause

package result

import (
	"encoding/json"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/lockkit/lockkit/util/must"
)

func TestResult(t *testing.T) {
	c := qt.New(t)

	ok := Ok[int, string](42)
	c.Check(ok.IsOk(), qt.IsTrue)
	c.Check(ok.Value(), qt.Equals, 42)
	c.Check(ok.Err(), qt.Equals, "")
	v, isOk := ok.ValueOk()
	c.Check(isOk, qt.IsTrue)
	c.Check(v, qt.Equals, 42)
	_, isErr := ok.ErrOk()
	c.Check(isErr, qt.IsFalse)

	er := Err[int]("bad")
	c.Check(er.IsOk(), qt.IsFalse)
	c.Check(er.Value(), qt.Equals, 0)
	c.Check(er.Err(), qt.Equals, "bad")
	e, isErr := er.ErrOk()
	c.Check(isErr, qt.IsTrue)
	c.Check(e, qt.Equals, "bad")

	// The zero Result is the error variant.
	var zero Result[int, string]
	c.Check(zero.IsOk(), qt.IsFalse)
	c.Check(zero.Err(), qt.Equals, "")
}

func TestEither(t *testing.T) {
	c := qt.New(t)
	c.Check(Either(Ok[int, int](1)), qt.Equals, 1)
	c.Check(Either(Err[int](2)), qt.Equals, 2)
}

func TestString(t *testing.T) {
	c := qt.New(t)
	c.Check(Ok[int, string](1).String(), qt.Equals, "ok(1)")
	c.Check(Err[int]("bad").String(), qt.Equals, "err(bad)")
}

func TestEqual(t *testing.T) {
	c := qt.New(t)

	c.Check(Ok[int, string](1).Equal(Ok[int, string](1)), qt.IsTrue)
	c.Check(Ok[int, string](1).Equal(Ok[int, string](2)), qt.IsFalse)
	c.Check(Err[int]("a").Equal(Err[int]("a")), qt.IsTrue)
	c.Check(Err[int]("a").Equal(Err[int]("b")), qt.IsFalse)
	c.Check(Ok[int, string](0).Equal(Err[int]("")), qt.IsFalse)

	// Non-comparable payloads are never equal.
	c.Check(Ok[[]int, string]([]int{1}).Equal(Ok[[]int, string]([]int{1})), qt.IsFalse)
}

func TestJSON(t *testing.T) {
	c := qt.New(t)

	b := must.Get(json.Marshal(Ok[int, string](42)))
	c.Check(string(b), qt.Equals, `{"ok":42}`)

	b = must.Get(json.Marshal(Err[int]("bad")))
	c.Check(string(b), qt.Equals, `{"err":"bad"}`)

	var r Result[int, string]
	must.Do(json.Unmarshal([]byte(`{"ok":7}`), &r))
	c.Check(r.IsOk(), qt.IsTrue)
	c.Check(r.Value(), qt.Equals, 7)

	must.Do(json.Unmarshal([]byte(`{"err":"late"}`), &r))
	c.Check(r.IsOk(), qt.IsFalse)
	c.Check(r.Err(), qt.Equals, "late")

	c.Check(json.Unmarshal([]byte(`{}`), &r), qt.IsNotNil)
	c.Check(json.Unmarshal([]byte(`{"ok":1,"err":"x"}`), &r), qt.IsNotNil)
}
