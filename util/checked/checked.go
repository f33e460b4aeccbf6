// Copyright (c) The lockkit Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package checked implements integer arithmetic that detects overflow
// instead of wrapping.
//
// Each operation computes the mathematical result and reports, through
// [opt.Value], whether it is representable in the operand type: a
// present value carries the exact result, an absent value means the
// operation overflowed. Division by zero and shift amounts at or above
// the operand's bit width are reported as absent as well.
//
// The functions are generic over all fixed-width and pointer-width
// integer types; they are pure and allocation-free.
package checked

import (
	"unsafe"

	"golang.org/x/exp/constraints"

	"github.com/lockkit/lockkit/types/opt"
)

// signed reports whether T is a signed integer type.
func signed[T constraints.Integer]() bool {
	return ^T(0) < 0
}

// bitSize returns the width of T in bits.
func bitSize[T constraints.Integer]() uint {
	var z T
	return uint(unsafe.Sizeof(z)) * 8
}

// minVal returns the minimum representable value of T.
func minVal[T constraints.Integer]() T {
	if !signed[T]() {
		return 0
	}
	return ^T(0) << (bitSize[T]() - 1)
}

// Add returns x + y, or an absent value if the sum overflows T.
func Add[T constraints.Integer](x, y T) opt.Value[T] {
	s := x + y
	if (y > 0 && s < x) || (y < 0 && s > x) {
		return opt.None[T]()
	}
	return opt.ValueOf(s)
}

// Sub returns x - y, or an absent value if the difference overflows T.
func Sub[T constraints.Integer](x, y T) opt.Value[T] {
	d := x - y
	if (y > 0 && d > x) || (y < 0 && d < x) {
		return opt.None[T]()
	}
	return opt.ValueOf(d)
}

// Mul returns x * y, or an absent value if the product overflows T.
func Mul[T constraints.Integer](x, y T) opt.Value[T] {
	if x == 0 || y == 0 {
		return opt.ValueOf[T](0)
	}
	if signed[T]() && y == ^T(0) {
		// x * -1: representable unless x is the minimum value, and
		// the quotient check below cannot be trusted for y == -1.
		if x == minVal[T]() {
			return opt.None[T]()
		}
		return opt.ValueOf(-x)
	}
	p := x * y
	if p/y != x {
		return opt.None[T]()
	}
	return opt.ValueOf(p)
}

// Div returns x / y. It is absent if y is zero, or if the quotient is
// not representable (minimum signed value divided by -1).
func Div[T constraints.Integer](x, y T) opt.Value[T] {
	if y == 0 {
		return opt.None[T]()
	}
	if signed[T]() && y == ^T(0) && x == minVal[T]() {
		return opt.None[T]()
	}
	return opt.ValueOf(x / y)
}

// Rem returns x % y. It is absent under the same conditions as [Div].
func Rem[T constraints.Integer](x, y T) opt.Value[T] {
	if y == 0 {
		return opt.None[T]()
	}
	if signed[T]() && y == ^T(0) && x == minVal[T]() {
		return opt.None[T]()
	}
	return opt.ValueOf(x % y)
}

// Neg returns -x. For signed types it is absent only for the minimum
// value, whose negation is not representable. For unsigned types it is
// present only for zero.
func Neg[T constraints.Integer](x T) opt.Value[T] {
	if !signed[T]() {
		if x == 0 {
			return opt.ValueOf(x)
		}
		return opt.None[T]()
	}
	if x == minVal[T]() {
		return opt.None[T]()
	}
	return opt.ValueOf(-x)
}

// Shl returns x << shift, or an absent value if shift is at or above
// T's bit width.
func Shl[T constraints.Integer](x T, shift uint) opt.Value[T] {
	if shift >= bitSize[T]() {
		return opt.None[T]()
	}
	return opt.ValueOf(x << shift)
}

// Shr returns x >> shift, or an absent value if shift is at or above
// T's bit width. The shift is arithmetic for signed types.
func Shr[T constraints.Integer](x T, shift uint) opt.Value[T] {
	if shift >= bitSize[T]() {
		return opt.None[T]()
	}
	return opt.ValueOf(x >> shift)
}

// Inc returns x + 1, or an absent value if x is the maximum value of T.
func Inc[T constraints.Integer](x T) opt.Value[T] {
	return Add(x, 1)
}

// Dec returns x - 1, or an absent value if x is the minimum value of T.
func Dec[T constraints.Integer](x T) opt.Value[T] {
	return Sub(x, 1)
}
