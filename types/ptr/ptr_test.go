// Copyright (c) The lockkit Authors
// SPDX-License-Identifier: BSD-3-Clause

package ptr

import "testing"

func TestTo(t *testing.T) {
	p := To(42)
	if p == nil {
		t.Fatal("To returned nil")
	}
	if *p != 42 {
		t.Errorf("*To(42) = %d, want 42", *p)
	}
	q := To(42)
	if p == q {
		t.Error("To returned the same pointer for two calls")
	}
}
