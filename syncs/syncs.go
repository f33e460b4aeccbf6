// Copyright (c) The lockkit Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package syncs contains synchronization primitives built around
// guarded values: a mutex that owns the value it protects and reports
// acquisition outcomes through the module's optional and result
// protocols, plus small supporting types.
package syncs

import "sync/atomic"

// ClosedChan returns a channel that's already closed.
func ClosedChan() <-chan struct{} { return closedChan }

var closedChan = initClosedChan()

func initClosedChan() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

// WaitGroupChan is like a sync.WaitGroup, but has a chan that closes
// on completion that you can wait on. (Thus, you can only use the
// value once)
// Also, its zero value is not usable. Use the constructor.
type WaitGroupChan struct {
	n    atomic.Int64
	done chan struct{} // closed on transition to zero
}

// NewWaitGroupChan returns a new single-use WaitGroupChan.
func NewWaitGroupChan() *WaitGroupChan {
	return &WaitGroupChan{done: make(chan struct{})}
}

// DoneChan returns a channel that's closed on completion.
func (c *WaitGroupChan) DoneChan() <-chan struct{} { return c.done }

// Add adds delta, which may be negative, to the WaitGroupChan
// counter. If the counter becomes zero, all goroutines blocked on
// Wait or the Done chan are released.
//
// Note that calls with a positive delta that occur when the counter
// is zero must happen before a Wait. Typically this means the calls
// to Add should execute before the statement creating the goroutine
// or other event to be waited for.
func (c *WaitGroupChan) Add(delta int) {
	if c.n.Add(int64(delta)) == 0 {
		close(c.done)
	}
}

// Decr decrements the WaitGroup counter by one.
//
// (It is like sync.WaitGroup's Done method, but we don't use Done in
// this type, because it's ambiguous between Context.Done and
// WaitGroup.Done. So we use DoneChan and Decr instead.)
func (c *WaitGroupChan) Decr() {
	c.Add(-1)
}

// Wait blocks until the WaitGroupChan counter is zero.
func (c *WaitGroupChan) Wait() { <-c.done }
