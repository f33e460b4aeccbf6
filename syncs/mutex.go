// Copyright (c) The lockkit Authors
// SPDX-License-Identifier: BSD-3-Clause

package syncs

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/lockkit/lockkit/types/opt"
	"github.com/lockkit/lockkit/types/result"
)

// Mutex is a mutual exclusion lock that owns the value it protects.
//
// The protected value is moved in at construction and is reachable
// only through a [Guard] returned by one of the acquisition methods,
// so the type system keeps unguarded access out of reach of the
// mutex's users.
//
// A Mutex is poisoned when a holder releases it abnormally: when the
// function passed to [Mutex.WithLock] panics, or when a holder calls
// [Guard.Poison] before unlocking. Poisoning is advisory. It warns
// later acquirers that the value may have been left mid-update, but it
// never denies access: acquiring a poisoned mutex yields the error
// variant of [LockResult] carrying a guard that works like any other.
// The poisoned bit is monotonic; there is no way to clear it.
//
// The zero Mutex is not usable. Use [NewMutex].
type Mutex[T any] struct {
	// sem is the platform lock: a weighted semaphore of capacity 1.
	// It provides blocking, non-blocking, and deadline-bounded
	// acquisition in one primitive.
	sem      *semaphore.Weighted
	poisoned atomic.Bool
	value    T
}

// LockResult is the outcome of acquiring a [Mutex]: the success
// variant carries the guard of an unpoisoned mutex, the error variant
// carries the (equally live) guard of a poisoned one. Use
// [result.Either] to take the guard regardless of poisoning.
type LockResult[T any] = result.Result[*Guard[T], *Guard[T]]

// NewMutex returns an unlocked, unpoisoned Mutex protecting value.
//
// The caller must not retain any other reference to value (or to
// memory reachable from it) that it uses after this call; the mutex
// owns the value from here on.
func NewMutex[T any](value T) *Mutex[T] {
	return &Mutex[T]{
		sem:   semaphore.NewWeighted(1),
		value: value,
	}
}

// IsPoisoned reports whether m is poisoned. It never blocks and does
// not require holding the lock, so callers can decide whether to
// attempt recovery before acquiring.
func (m *Mutex[T]) IsPoisoned() bool {
	return m.poisoned.Load()
}

// lockResult wraps a fresh guard in the ok or err variant depending on
// the poisoned bit. Callers must have acquired m.sem.
func (m *Mutex[T]) lockResult() LockResult[T] {
	g := &Guard[T]{m: m}
	if m.poisoned.Load() {
		return result.Err[*Guard[T]](g)
	}
	return result.Ok[*Guard[T], *Guard[T]](g)
}

// Lock blocks until m is acquired and returns its guard.
//
// Locking a Mutex from a goroutine that already holds its guard
// deadlocks, as with [sync.Mutex]; it is not detected.
func (m *Mutex[T]) Lock() LockResult[T] {
	// Acquire cannot fail with a background context.
	_ = m.sem.Acquire(context.Background(), 1)
	return m.lockResult()
}

// TryLock attempts to acquire m without blocking. It returns an absent
// value if the lock is currently held.
func (m *Mutex[T]) TryLock() opt.Value[LockResult[T]] {
	if !m.sem.TryAcquire(1) {
		return opt.None[LockResult[T]]()
	}
	return opt.ValueOf(m.lockResult())
}

// LockContext blocks until m is acquired or ctx is done, whichever
// comes first, and returns an absent value in the latter case.
func (m *Mutex[T]) LockContext(ctx context.Context) opt.Value[LockResult[T]] {
	if err := m.sem.Acquire(ctx, 1); err != nil {
		return opt.None[LockResult[T]]()
	}
	return opt.ValueOf(m.lockResult())
}

// TimedLock blocks until m is acquired or timeout elapses, returning
// an absent value on timeout. A non-positive timeout makes it
// equivalent to [Mutex.TryLock].
func (m *Mutex[T]) TimedLock(timeout time.Duration) opt.Value[LockResult[T]] {
	if v := m.TryLock(); v.IsSet() || timeout <= 0 {
		return v
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return m.LockContext(ctx)
}

// WithLock acquires m, calls fn with the protected value, and releases
// the lock on all exit paths. If fn panics, m is poisoned before the
// panic resumes; this is the release-during-failure path that sets the
// poisoned bit.
//
// WithLock does not report prior poisoning; callers that want the
// advisory check should use [Mutex.Lock] directly.
func (m *Mutex[T]) WithLock(fn func(value *T)) {
	g := result.Either(m.Lock())
	panicked := true
	defer func() {
		if panicked {
			m.poisoned.Store(true)
		}
		g.Unlock()
	}()
	fn(&m.value)
	panicked = false
}

// AssertHeld panics if m is not currently locked.
//
// Like the classic assert-locked helpers it is a best-effort debugging
// aid: it can observe another goroutine's ownership, not prove the
// caller's.
func (m *Mutex[T]) AssertHeld() {
	if m.sem.TryAcquire(1) {
		m.sem.Release(1)
		panic("mutex is not locked")
	}
}

// Guard is proof of exclusive access to a Mutex's protected value.
//
// At most one live Guard exists per Mutex at any instant. A Guard is
// created only by a successful acquisition and stays valid until its
// Unlock; using it afterwards panics. The Mutex must outlive its
// Guard.
type Guard[T any] struct {
	m        *Mutex[T]
	released bool
}

// mutex returns the owning mutex, panicking if the guard was already
// released.
func (g *Guard[T]) mutex() *Mutex[T] {
	if g.released {
		panic("use of mutex guard after Unlock")
	}
	return g.m
}

// Get returns a copy of the protected value.
func (g *Guard[T]) Get() T {
	return g.mutex().value
}

// Set replaces the protected value with v.
func (g *Guard[T]) Set(v T) {
	g.mutex().value = v
}

// Value returns a pointer to the protected value for in-place
// mutation. The pointer must not be used after the guard is unlocked.
func (g *Guard[T]) Value() *T {
	return &g.mutex().value
}

// Poison marks the mutex poisoned while still holding it. It is the
// explicit failure flag for holders whose guard outlives the function
// frame where the failure is discovered, where no panic will reach
// [Mutex.WithLock].
func (g *Guard[T]) Poison() {
	g.mutex().poisoned.Store(true)
}

// Unlock releases the lock. It is the only way back to the unlocked
// state. Unlocking an already-released guard panics.
func (g *Guard[T]) Unlock() {
	m := g.mutex()
	g.released = true
	m.sem.Release(1)
}
