// Copyright (c) The lockkit Authors
// SPDX-License-Identifier: BSD-3-Clause

package syncs

import (
	"golang.org/x/sys/cpu"
)

// ShardedMap is a synchronized map[K]V, internally sharded by a
// user-defined K-sharding function, with each shard's map owned by a
// [Mutex].
//
// The zero value is not safe for use; use NewShardedMap.
type ShardedMap[K comparable, V any] struct {
	shardFunc func(K) int
	shards    []mapShard[K, V]
}

type mapShard[K comparable, V any] struct {
	m *Mutex[map[K]V]
	_ cpu.CacheLinePad // avoid false sharing of neighboring shards' mutexes
}

// NewShardedMap returns a new ShardedMap with the given number of shards and
// sharding function.
//
// The shard func must return an integer in the range [0, shards) purely
// deterministically based on the provided K.
func NewShardedMap[K comparable, V any](shards int, shard func(K) int) *ShardedMap[K, V] {
	m := &ShardedMap[K, V]{
		shardFunc: shard,
		shards:    make([]mapShard[K, V], shards),
	}
	for i := range m.shards {
		m.shards[i].m = NewMutex(make(map[K]V))
	}
	return m
}

func (m *ShardedMap[K, V]) shard(key K) *Mutex[map[K]V] {
	return m.shards[m.shardFunc(key)].m
}

// GetOk returns m[key] and whether it was present.
func (m *ShardedMap[K, V]) GetOk(key K) (value V, ok bool) {
	m.shard(key).WithLock(func(mp *map[K]V) {
		value, ok = (*mp)[key]
	})
	return
}

// Get returns m[key] or the zero value of V if key is not present.
func (m *ShardedMap[K, V]) Get(key K) (value V) {
	value, _ = m.GetOk(key)
	return
}

// Mutate atomically mutates m[k] by calling mutator.
//
// The mutator function is called with the old value (or its zero value) and
// whether it existed in the map and it returns the new value and whether it
// should be set in the map (true) or deleted from the map (false).
//
// It returns the change in size of the map as a result of the mutation, one of
// -1 (delete), 0 (change), or 1 (addition).
func (m *ShardedMap[K, V]) Mutate(key K, mutator func(oldValue V, oldValueExisted bool) (newValue V, keep bool)) (sizeDelta int) {
	m.shard(key).WithLock(func(mp *map[K]V) {
		oldV, oldOK := (*mp)[key]
		newV, newOK := mutator(oldV, oldOK)
		switch {
		case newOK && oldOK:
			(*mp)[key] = newV
		case newOK:
			(*mp)[key] = newV
			sizeDelta = 1
		case oldOK:
			delete(*mp, key)
			sizeDelta = -1
		}
	})
	return
}

// Set sets m[key] = value.
//
// It reports whether the map grew (that is, whether key was not already
// present in m).
func (m *ShardedMap[K, V]) Set(key K, value V) (grew bool) {
	m.shard(key).WithLock(func(mp *map[K]V) {
		s0 := len(*mp)
		(*mp)[key] = value
		grew = len(*mp) > s0
	})
	return
}

// Delete removes key from m.
//
// It reports whether the map size shrunk (that is, whether key was present in
// the map).
func (m *ShardedMap[K, V]) Delete(key K) (shrunk bool) {
	m.shard(key).WithLock(func(mp *map[K]V) {
		s0 := len(*mp)
		delete(*mp, key)
		shrunk = len(*mp) < s0
	})
	return
}

// Contains reports whether m contains key.
func (m *ShardedMap[K, V]) Contains(key K) bool {
	_, ok := m.GetOk(key)
	return ok
}

// Len returns the number of elements in m.
//
// It does so by locking shards one at a time, so it's not particularly cheap,
// nor does it give a consistent snapshot of the map. It's mostly intended for
// metrics or testing.
func (m *ShardedMap[K, V]) Len() int {
	n := 0
	for i := range m.shards {
		m.shards[i].m.WithLock(func(mp *map[K]V) {
			n += len(*mp)
		})
	}
	return n
}
