// Copyright 2024 The Cockroach Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// package hashtable is a Go implementation of a separately chained hash
// table mapping int32 keys to string values. See also:
// https://en.wikipedia.org/wiki/Hash_table#Separate_chaining.
//
// # Separate Chaining
//
// The table is an array of buckets. Each bucket is a chain of entries, kept
// in insertion order, whose keys all hash to the bucket's index. A key is
// located by hashing it to a bucket index and walking that bucket's chain.
// Collisions simply lengthen a chain; there is no probing and no tombstones,
// so deletion removes the entry from its chain outright.
//
// # Growth
//
// The table is created with an explicit bucket count and a load factor in
// (0, 1]. At the end of every Put, if the number of tracked keys divided by
// the bucket count has reached the load factor, the bucket array is replaced
// by one growthCoefficient times larger and every entry is rehashed into it.
// Growth is a full O(n) rehash performed inline by the triggering Put, and a
// Put grows the table at most once. When capacity*loadFactor < 1 one step may
// leave the ratio at or above the load factor; the next Put grows again. The
// bucket array never shrinks.
//
// # Key Accounting
//
// The key counter reported by Len is bumped on every Put, including a Put
// that overwrites an existing key, and is never decremented by Remove. Len
// therefore counts Put calls rather than live keys, and it is this counter
// that drives growth. Keys and Values scan the buckets and always reflect
// the live entries.
package hashtable

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	debug = false

	growthCoefficient = 2
)

// ErrInvalidArgument is returned by New when the capacity or load factor is
// out of range.
var ErrInvalidArgument = errors.New("hashtable: invalid argument")

// Entry holds a key and value.
type Entry struct {
	key   int32
	value string
}

// Bucket is a chain of entries sharing a hash index, in insertion order.
type Bucket struct {
	entries []Entry
}

// find returns the position of key within the chain, or -1.
func (b *Bucket) find(key int32) int {
	for i := range b.entries {
		if b.entries[i].key == key {
			return i
		}
	}
	return -1
}

// HashTable is a map from int32 keys to string values with Put, Search,
// Remove, and All operations. Collisions are resolved by chaining and the
// bucket array grows by growthCoefficient whenever the tracked key count
// reaches the configured load factor.
//
// A HashTable is NOT goroutine-safe. Callers sharing a table across
// goroutines must guard every operation with their own lock.
type HashTable struct {
	// The allocator to use for the bucket slice.
	allocator Allocator
	// buckets is capacity in length and is only replaced wholesale, by grow
	// and Close.
	buckets []Bucket
	// The number of Put calls observed. See the package comment for why
	// this is not the number of live keys.
	numKeys int
	// loadFactor is the numKeys/capacity ratio at which the table grows.
	// Immutable after construction.
	loadFactor float64
}

// New constructs a new HashTable with capacity empty buckets that grows once
// the tracked key count divided by the bucket count reaches loadFactor.
// capacity must be positive and loadFactor must lie in (0, 1]; otherwise an
// error wrapping ErrInvalidArgument is returned and no table is created.
func New(capacity int, loadFactor float64, options ...option) (*HashTable, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be greater than zero, got %d",
			ErrInvalidArgument, capacity)
	}
	// Written as a negated range check so that NaN is rejected as well.
	if !(loadFactor > 0 && loadFactor <= 1) {
		return nil, fmt.Errorf("%w: load factor must be in (0, 1], got %v",
			ErrInvalidArgument, loadFactor)
	}

	t := &HashTable{
		allocator:  defaultAllocator{},
		loadFactor: loadFactor,
	}
	for _, op := range options {
		op.apply(t)
	}

	t.buckets = t.allocator.AllocBuckets(capacity)
	t.checkInvariants()
	return t, nil
}

// Close closes the table, releasing the bucket array back to its configured
// allocator. It is unnecessary to close a table using the default allocator.
// It is invalid to use a HashTable after it has been closed, though Close
// itself is idempotent.
func (t *HashTable) Close() {
	if t.buckets != nil {
		t.allocator.FreeBuckets(t.buckets)
		t.buckets = nil
	}
}

// Search retrieves the value for the specified key, returning ok=false if
// the key is not present.
func (t *HashTable) Search(key int32) (value string, ok bool) {
	// An empty table never hashes.
	if t.numKeys == 0 {
		return "", false
	}

	b := &t.buckets[hash(key, len(t.buckets))]
	if i := b.find(key); i >= 0 {
		return b.entries[i].value, true
	}
	return "", false
}

// ContainsKey reports whether key is present. It is defined in terms of
// Search so the two can never disagree.
func (t *HashTable) ContainsKey(key int32) bool {
	_, ok := t.Search(key)
	return ok
}

// Put inserts an entry into the table, overwriting the existing value if an
// entry with the same key is already present. The key counter is bumped on
// every call, including overwrites, and the table grows before Put returns
// if the counter has reached the load factor.
func (t *HashTable) Put(key int32, value string) {
	t.numKeys++

	idx := hash(key, len(t.buckets))
	b := &t.buckets[idx]
	if i := b.find(key); i >= 0 {
		if debug {
			fmt.Printf("put(updating): bucket=%d key=%d\n", idx, key)
		}
		b.entries[i].value = value
	} else {
		if debug {
			fmt.Printf("put(inserting): bucket=%d key=%d chain=%d\n", idx, key, len(b.entries))
		}
		b.entries = append(b.entries, Entry{key: key, value: value})
	}

	if float64(t.numKeys)/float64(len(t.buckets)) >= t.loadFactor {
		t.grow()
	}
	t.checkInvariants()
}

// Remove deletes the entry for key and returns its value, returning ok=false
// if the key is not present. The key counter is left untouched.
func (t *HashTable) Remove(key int32) (value string, ok bool) {
	idx := hash(key, len(t.buckets))
	b := &t.buckets[idx]
	i := b.find(key)
	if i < 0 {
		return "", false
	}

	value = b.entries[i].value
	// The remaining chain stays in insertion order.
	b.entries = slices.Delete(b.entries, i, i+1)
	if debug {
		fmt.Printf("remove: bucket=%d key=%d chain=%d\n", idx, key, len(b.entries))
	}
	t.checkInvariants()
	return value, true
}

// grow replaces the bucket array with one growthCoefficient times larger,
// rehashing every entry into it, and discards the old backing array.
// Entries are visited in bucket-then-chain order, so entries that share a
// new bucket keep their relative order.
func (t *HashTable) grow() {
	oldBuckets := t.buckets
	newCapacity := len(oldBuckets) * growthCoefficient
	if debug {
		fmt.Printf("grow: capacity=%d->%d keys=%d\n", len(oldBuckets), newCapacity, t.numKeys)
	}

	newBuckets := t.allocator.AllocBuckets(newCapacity)
	for i := range oldBuckets {
		for _, e := range oldBuckets[i].entries {
			nb := &newBuckets[hash(e.key, newCapacity)]
			nb.entries = append(nb.entries, e)
		}
	}

	t.buckets = newBuckets
	t.allocator.FreeBuckets(oldBuckets)
}

// All calls yield sequentially for each key and value present in the table,
// in bucket-then-chain order. If yield returns false, iteration stops. The
// table can be mutated during iteration, though there is no guarantee that
// the mutations will be visible to the iteration.
func (t *HashTable) All(yield func(key int32, value string) bool) {
	// Snapshot the bucket slice so that iteration remains valid if the table
	// grows during iteration. grow never modifies the old chains.
	buckets := t.buckets
	for i := range buckets {
		for _, e := range buckets[i].entries {
			if !yield(e.key, e.value) {
				return
			}
		}
	}
}

// Len returns the tracked key count: the number of Put calls so far.
func (t *HashTable) Len() int {
	return t.numKeys
}

// Empty reports whether Len is zero.
func (t *HashTable) Empty() bool {
	return t.Len() == 0
}

// Capacity returns the current number of buckets.
func (t *HashTable) Capacity() int {
	return len(t.buckets)
}

// LoadFactor returns the growth threshold the table was created with.
func (t *HashTable) LoadFactor() float64 {
	return t.loadFactor
}

// Keys returns the distinct keys currently stored, found by scanning every
// bucket. Unlike Len, this is always the true number of live keys. The order
// is unspecified.
func (t *HashTable) Keys() []int32 {
	seen := make(map[int32]struct{})
	var keys []int32
	t.All(func(k int32, _ string) bool {
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
		return true
	})
	return keys
}

// Values returns every stored value in bucket-then-insertion order. Values
// may repeat.
func (t *HashTable) Values() []string {
	var values []string
	t.All(func(_ int32, v string) bool {
		values = append(values, v)
		return true
	})
	return values
}

func (t *HashTable) checkInvariants() {
	if invariants {
		t.verify()
	}
}

// verify panics if any entry lives outside its home bucket or if a key is
// stored more than once.
func (t *HashTable) verify() {
	if len(t.buckets) == 0 {
		panic("invariant failed: table has no buckets")
	}
	seen := make(map[int32]int)
	for i := range t.buckets {
		for _, e := range t.buckets[i].entries {
			if h := hash(e.key, len(t.buckets)); h != i {
				panic(fmt.Sprintf("invariant failed: key %d in bucket %d, expected %d\n%s",
					e.key, i, h, t.debugString()))
			}
			if j, ok := seen[e.key]; ok {
				panic(fmt.Sprintf("invariant failed: key %d in buckets %d and %d\n%s",
					e.key, j, i, t.debugString()))
			}
			seen[e.key] = i
		}
	}
}

// String returns a rendering of the non-empty buckets and their chains,
// intended for debugging.
func (t *HashTable) String() string {
	return t.debugString()
}

func (t *HashTable) debugString() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "capacity=%d  keys=%d  load-factor=%v\n",
		len(t.buckets), t.numKeys, t.loadFactor)
	for i := range t.buckets {
		entries := t.buckets[i].entries
		if len(entries) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "  %4d:", i)
		for _, e := range entries {
			fmt.Fprintf(&buf, " %d=%q", e.key, e.value)
		}
		buf.WriteString("\n")
	}
	return buf.String()
}
