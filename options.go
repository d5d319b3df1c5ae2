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

package hashtable

// option provide an interface to do work on HashTable while it is being
// created.
type option interface {
	apply(t *HashTable)
}

// Allocator specifies an interface for allocating and releasing the bucket
// arrays used by a HashTable. The default allocator utilizes Go's builtin
// make() and allows the GC to reclaim memory.
//
// A HashTable allocates one bucket array at construction and one per growth.
// The array being replaced by a growth is freed once its entries have been
// rehashed. If the allocator is manually managing memory then
// HashTable.Close must be called in order to ensure the final array is
// freed.
type Allocator interface {
	// AllocBuckets should return a slice equivalent to make([]Bucket, n).
	AllocBuckets(n int) []Bucket

	// FreeBuckets can optionally release the memory associated with the
	// supplied slice that is guaranteed to have been allocated by
	// AllocBuckets. The table no longer references it.
	FreeBuckets(v []Bucket)
}

type defaultAllocator struct{}

func (defaultAllocator) AllocBuckets(n int) []Bucket {
	return make([]Bucket, n)
}

func (defaultAllocator) FreeBuckets(v []Bucket) {
}

type allocatorOption struct {
	allocator Allocator
}

func (op allocatorOption) apply(t *HashTable) {
	t.allocator = op.allocator
}

// WithAllocator is an option for specifying the Allocator to use for a
// HashTable.
func WithAllocator(allocator Allocator) option {
	return allocatorOption{allocator}
}
