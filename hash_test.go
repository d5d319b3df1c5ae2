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

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashRange(t *testing.T) {
	keys := []int32{math.MinInt32, math.MinInt32 + 1, -1000, -2, -1, 0, 1, 2, 1000, math.MaxInt32}
	for _, capacity := range []int{1, 2, 3, 7, 8, 1000, math.MaxInt32} {
		for _, k := range keys {
			h := hash(k, capacity)
			require.GreaterOrEqual(t, h, 0, "key=%d capacity=%d", k, capacity)
			require.Less(t, h, capacity, "key=%d capacity=%d", k, capacity)
		}
	}
}

func TestHashDeterministic(t *testing.T) {
	for k := int32(-100); k < 100; k++ {
		require.Equal(t, hash(k, 97), hash(k, 97))
	}
	// A single bucket always maps to index 0.
	require.Equal(t, 0, hash(12345, 1))
}

func TestHashDistribution(t *testing.T) {
	// Sequential keys, the common worst case for identity-modulus hashing,
	// should spread across buckets with short chains.
	const capacity = 1024
	const count = 10 * capacity

	counts := make([]int, capacity)
	for k := int32(-count / 2); k < count/2; k++ {
		counts[hash(k, capacity)]++
	}
	var maxChain int
	for _, c := range counts {
		maxChain = max(maxChain, c)
	}
	require.Less(t, maxChain, 40)

	// Keys that are multiples of the capacity would all share a bucket under
	// a plain modulus.
	counts = make([]int, capacity)
	for i := int32(0); i < count; i++ {
		counts[hash(i*capacity, capacity)]++
	}
	maxChain = 0
	for _, c := range counts {
		maxChain = max(maxChain, c)
	}
	require.Less(t, maxChain, 40)
}
