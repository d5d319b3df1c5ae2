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
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// hash maps key to a bucket index in [0, capacity). The key's two's
// complement bytes are hashed, and the reduction is done on the unsigned
// 64-bit digest, so negative keys can never produce a negative index. The
// hash is unseeded and therefore stable across processes. capacity must be
// positive.
func hash(key int32, capacity int) int {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(key))
	return int(xxhash.Sum64(buf[:]) % uint64(capacity))
}
