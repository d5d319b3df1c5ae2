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

package hashtable_test

import (
	"errors"
	"fmt"
	"sort"

	"github.com/hashtable-go/hashtable"
)

func Example() {
	t, err := hashtable.New(4, 0.75)
	if err != nil {
		panic(err)
	}

	t.Put(1, "a")
	t.Put(2, "b")
	t.Put(3, "c")
	fmt.Println(t.Len(), t.Capacity())

	v, ok := t.Search(2)
	fmt.Println(v, ok)

	v, ok = t.Remove(2)
	fmt.Println(v, ok, t.ContainsKey(2), t.Len())

	keys := t.Keys()
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	fmt.Println(keys)
	// Output:
	// 3 8
	// b true
	// b true false 3
	// [1 3]
}

func ExampleNew_invalidArgument() {
	_, err := hashtable.New(0, 0.75)
	fmt.Println(errors.Is(err, hashtable.ErrInvalidArgument))
	fmt.Println(err)
	// Output:
	// true
	// hashtable: invalid argument: capacity must be greater than zero, got 0
}
