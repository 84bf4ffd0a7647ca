// Copyright (c) 2025 Alexey Mayshev and contributors. All rights reserved.
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

package torture

import (
	"time"
	"unsafe"

	"github.com/zeebo/xxh3"
)

// ArrayLen is the number of words in an Array.
const ArrayLen = 4

// Array is the value the torture test protects. Writers keep all words equal and the
// checksum up to date, so a reader that sees anything else has observed a torn write.
type Array struct {
	Words [ArrayLen]uint64
	Sum   uint64
}

// NewArray returns a consistent zero array.
func NewArray() Array {
	var a Array
	a.Sum = a.checksum()
	return a
}

func (a *Array) checksum() uint64 {
	b := unsafe.Slice((*byte)(unsafe.Pointer(&a.Words)), unsafe.Sizeof(a.Words))
	return xxh3.Hash(b)
}

// Check returns the number of inconsistencies in a, sleeping delay between words.
// A consistent array returns zero.
func (a *Array) Check(delay time.Duration) int {
	v := a.Words[0]
	n := 0
	for _, w := range a.Words[1:] {
		sleep(delay)
		if w != v {
			n++
		}
	}
	if a.Sum != a.checksum() {
		n++
	}
	return n
}

// Frob increments every word, sleeping delay after each one, and then updates the checksum.
func (a *Array) Frob(delay time.Duration) {
	for i := range a.Words {
		a.Words[i]++
		sleep(delay)
	}
	a.Sum = a.checksum()
}

func sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}
