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

//go:build race

package seqlock

import (
	"unsafe"
)

// The race detector rightfully reports the tentative copy of a read as a data race,
// even though a racy copy is always thrown away. runtime.memmove isn't instrumented,
// so it is used to copy the value instead.

//go:noescape
//go:linkname memmove runtime.memmove
func memmove(to, from unsafe.Pointer, n uintptr)

func load[T any](src *T) T {
	var value T
	memmove(unsafe.Pointer(&value), unsafe.Pointer(src), unsafe.Sizeof(value))
	return value
}

// peek gives f a private copy, so the race detector doesn't see f reading the shared slot.
func peek[T, R any](src *T, f func(*T) R) R {
	value := load(src)
	return f(&value)
}
