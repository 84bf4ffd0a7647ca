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

//go:build !race

package seqlock

import "sync/atomic"

// load makes the tentative copy of a read.
//
// The copy is a plain, non-atomic read that may race with a writer. Its result is
// only trusted after the sequence counter validates the read window.
func load[T any](src *T) T {
	// Since go compiler rearranges value copying (apparently LoadLoad barriers are not supported),
	// we have to artificially construct a LoadStore barrier using this variable.
	// https://golang.design/gossa?id=fceddb7f-ac78-11ee-ac09-0242ac16000d.
	var barrier atomic.Uint32
	value := *src

	// Explicitly forbid the compiler to move the value copying.
	barrier.Store(1)
	return value
}

// peek runs f against the shared slot inside a read window.
func peek[T, R any](src *T, f func(*T) R) R {
	var barrier atomic.Uint32
	res := f(src)
	barrier.Store(1)
	return res
}
