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
	"sync"

	"github.com/dolthub/swiss"
)

// History records every value that was ever published, so that readers can verify
// that they only observe published values.
type History[T comparable] struct {
	mu        sync.Mutex
	published *swiss.Map[T, uint64]
}

// NewHistory returns a History that already contains the initial value as generation zero.
func NewHistory[T comparable](initial T, capacity uint32) *History[T] {
	h := &History[T]{
		published: swiss.NewMap[T, uint64](capacity),
	}
	h.published.Put(initial, 0)
	return h
}

// Publish records that value was published as generation.
func (h *History[T]) Publish(generation uint64, value T) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.published.Put(value, generation)
}

// Generation returns the generation that published value.
func (h *History[T]) Generation(value T) (uint64, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.published.Get(value)
}

// Len returns the number of distinct published values.
func (h *History[T]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.published.Count()
}
