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

// Package seqcount implements the sequence counter of a seqlock.
//
// The counter is even while the protected data is stable and odd while a writer
// is inside its critical section. Every completed write advances it by two, so
// counter/2 is the number of published generations.
//
// All operations go through sync/atomic. Go atomics are sequentially consistent,
// which is at least as strong as the acquire/release pairing the protocol needs:
// writes made before EndWrite are visible to any goroutine whose Load observes
// the value produced by EndWrite.
package seqcount

import (
	"sync/atomic"

	"github.com/maypok86/seqlock/internal/xruntime"
)

// Counter is a sequence counter. The zero value is a stable counter at generation zero.
//
// Only one writer may be between BeginWrite and EndWrite at a time. Counter doesn't
// enforce that, callers have to serialize writers themselves.
type Counter struct {
	seq     atomic.Uint64
	padding [xruntime.CacheLineSize - 8]byte
}

// InProgress reports whether seq was observed while a write was in progress.
func InProgress(seq uint64) bool {
	return seq&1 != 0
}

// Generation returns the number of writes that were completed when seq was observed.
func Generation(seq uint64) uint64 {
	return seq >> 1
}

// Load returns the current counter value.
func (c *Counter) Load() uint64 {
	return c.seq.Load()
}

// BeginWrite marks the start of a write and returns the new (odd) counter value.
//
// Readers that load the returned value will not copy the data, and readers that
// started before will fail validation.
func (c *Counter) BeginWrite() uint64 {
	return c.seq.Add(1)
}

// EndWrite marks the end of a write and publishes the new generation.
func (c *Counter) EndWrite() {
	c.seq.Add(1)
}

// Validate reports whether a read that started at seq saw a stable, unchanged generation.
func (c *Counter) Validate(seq uint64) bool {
	return !InProgress(seq) && c.seq.Load() == seq
}
