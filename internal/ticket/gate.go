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

// Package ticket implements the fair mutual exclusion used between seqlock writers.
package ticket

import (
	"sync/atomic"

	"github.com/maypok86/seqlock/backoff"
	"github.com/maypok86/seqlock/internal/xruntime"
)

// Gate is a ticket lock.
//
// Every Acquire draws the next ticket and waits until that ticket is served, so
// goroutines enter in exactly the order in which they drew their tickets and
// a waiter can never be overtaken by later arrivals.
//
// The zero value is an unlocked Gate that waits with backoff.Default.
// A Gate is not associated with a particular goroutine: one goroutine may
// Acquire it and arrange for another one to Release it.
type Gate struct {
	next    atomic.Uint64
	_       [xruntime.CacheLineSize - 8]byte
	serving atomic.Uint64
	_       [xruntime.CacheLineSize - 8]byte
	wait    backoff.Strategy
}

// SetBackoff changes the waiting strategy. A nil b means backoff.Default.
// It must be called before the Gate is used.
func (g *Gate) SetBackoff(b backoff.Strategy) {
	g.wait = b
}

// Acquire draws a ticket and blocks until it is served. It returns the ticket.
func (g *Gate) Acquire() uint64 {
	ticket := g.next.Add(1) - 1
	// fast path for the uncontended case.
	if g.serving.Load() == ticket {
		return ticket
	}

	wait := g.wait
	if wait == nil {
		wait = backoff.Default()
	}
	for attempt := 0; g.serving.Load() != ticket; attempt++ {
		wait.Wait(attempt)
	}
	return ticket
}

// Release passes the gate to the next ticket holder.
//
// Calling Release without holding the gate breaks the ordering for every waiter.
func (g *Gate) Release() {
	g.serving.Add(1)
}

// Serving returns the ticket that is currently allowed to proceed.
func (g *Gate) Serving() uint64 {
	return g.serving.Load()
}

// Pending returns the number of goroutines that hold or wait for the gate.
func (g *Gate) Pending() uint64 {
	// serving is loaded first, so the difference can't underflow.
	serving := g.serving.Load()
	return g.next.Load() - serving
}
