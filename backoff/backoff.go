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

// Package backoff contains the waiting policies used by seqlock retry loops.
//
// A Strategy is consulted every time a reader fails to get a stable snapshot
// or a writer finds that its ticket is not being served yet. Strategies never
// block on an OS primitive; they either spin, yield the processor or sleep
// for a short time.
package backoff

import (
	"runtime"
	"time"
)

// DefaultSpins is the number of attempts that are retried immediately before yielding.
const DefaultSpins = 16

// Strategy decides how long to wait before the next attempt.
//
// attempt is zero-based and is reset for every new operation. Implementations
// must be safe for concurrent use.
type Strategy interface {
	Wait(attempt int)
}

// Func is an adapter to allow the use of ordinary functions as a Strategy.
type Func func(attempt int)

// Wait calls f(attempt).
func (f Func) Wait(attempt int) {
	f(attempt)
}

// Default returns the spin-then-yield strategy with DefaultSpins spins.
func Default() Strategy {
	return SpinThenYield(DefaultSpins)
}

type spinThenYield struct {
	spins int
}

// SpinThenYield returns a strategy that retries immediately for the first spins
// attempts and then calls runtime.Gosched before every following attempt.
func SpinThenYield(spins int) Strategy {
	if spins < 0 {
		spins = 0
	}
	return spinThenYield{spins: spins}
}

func (s spinThenYield) Wait(attempt int) {
	if attempt < s.spins {
		return
	}
	runtime.Gosched()
}

// Yield returns a strategy that always yields the processor.
func Yield() Strategy {
	return SpinThenYield(0)
}

type exponential struct {
	spins int
	min   time.Duration
	max   time.Duration
}

// Exponential returns a strategy that spins for the first spins attempts and then
// sleeps, starting from minDelay and doubling up to maxDelay.
//
// Sleeping makes the retry loops cheaper under heavy contention, but adds latency,
// so it is only worth it when writers hold the lock for a long time.
func Exponential(spins int, minDelay, maxDelay time.Duration) Strategy {
	if spins < 0 {
		spins = 0
	}
	if minDelay <= 0 {
		minDelay = time.Microsecond
	}
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return exponential{
		spins: spins,
		min:   minDelay,
		max:   maxDelay,
	}
}

func (e exponential) Wait(attempt int) {
	if attempt < e.spins {
		return
	}
	time.Sleep(e.Delay(attempt))
}

// Delay returns the sleep duration used for the given attempt.
func (e exponential) Delay(attempt int) time.Duration {
	n := attempt - e.spins
	if n < 0 {
		return 0
	}
	d := e.min
	for i := 0; i < n; i++ {
		d <<= 1
		if d >= e.max || d <= 0 {
			return e.max
		}
	}
	return d
}
