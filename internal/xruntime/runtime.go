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

package xruntime

import (
	"math/rand/v2"
	"runtime"
)

const (
	// CacheLineSize is useful for preventing false sharing.
	CacheLineSize = 64
)

// Parallelism returns the number of goroutines that can actually run at the same time.
func Parallelism() uint32 {
	maxProcs := uint32(runtime.GOMAXPROCS(0))
	numCPU := uint32(runtime.NumCPU())
	if maxProcs < numCPU {
		return maxProcs
	}
	return numCPU
}

// Fastrand returns a cheap pseudo-random number. It's only used to pick stripes, so its quality doesn't matter.
func Fastrand() uint32 {
	return rand.Uint32()
}
