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
	"runtime"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestParallelism(t *testing.T) {
	p := Parallelism()
	require.GreaterOrEqual(t, p, uint32(1))
	require.LessOrEqual(t, p, uint32(runtime.NumCPU()))
	require.LessOrEqual(t, p, uint32(runtime.GOMAXPROCS(0)))
}

func TestCacheLinePadding(t *testing.T) {
	type padded struct {
		v       uint64
		padding [CacheLineSize - 8]byte
	}
	require.Equal(t, uintptr(CacheLineSize), unsafe.Sizeof(padded{}))
}
