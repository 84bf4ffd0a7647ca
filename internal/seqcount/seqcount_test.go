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

package seqcount

import (
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/maypok86/seqlock/internal/xruntime"
)

func TestCounter_BeginEndWrite(t *testing.T) {
	t.Parallel()

	var c Counter
	require.Equal(t, uint64(0), c.Load())

	seq := c.BeginWrite()
	require.True(t, InProgress(seq))
	require.Equal(t, seq, c.Load())

	c.EndWrite()
	seq = c.Load()
	require.False(t, InProgress(seq))
	require.Equal(t, uint64(2), seq)
	require.Equal(t, uint64(1), Generation(seq))
}

func TestCounter_Validate(t *testing.T) {
	t.Parallel()

	t.Run("stable", func(t *testing.T) {
		t.Parallel()

		var c Counter
		seq := c.Load()
		require.True(t, c.Validate(seq))
	})

	t.Run("odd", func(t *testing.T) {
		t.Parallel()

		var c Counter
		seq := c.BeginWrite()
		require.False(t, c.Validate(seq))
		c.EndWrite()
	})

	t.Run("stale", func(t *testing.T) {
		t.Parallel()

		var c Counter
		seq := c.Load()
		c.BeginWrite()
		c.EndWrite()
		require.False(t, c.Validate(seq))
	})

	t.Run("overlapping", func(t *testing.T) {
		t.Parallel()

		var c Counter
		seq := c.Load()
		c.BeginWrite()
		require.False(t, c.Validate(seq))
		c.EndWrite()
		require.False(t, c.Validate(seq))
	})
}

func TestCounter_MultipleCycles(t *testing.T) {
	t.Parallel()

	var c Counter
	for i := 0; i < 10; i++ {
		c.BeginWrite()
		c.EndWrite()
	}

	seq := c.Load()
	require.Equal(t, uint64(20), seq)
	require.Equal(t, uint64(10), Generation(seq))
	require.True(t, c.Validate(seq))
}

func TestCounter_SerializedWriters(t *testing.T) {
	t.Parallel()

	const (
		writers = 8
		writes  = 1000
	)

	var (
		c  Counter
		mu sync.Mutex
		wg sync.WaitGroup
	)
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < writes; j++ {
				mu.Lock()
				if seq := c.BeginWrite(); !InProgress(seq) {
					t.Errorf("BeginWrite returned even value %d", seq)
				}
				c.EndWrite()
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, uint64(writers*writes), Generation(c.Load()))
}

func TestCounter_Size(t *testing.T) {
	t.Parallel()

	require.Equal(t, uintptr(xruntime.CacheLineSize), unsafe.Sizeof(Counter{}))
}
