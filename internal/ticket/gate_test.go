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

package ticket

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gammazero/deque"
	"github.com/stretchr/testify/require"

	"github.com/maypok86/seqlock/backoff"
)

func hammerGate(g *Gate, loops int, cdone chan bool) {
	for i := 0; i < loops; i++ {
		g.Acquire()
		g.Release()
	}
	cdone <- true
}

func TestGate(t *testing.T) {
	g := &Gate{}
	c := make(chan bool)
	for i := 0; i < 10; i++ {
		go hammerGate(g, 1000, c)
	}
	for i := 0; i < 10; i++ {
		<-c
	}
	require.Equal(t, uint64(10*1000), g.Serving())
	require.Zero(t, g.Pending())
}

func TestGate_ZeroValue(t *testing.T) {
	var g Gate
	require.Equal(t, uint64(0), g.Acquire())
	require.Equal(t, uint64(1), g.Pending())
	g.Release()
	require.Equal(t, uint64(1), g.Acquire())
	g.Release()
	require.Zero(t, g.Pending())
}

func TestGate_MutualExclusion(t *testing.T) {
	const (
		goroutines = 8
		loops      = 1000
	)

	g := &Gate{}
	g.SetBackoff(backoff.Yield())
	var (
		inside atomic.Int32
		total  int
		wg     sync.WaitGroup
	)
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < loops; j++ {
				g.Acquire()
				if n := inside.Add(1); n != 1 {
					t.Errorf("%d goroutines inside the gate", n)
				}
				total++
				inside.Add(-1)
				g.Release()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, goroutines*loops, total)
}

func TestGate_ServesTicketsInOrder(t *testing.T) {
	const (
		goroutines = 16
		loops      = 200
	)

	g := &Gate{}
	var (
		served deque.Deque[uint64]
		wg     sync.WaitGroup
	)
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < loops; j++ {
				ticket := g.Acquire()
				served.PushBack(ticket)
				if j%10 == 0 {
					runtime.Gosched()
				}
				g.Release()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, goroutines*loops, served.Len())
	for want := uint64(0); served.Len() > 0; want++ {
		require.Equal(t, want, served.PopFront())
	}
}

func TestGate_Fairness(t *testing.T) {
	g := &Gate{}
	var firstReleased atomic.Bool

	// hold the gate so that the waiters line up behind it.
	g.Acquire()

	const waiters = 5
	order := make(chan int, waiters)
	for i := 0; i < waiters; i++ {
		// wait until the previous waiter has drawn its ticket.
		for g.Pending() != uint64(i+1) {
			runtime.Gosched()
		}
		go func(i int) {
			g.Acquire()
			order <- i
			g.Release()
		}(i)
	}
	for g.Pending() != waiters+1 {
		runtime.Gosched()
	}

	// late arrivals keep hammering the gate, but can't overtake the queue.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		for {
			select {
			case <-stop:
				return
			default:
			}
			g.Acquire()
			if !firstReleased.Load() {
				t.Error("late arrival overtook the queued waiters")
			}
			time.Sleep(10 * time.Microsecond)
			g.Release()
		}
	}()

	firstReleased.Store(true)
	g.Release()

	for want := 0; want < waiters; want++ {
		select {
		case got := <-order:
			require.Equal(t, want, got)
		case <-time.After(10 * time.Second):
			t.Fatalf("waiter %d wasn't served in 10 seconds", want)
		}
	}
}
