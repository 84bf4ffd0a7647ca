// Copyright (c) 2023 Alexey Mayshev and contributors. All rights reserved.
// Copyright (c) 2021 Andrey Pechkurov. All rights reserved.
//
// Copyright notice. This code is a fork of xsync.Counter from this file with some changes:
// https://github.com/puzpuzpuz/xsync/blob/main/counter.go
//
// Use of this source code is governed by a MIT license that can be found
// at https://github.com/puzpuzpuz/xsync/blob/main/LICENSE

package xsync

import (
	"sync"
	"sync/atomic"

	"github.com/maypok86/seqlock/internal/xmath"
	"github.com/maypok86/seqlock/internal/xruntime"
)

var tokenPool sync.Pool

type token struct {
	idx     uint32
	padding [xruntime.CacheLineSize - 4]byte
}

// Adder is a striped uint64 counter.
//
// It's much faster than a single atomic in write heavy scenarios (for example stats),
// at the cost of a slower and possibly inconsistent Value.
type Adder struct {
	stripes []stripe
	mask    uint32
}

type stripe struct {
	v       atomic.Uint64
	padding [xruntime.CacheLineSize - 8]byte
}

// NewAdder creates a new Adder with a number of stripes matching the available parallelism.
func NewAdder() *Adder {
	nstripes := xmath.RoundUpPowerOf2(xruntime.Parallelism())
	return &Adder{
		stripes: make([]stripe, nstripes),
		mask:    nstripes - 1,
	}
}

// Add adds delta to the counter.
func (a *Adder) Add(delta uint64) {
	t, ok := tokenPool.Get().(*token)
	if !ok {
		t = &token{}
		t.idx = xruntime.Fastrand()
	}
	for {
		s := &a.stripes[t.idx&a.mask]
		cnt := s.v.Load()
		if s.v.CompareAndSwap(cnt, cnt+delta) {
			break
		}
		// contended stripe, move to another one.
		t.idx = xruntime.Fastrand()
	}
	tokenPool.Put(t)
}

// Value returns the current counter value.
// The returned value may not include all of the latest operations in
// presence of concurrent modifications of the counter.
func (a *Adder) Value() uint64 {
	v := uint64(0)
	for i := 0; i < len(a.stripes); i++ {
		v += a.stripes[i].v.Load()
	}
	return v
}

// Reset resets the counter to zero.
// This method should only be used when it is known that there are
// no concurrent modifications of the counter.
func (a *Adder) Reset() {
	for i := 0; i < len(a.stripes); i++ {
		a.stripes[i].v.Store(0)
	}
}
