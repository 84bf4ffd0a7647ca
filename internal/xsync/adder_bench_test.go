// Copyright (c) 2023 Alexey Mayshev. All rights reserved.
// Copyright (c) 2021 Andrey Pechkurov
//
// Copyright notice. This code is a fork of benchmarks for xsync.Counter from this file with some changes:
// https://github.com/puzpuzpuz/xsync/blob/main/counter_test.go
//
// Use of this source code is governed by a MIT license that can be found
// at https://github.com/puzpuzpuz/xsync/blob/main/LICENSE

package xsync

import (
	"sync/atomic"
	"testing"
)

func runBenchAdder(b *testing.B, value func() uint64, add func(), readRatio int) {
	b.Helper()
	b.ResetTimer()
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		ops := 0
		for pb.Next() {
			ops++
			if readRatio > 0 && ops%readRatio == 0 {
				_ = value()
			} else {
				add()
			}
		}
	})
}

func BenchmarkAdder(b *testing.B) {
	a := NewAdder()
	runBenchAdder(b, a.Value, func() {
		a.Add(1)
	}, 10000)
}

func BenchmarkAtomicUint64(b *testing.B) {
	var c atomic.Uint64
	runBenchAdder(b, c.Load, func() {
		c.Add(1)
	}, 10000)
}
