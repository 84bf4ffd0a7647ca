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

package seqlock_test

import (
	"fmt"

	"github.com/maypok86/seqlock"
	"github.com/maypok86/seqlock/stats"
)

type position struct {
	Lat, Lon float64
	Version  uint64
}

func Example() {
	l := seqlock.Must(position{}, nil)

	l.Write(func(p *position) {
		p.Lat = 55.75
		p.Lon = 37.62
		p.Version++
	})

	p := l.Read()
	fmt.Println(p.Lat, p.Lon, p.Version)
	// Output: 55.75 37.62 1
}

func ExampleUpdate() {
	l := seqlock.Must(uint64(41), nil)

	next := seqlock.Update(l, func(v *uint64) uint64 {
		*v++
		return *v
	})

	fmt.Println(next, l.Sequence())
	// Output: 42 2
}

func ExamplePeek() {
	l := seqlock.Must([4]int{1, 2, 3, 4}, nil)

	sum := seqlock.Peek(l, func(v *[4]int) int {
		s := 0
		for _, x := range v {
			s += x
		}
		return s
	})

	fmt.Println(sum)
	// Output: 10
}

func ExampleOptions() {
	counter := stats.NewCounter()
	l := seqlock.Must(0, &seqlock.Options{
		StatsRecorder: counter,
	})

	l.Store(1)
	l.Read()
	l.Read()

	s := l.Stats()
	fmt.Println(s.Reads(), s.Writes())
	// Output: 2 1
}
