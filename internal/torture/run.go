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

// Package torture runs concurrent readers and writers against a synchronized value
// and counts how often the readers observe an inconsistent state.
package torture

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// Spec describes a group of goroutines.
type Spec struct {
	// Goroutines is the number of goroutines to start.
	Goroutines int `toml:"goroutines"`
	// Steps is the number of operations each goroutine performs.
	Steps int `toml:"steps"`
	// Delay is passed to every Check or Frob call and is slept between words.
	Delay time.Duration `toml:"delay"`
	// Pause is slept between operations, outside of any critical section.
	Pause time.Duration `toml:"pause"`
}

// DefaultSpec returns the spec used by the torture tests.
func DefaultSpec() Spec {
	return Spec{
		Goroutines: 100,
		Steps:      100,
		Delay:      2 * time.Microsecond,
		Pause:      2 * time.Millisecond,
	}
}

func (s Spec) validate() error {
	if s.Goroutines < 0 {
		return fmt.Errorf("negative number of goroutines: %d", s.Goroutines)
	}
	if s.Steps < 0 {
		return fmt.Errorf("negative number of steps: %d", s.Steps)
	}
	if s.Delay < 0 || s.Pause < 0 {
		return fmt.Errorf("negative delay or pause: %v/%v", s.Delay, s.Pause)
	}
	return nil
}

// Mode selects which operation is sampled by a benchmark.
type Mode int

const (
	// Reader samples Check latencies.
	Reader Mode = iota
	// Writer samples Frob latencies.
	Writer
)

func (m Mode) String() string {
	switch m {
	case Reader:
		return "read"
	case Writer:
		return "write"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Bench requests latency samples from the calling goroutine while the
// readers and writers are running.
type Bench struct {
	Mode Mode
	// Samples is the number of samples to take.
	Samples int
	// Pause is slept between samples.
	Pause time.Duration
}

// Result is the outcome of a Run.
type Result struct {
	// Checks is the number of Check calls made by readers.
	Checks uint64
	// FailedChecks is the number of Check calls that found an inconsistency.
	FailedChecks uint64
	// Frobs is the number of Frob calls made by writers.
	Frobs uint64
	// Samples holds the benchmark latencies, if a benchmark was requested.
	Samples []time.Duration
}

type shared struct {
	subject      Subject
	shutdown     atomic.Bool
	checks       atomic.Uint64
	failedChecks atomic.Uint64
	frobs        atomic.Uint64
}

// Run starts readers and writers against a Subject created by factory.
//
// Without a benchmark Run returns once every goroutine has performed its steps.
// With a benchmark the goroutines are stopped as soon as all samples are taken.
func Run(ctx context.Context, factory Factory, readers, writers Spec, bench *Bench) (Result, error) {
	if err := readers.validate(); err != nil {
		return Result{}, fmt.Errorf("readers: %w", err)
	}
	if err := writers.validate(); err != nil {
		return Result{}, fmt.Errorf("writers: %w", err)
	}

	s := &shared{
		subject: factory(),
	}

	g, ctx := errgroup.WithContext(ctx)
	start := func(spec Spec, op func()) {
		for i := 0; i < spec.Goroutines; i++ {
			g.Go(func() error {
				for step := 0; step < spec.Steps; step++ {
					op()
					sleep(spec.Pause)
					if s.shutdown.Load() {
						return nil
					}
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				return nil
			})
		}
	}

	start(readers, func() {
		s.checks.Add(1)
		if s.subject.Check(readers.Delay) != 0 {
			s.failedChecks.Add(1)
		}
	})
	start(writers, func() {
		s.frobs.Add(1)
		s.subject.Frob(writers.Delay)
	})

	var samples []time.Duration
	if bench != nil {
		samples = make([]time.Duration, 0, bench.Samples)
		for i := 0; i < bench.Samples && ctx.Err() == nil; i++ {
			samples = append(samples, s.sample(bench.Mode))
			sleep(bench.Pause)
		}
		s.shutdown.Store(true)
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	if bench != nil && len(samples) < bench.Samples {
		return Result{}, context.Cause(ctx)
	}

	return Result{
		Checks:       s.checks.Load(),
		FailedChecks: s.failedChecks.Load(),
		Frobs:        s.frobs.Load(),
		Samples:      samples,
	}, nil
}

func (s *shared) sample(mode Mode) time.Duration {
	if mode == Writer {
		start := time.Now()
		s.subject.Frob(0)
		d := time.Since(start)
		s.frobs.Add(1)
		return d
	}

	start := time.Now()
	n := s.subject.Check(0)
	d := time.Since(start)
	s.checks.Add(1)
	if n != 0 {
		s.failedChecks.Add(1)
	}
	return d
}
