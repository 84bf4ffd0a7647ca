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

// Package seqlock provides a sequence lock: readers take optimistic, lock-free
// snapshots of a small value and writers publish new generations of it.
//
// Readers never block and never write shared memory. A read copies the value
// between two loads of a sequence counter and retries if a writer was active or
// finished in between. Writers are serialized by a ticket gate, so they enter in
// the order they arrived and no writer can be starved by newer ones.
//
// A seqlock only makes sense for small, plain values that are read much more often
// than they are written. New rejects types that contain pointers of any kind.
package seqlock

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/maypok86/seqlock/backoff"
	"github.com/maypok86/seqlock/internal/seqcount"
	"github.com/maypok86/seqlock/internal/ticket"
	"github.com/maypok86/seqlock/stats"
)

// Lock is a sequence lock protecting a value of type T.
//
// Read returns a copy of the value and never blocks writers. Write gives the
// mutator exclusive access to the value and publishes the result atomically with
// respect to readers.
//
// The mutator passed to Write must return: if it never does, every reader spins
// forever. If it panics or calls runtime.Goexit, the partially mutated value is still
// published and the panic continues after the lock is released.
//
// A Lock must not be copied after first use.
type Lock[T any] struct {
	seq       seqcount.Counter
	gate      ticket.Gate
	value     T
	backoff   backoff.Strategy
	stats     stats.Recorder
	snapshot  stats.Snapshotter
	withStats bool
	logger    Logger
}

// New creates a Lock holding value.
//
// It returns ErrNotPlainData if T contains pointers, slices, maps, strings,
// interfaces, channels or functions.
func New[T any](value T, o *Options) (*Lock[T], error) {
	if err := checkPlainData(reflect.TypeFor[T]()); err != nil {
		return nil, err
	}

	b := o.getBackoff()
	recorder := o.getStatsRecorder()
	_, isNoop := recorder.(stats.NoopRecorder)
	l := &Lock[T]{
		value:     value,
		backoff:   b,
		stats:     recorder,
		withStats: !isNoop,
		logger:    o.getLogger(),
	}
	l.gate.SetBackoff(b)
	if s, ok := recorder.(stats.Snapshotter); ok {
		l.snapshot = s
	}
	return l, nil
}

// Must creates a Lock holding value. It panics if New returns an error.
func Must[T any](value T, o *Options) *Lock[T] {
	l, err := New(value, o)
	if err != nil {
		panic(err)
	}
	return l
}

// Read returns a consistent copy of the value.
//
// Read never blocks on a lock. It retries while a write is in progress or if a write
// happened during the copy, so it returns once writers leave it a quiet window.
func (l *Lock[T]) Read() T {
	for attempt := 0; ; attempt++ {
		if value, ok := l.tryRead(); ok {
			l.recordRead(attempt)
			return value
		}
		l.backoff.Wait(attempt)
	}
}

// TryRead makes a single read attempt. It returns false if a write was in progress
// or happened during the copy.
func (l *Lock[T]) TryRead() (T, bool) {
	value, ok := l.tryRead()
	if ok {
		l.recordRead(0)
	}
	return value, ok
}

// ReadContext is like Read, but gives up with ctx.Err() once ctx is done.
//
// The context is only checked between attempts.
func (l *Lock[T]) ReadContext(ctx context.Context) (T, error) {
	for attempt := 0; ; attempt++ {
		if value, ok := l.tryRead(); ok {
			l.recordRead(attempt)
			return value, nil
		}
		if err := ctx.Err(); err != nil {
			var zero T
			return zero, err
		}
		l.backoff.Wait(attempt)
	}
}

func (l *Lock[T]) tryRead() (T, bool) {
	seq := l.seq.Load()
	if seqcount.InProgress(seq) {
		// no point in copying, the value is being modified.
		var zero T
		return zero, false
	}

	value := load(&l.value)
	if !l.seq.Validate(seq) {
		var zero T
		return zero, false
	}
	return value, true
}

// Peek calls f with a pointer to the value held by l and returns f's result.
//
// Unlike Read, Peek doesn't copy the value, so f may observe it while a writer is
// modifying it. In that case the result is thrown away and f is called again. f
// must therefore be free of side effects, must not retain the pointer and must
// tolerate any combination of old and new field values without panicking.
func Peek[T, R any](l *Lock[T], f func(v *T) R) R {
	for attempt := 0; ; attempt++ {
		seq := l.seq.Load()
		if !seqcount.InProgress(seq) {
			res := peek(&l.value, f)
			if l.seq.Validate(seq) {
				l.recordRead(attempt)
				return res
			}
		}
		l.backoff.Wait(attempt)
	}
}

// Write calls mutate with exclusive access to the value and publishes the result.
//
// Writers are served in the order they called Write. mutate must not call Write, Store
// or Update on the same Lock: the nested call waits for its turn forever.
func (l *Lock[T]) Write(mutate func(v *T)) {
	wait := l.lock()
	completed := false
	defer func() {
		l.unlock(wait, completed)
	}()

	mutate(&l.value)
	completed = true
}

// Store replaces the value.
func (l *Lock[T]) Store(value T) {
	l.Write(func(v *T) {
		*v = value
	})
}

// Update is like Lock.Write, but returns the result of f.
func Update[T, R any](l *Lock[T], f func(v *T) R) R {
	wait := l.lock()
	completed := false
	defer func() {
		l.unlock(wait, completed)
	}()

	res := f(&l.value)
	completed = true
	return res
}

// lock returns the time spent waiting for the gate, or zero if stats are disabled.
func (l *Lock[T]) lock() time.Duration {
	if !l.withStats {
		l.gate.Acquire()
		l.seq.BeginWrite()
		return 0
	}

	start := time.Now()
	l.gate.Acquire()
	wait := time.Since(start)
	l.seq.BeginWrite()
	return wait
}

// unlock publishes the value and releases the gate before calling into the logger or the
// stats recorder, so neither of them can keep the gate held.
func (l *Lock[T]) unlock(wait time.Duration, completed bool) {
	l.seq.EndWrite()
	l.gate.Release()
	if !completed {
		l.logger.Error(context.Background(), "seqlock: mutator didn't return, publishing partially mutated value", ErrWriteAborted)
	}
	if l.withStats {
		l.stats.RecordWrite(wait)
	}
}

func (l *Lock[T]) recordRead(retries int) {
	if l.withStats {
		l.stats.RecordRead(retries)
	}
}

// Sequence returns the current value of the sequence counter.
//
// An even value 2*N means N writes have been published, an odd value means a write
// is in progress.
func (l *Lock[T]) Sequence() uint64 {
	return l.seq.Load()
}

// Stats returns a snapshot of the statistics collected by the configured stats recorder.
//
// If the recorder can't make snapshots, the zero Stats is returned.
func (l *Lock[T]) Stats() stats.Stats {
	if l.snapshot == nil {
		return stats.Stats{}
	}
	return l.snapshot.Snapshot()
}

// String implements fmt.Stringer. It doesn't read the value.
func (l *Lock[T]) String() string {
	seq := l.seq.Load()
	return fmt.Sprintf("seqlock.Lock[%s]{generation: %d, writing: %t}",
		reflect.TypeFor[T](), seqcount.Generation(seq), seqcount.InProgress(seq))
}
