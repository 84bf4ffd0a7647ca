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

package torture

import (
	"sync"
	"time"

	"github.com/maypok86/seqlock"
)

// Subject is a synchronized Array under test.
type Subject interface {
	// Check inspects the array and returns the number of inconsistencies it found.
	Check(delay time.Duration) int
	// Frob modifies the array.
	Frob(delay time.Duration)
}

// Factory creates a fresh Subject.
type Factory func() Subject

// Mutex guards the array with a sync.Mutex.
type Mutex struct {
	mu sync.Mutex
	a  Array
}

// NewMutex returns a Subject guarded by a sync.Mutex.
func NewMutex() Subject {
	return &Mutex{a: NewArray()}
}

func (m *Mutex) Check(delay time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.a.Check(delay)
}

func (m *Mutex) Frob(delay time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.a.Frob(delay)
}

// RWMutex guards the array with a sync.RWMutex.
type RWMutex struct {
	mu sync.RWMutex
	a  Array
}

// NewRWMutex returns a Subject guarded by a sync.RWMutex.
func NewRWMutex() Subject {
	return &RWMutex{a: NewArray()}
}

func (m *RWMutex) Check(delay time.Duration) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.a.Check(delay)
}

func (m *RWMutex) Frob(delay time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.a.Frob(delay)
}

// SeqLock guards the array with a seqlock.Lock and checks copies returned by Read.
type SeqLock struct {
	l *seqlock.Lock[Array]
}

// NewSeqLock returns a Subject guarded by a seqlock.Lock with the given options.
func NewSeqLock(o *seqlock.Options) Factory {
	return func() Subject {
		return &SeqLock{l: seqlock.Must(NewArray(), o)}
	}
}

func (s *SeqLock) Check(delay time.Duration) int {
	a := s.l.Read()
	return a.Check(delay)
}

func (s *SeqLock) Frob(delay time.Duration) {
	s.l.Write(func(a *Array) {
		a.Frob(delay)
	})
}

// SeqLockPeek guards the array with a seqlock.Lock and checks it in place with seqlock.Peek.
type SeqLockPeek struct {
	SeqLock
}

// NewSeqLockPeek returns a Subject guarded by a seqlock.Lock that is checked without copying.
func NewSeqLockPeek(o *seqlock.Options) Factory {
	return func() Subject {
		return &SeqLockPeek{SeqLock{l: seqlock.Must(NewArray(), o)}}
	}
}

func (s *SeqLockPeek) Check(delay time.Duration) int {
	return seqlock.Peek(s.l, func(a *Array) int {
		return a.Check(delay)
	})
}
