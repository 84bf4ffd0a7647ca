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

package stats

import (
	"math"
	"time"

	"github.com/maypok86/seqlock/internal/xsync"
)

var (
	_ Recorder    = (*Counter)(nil)
	_ Snapshotter = (*Counter)(nil)
)

// Counter is a goroutine-safe Recorder implementation for use by seqlock.Lock.
type Counter struct {
	reads          *xsync.Adder
	readRetries    *xsync.Adder
	writes         *xsync.Adder
	totalWriteWait *xsync.Adder
}

// NewCounter constructs a Counter instance with all counts initialized to zero.
func NewCounter() *Counter {
	return &Counter{
		reads:          xsync.NewAdder(),
		readRetries:    xsync.NewAdder(),
		writes:         xsync.NewAdder(),
		totalWriteWait: xsync.NewAdder(),
	}
}

// Snapshot returns a snapshot of this recorder's values. Note that this may be an inconsistent view, as it
// may be interleaved with update operations.
//
// NOTE: the values of the metrics are undefined in case of overflow. If you require specific handling, we recommend
// implementing your own stats.Recorder.
func (c *Counter) Snapshot() Stats {
	totalWriteWait := c.totalWriteWait.Value()
	if totalWriteWait > uint64(math.MaxInt64) {
		totalWriteWait = uint64(math.MaxInt64)
	}
	return Stats{
		reads:          c.reads.Value(),
		readRetries:    c.readRetries.Value(),
		writes:         c.writes.Value(),
		totalWriteWait: time.Duration(totalWriteWait),
	}
}

// RecordRead records a successful read that needed retries extra attempts.
func (c *Counter) RecordRead(retries int) {
	c.reads.Add(1)
	if retries > 0 {
		c.readRetries.Add(uint64(retries))
	}
}

// RecordWrite records a write whose writer waited for its turn for wait.
func (c *Counter) RecordWrite(wait time.Duration) {
	c.writes.Add(1)
	if wait > 0 {
		c.totalWriteWait.Add(uint64(wait))
	}
}

// Reset resets all counts to zero.
//
// It should only be used when nothing records into the counter concurrently.
func (c *Counter) Reset() {
	c.reads.Reset()
	c.readRetries.Reset()
	c.writes.Reset()
	c.totalWriteWait.Reset()
}
