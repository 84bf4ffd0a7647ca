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

// Package stats contains the statistics that a seqlock.Lock can record.
package stats

import (
	"math"
	"time"
)

// Stats are statistics about the operation of a seqlock.Lock.
type Stats struct {
	reads          uint64
	readRetries    uint64
	writes         uint64
	totalWriteWait time.Duration
}

// Reads returns the number of successful read operations.
func (s Stats) Reads() uint64 {
	return s.reads
}

// ReadRetries returns the number of read attempts that had to be repeated because a
// write was in progress or interfered with the copy.
func (s Stats) ReadRetries() uint64 {
	return s.readRetries
}

// ReadAttempts returns the total number of read attempts, including retries.
//
// NOTE: the values of the metrics are undefined in case of overflow. If you require specific handling, we recommend
// implementing your own stats.Recorder.
func (s Stats) ReadAttempts() uint64 {
	return checkedAdd(s.reads, s.readRetries)
}

// RetriesPerRead returns the average number of retries per successful read.
func (s Stats) RetriesPerRead() float64 {
	if s.reads == 0 {
		return 0.0
	}
	return float64(s.readRetries) / float64(s.reads)
}

// RetryRatio returns the ratio of read attempts that were thrown away.
func (s Stats) RetryRatio() float64 {
	attempts := s.ReadAttempts()
	if attempts == 0 {
		return 0.0
	}
	return float64(s.readRetries) / float64(attempts)
}

// Writes returns the number of write operations.
func (s Stats) Writes() uint64 {
	return s.writes
}

// TotalWriteWait returns the time writers spent waiting for their turn.
func (s Stats) TotalWriteWait() time.Duration {
	return s.totalWriteWait
}

// AverageWriteWait returns the average time a writer waited for its turn.
func (s Stats) AverageWriteWait() time.Duration {
	if s.writes == 0 {
		return 0
	}
	if s.writes > uint64(math.MaxInt64) {
		return s.totalWriteWait / time.Duration(math.MaxInt64)
	}
	return s.totalWriteWait / time.Duration(s.writes)
}

func checkedAdd(a, b uint64) uint64 {
	s := a + b
	if s < a || s < b {
		return math.MaxUint64
	}
	return s
}
