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
	"testing"
	"time"
)

func TestStats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		s                Stats
		readAttempts     uint64
		retriesPerRead   float64
		retryRatio       float64
		averageWriteWait time.Duration
	}{
		{
			name: "empty",
		},
		{
			name:             "reads without retries",
			s:                Stats{reads: 10},
			readAttempts:     10,
			retriesPerRead:   0,
			retryRatio:       0,
			averageWriteWait: 0,
		},
		{
			name:             "retries and writes",
			s:                Stats{reads: 4, readRetries: 4, writes: 2, totalWriteWait: 10 * time.Millisecond},
			readAttempts:     8,
			retriesPerRead:   1,
			retryRatio:       0.5,
			averageWriteWait: 5 * time.Millisecond,
		},
		{
			name:           "overflow",
			s:              Stats{reads: math.MaxUint64, readRetries: 1},
			readAttempts:   math.MaxUint64,
			retriesPerRead: 1 / float64(math.MaxUint64),
			retryRatio:     1 / float64(math.MaxUint64),
		},
		{
			name:             "huge number of writes",
			s:                Stats{writes: math.MaxUint64, totalWriteWait: math.MaxInt64},
			averageWriteWait: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.s.ReadAttempts(); got != tt.readAttempts {
				t.Fatalf("readAttempts should be %d, but got %d", tt.readAttempts, got)
			}
			if got := tt.s.RetriesPerRead(); got != tt.retriesPerRead {
				t.Fatalf("retriesPerRead should be %v, but got %v", tt.retriesPerRead, got)
			}
			if got := tt.s.RetryRatio(); got != tt.retryRatio {
				t.Fatalf("retryRatio should be %v, but got %v", tt.retryRatio, got)
			}
			if got := tt.s.AverageWriteWait(); got != tt.averageWriteWait {
				t.Fatalf("averageWriteWait should be %v, but got %v", tt.averageWriteWait, got)
			}
		})
	}
}
