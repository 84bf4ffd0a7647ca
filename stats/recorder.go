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

import "time"

// Recorder accumulates statistics during the operation of a seqlock.Lock.
//
// Methods are called on the hot paths of the lock, so they should be cheap and
// must be safe for concurrent use.
type Recorder interface {
	// RecordRead records a successful read that needed retries extra attempts.
	RecordRead(retries int)
	// RecordWrite records a write whose writer waited for its turn for wait.
	RecordWrite(wait time.Duration)
}

// Snapshotter allows to get a stats snapshot from a recorder.
//
// seqlock.Lock.Stats returns the snapshot of a recorder implementing Snapshotter.
type Snapshotter interface {
	Snapshot() Stats
}

// NoopRecorder is a Recorder that ignores everything. A seqlock.Lock configured with it
// skips recording entirely.
type NoopRecorder struct{}

// RecordRead does nothing.
func (NoopRecorder) RecordRead(retries int) {}

// RecordWrite does nothing.
func (NoopRecorder) RecordWrite(wait time.Duration) {}
