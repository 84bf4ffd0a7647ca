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

package seqlock

import (
	"github.com/maypok86/seqlock/backoff"
	"github.com/maypok86/seqlock/stats"
)

// Options should be passed to New to construct a Lock. A nil *Options means defaults.
type Options struct {
	// Backoff specifies how readers wait between failed attempts and how writers
	// wait for their turn.
	//
	// The default is spin-then-yield (see backoff.Default).
	Backoff backoff.Strategy
	// StatsRecorder accumulates statistics during the operation of a Lock.
	//
	// Statistics are disabled by default and cost nothing on the read path in that case.
	StatsRecorder stats.Recorder
	// Logger specifies the Logger implementation that will be used for logging warning and errors.
	//
	// Logging is disabled by default.
	Logger Logger
}

func (o *Options) getBackoff() backoff.Strategy {
	if o == nil || o.Backoff == nil {
		return backoff.Default()
	}
	return o.Backoff
}

func (o *Options) getStatsRecorder() stats.Recorder {
	if o == nil || o.StatsRecorder == nil {
		return stats.NoopRecorder{}
	}
	return o.StatsRecorder
}

func (o *Options) getLogger() Logger {
	if o == nil || o.Logger == nil {
		return noopLogger{}
	}
	return o.Logger
}
