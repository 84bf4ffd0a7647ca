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

//go:build !race

package torture

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// The unsynchronized subject must fail, otherwise the torture test can't tell
// a correct lock from a broken one.
func TestRun_Unsynchronized(t *testing.T) {
	t.Parallel()

	readers := DefaultSpec()
	writers := DefaultSpec()
	readers.Goroutines = 20
	writers.Goroutines = 20
	readers.Steps = 50
	writers.Steps = 50

	res, err := Run(context.Background(), NewUnsynchronized, readers, writers, nil)
	require.NoError(t, err)
	require.Positive(t, res.FailedChecks)
}
