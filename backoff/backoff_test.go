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

package backoff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSpinThenYield(t *testing.T) {
	t.Parallel()

	s := SpinThenYield(-1).(spinThenYield)
	require.Equal(t, 0, s.spins)

	s = Default().(spinThenYield)
	require.Equal(t, DefaultSpins, s.spins)
	for i := 0; i < 2*DefaultSpins; i++ {
		s.Wait(i)
	}
}

func TestExponential_Delay(t *testing.T) {
	t.Parallel()

	e := Exponential(2, time.Microsecond, 10*time.Microsecond).(exponential)
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{attempt: 0, want: 0},
		{attempt: 1, want: 0},
		{attempt: 2, want: time.Microsecond},
		{attempt: 3, want: 2 * time.Microsecond},
		{attempt: 4, want: 4 * time.Microsecond},
		{attempt: 5, want: 8 * time.Microsecond},
		{attempt: 6, want: 10 * time.Microsecond},
		{attempt: 1000, want: 10 * time.Microsecond},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, e.Delay(tt.attempt), "attempt=%d", tt.attempt)
	}
}

func TestExponential_Defaults(t *testing.T) {
	t.Parallel()

	e := Exponential(-5, 0, -1).(exponential)
	require.Equal(t, 0, e.spins)
	require.Equal(t, time.Microsecond, e.min)
	require.Equal(t, time.Microsecond, e.max)
}

func TestFunc(t *testing.T) {
	t.Parallel()

	var got []int
	var s Strategy = Func(func(attempt int) {
		got = append(got, attempt)
	})
	s.Wait(0)
	s.Wait(3)
	require.Equal(t, []int{0, 3}, got)
}
