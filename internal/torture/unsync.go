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

import "time"

// Unsynchronized doesn't guard the array at all. It is the negative control of the
// torture test: its readers are expected to see torn writes.
type Unsynchronized struct {
	a Array
}

// NewUnsynchronized returns an unguarded Subject.
func NewUnsynchronized() Subject {
	return &Unsynchronized{a: NewArray()}
}

func (u *Unsynchronized) Check(delay time.Duration) int {
	return u.a.Check(delay)
}

func (u *Unsynchronized) Frob(delay time.Duration) {
	u.a.Frob(delay)
}
