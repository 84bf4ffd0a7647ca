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

import "errors"

var (
	// ErrNotPlainData is returned by New when the protected type contains pointers, slices, maps, strings,
	// interfaces, channels or functions. A torn copy of such a value isn't just stale, it can be invalid.
	ErrNotPlainData = errors.New("seqlock: type is not plain data")
	// ErrWriteAborted is logged when a mutator passed to a write operation doesn't return, because it
	// panicked or called runtime.Goexit. The write is still published and the lock is released.
	ErrWriteAborted = errors.New("seqlock: mutator didn't return")
)
