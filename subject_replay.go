// Copyright 2025 samber.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// https://github.com/samber/ro/blob/main/licenses/LICENSE.apache.md
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package monifu

// ReplayUnlimitedBufferSize, passed as the bufferSize argument to
// NewReplaySubject, means the subject remembers every item ever
// emitted.
const ReplayUnlimitedBufferSize = -1

type replayCachePolicy[T any] struct {
	bufferSize int
}

func (p replayCachePolicy[T]) record(history []T, value T) []T {
	history = append(history[:len(history):len(history)], value)

	if p.bufferSize >= 0 && len(history) > p.bufferSize {
		drop := len(history) - p.bufferSize
		trimmed := make([]T, p.bufferSize)
		copy(trimmed, history[drop:])
		return trimmed
	}

	return history
}

// NewReplaySubject returns a Subject that caches every item it has
// emitted, up to bufferSize items (ReplayUnlimitedBufferSize for an
// unbounded history). A new subscriber receives the full cached
// history, then live events (§4.7).
func NewReplaySubject[T any](bufferSize int) Subject[T] {
	return newSubjectImpl[T](nil, replayCachePolicy[T]{bufferSize: bufferSize})
}
