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

type behaviorCachePolicy[T any] struct{}

func (behaviorCachePolicy[T]) record(history []T, value T) []T {
	return []T{value} // BehaviorSubject remembers only the most recent item (§4.7)
}

// NewBehaviorSubject returns a Subject seeded with initial. A new
// subscriber immediately receives the single most recently emitted
// item (or initial, if nothing has been emitted yet), then live events.
func NewBehaviorSubject[T any](initial T) Subject[T] {
	return newSubjectImpl[T]([]T{initial}, behaviorCachePolicy[T]{})
}
