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

var _ Subject[int] = (*subjectImpl[int])(nil)

type publishCachePolicy[T any] struct{}

func (publishCachePolicy[T]) record(history []T, value T) []T {
	return history // PublishSubject caches nothing (§4.7)
}

// NewPublishSubject returns a Subject that broadcasts live events only:
// a new subscriber sees nothing emitted before it subscribed.
func NewPublishSubject[T any]() Subject[T] {
	return newSubjectImpl[T](nil, publishCachePolicy[T]{})
}
