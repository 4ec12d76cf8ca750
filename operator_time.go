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

import (
	"context"

	"github.com/samber/lo"

	"github.com/creyer/monifu/internal/xtime"
)

// TimeInterval pairs every item with the number of nanoseconds elapsed
// since the previous item (or since subscription, for the first one),
// measured with a monotonic clock rather than wall time.
func TimeInterval[T any]() func(Observable[T]) Observable[lo.Tuple2[T, int64]] {
	return func(source Observable[T]) Observable[lo.Tuple2[T, int64]] {
		return Create(func(ctx context.Context, destination Observer[lo.Tuple2[T, int64]]) Cancelable {
			last := xtime.NowNanoMonotonic()

			return source.Subscribe(ctx, NewObserver(
				func(ctx context.Context, value T) Ack {
					now := xtime.NowNanoMonotonic()
					elapsed := now - last
					last = now
					return destination.OnNext(ctx, lo.Tuple2[T, int64]{A: value, B: elapsed})
				},
				destination.OnError,
				destination.OnComplete,
			))
		})
	}
}

// Timestamp pairs every item with the monotonic nanosecond clock
// reading at the moment it was observed.
func Timestamp[T any]() func(Observable[T]) Observable[lo.Tuple2[T, int64]] {
	return func(source Observable[T]) Observable[lo.Tuple2[T, int64]] {
		return Create(func(ctx context.Context, destination Observer[lo.Tuple2[T, int64]]) Cancelable {
			return source.Subscribe(ctx, NewObserver(
				func(ctx context.Context, value T) Ack {
					return destination.OnNext(ctx, lo.Tuple2[T, int64]{A: value, B: xtime.NowNanoMonotonic()})
				},
				destination.OnError,
				destination.OnComplete,
			))
		})
	}
}
