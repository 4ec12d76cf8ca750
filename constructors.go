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
	"time"
)

// Empty completes immediately, without ever emitting a value.
func Empty[T any]() Observable[T] {
	return Create(func(ctx context.Context, destination Observer[T]) Cancelable {
		destination.OnComplete(ctx)
		return NewBooleanCancelable(nil)
	})
}

// Never subscribes and then does nothing, ever; it only stops when its
// Cancelable is canceled.
func Never[T any]() Observable[T] {
	return Create(func(ctx context.Context, destination Observer[T]) Cancelable {
		return NewBooleanCancelable(nil)
	})
}

// ErrorObservable emits err through OnError as soon as it is subscribed.
func ErrorObservable[T any](err error) Observable[T] {
	return Create(func(ctx context.Context, destination Observer[T]) Cancelable {
		destination.OnError(ctx, err)
		return NewBooleanCancelable(nil)
	})
}

// Unit emits a single value, then completes.
func Unit[T any](value T) Observable[T] {
	return Create(func(ctx context.Context, destination Observer[T]) Cancelable {
		kind, err := destination.OnNext(ctx, value).Await(ctx)
		if err != nil {
			destination.OnError(ctx, err)
			return NewBooleanCancelable(nil)
		}
		if kind == Done {
			return NewBooleanCancelable(nil)
		}
		destination.OnComplete(ctx)
		return NewBooleanCancelable(nil)
	})
}

// Just emits every value given, in order, then completes. It is an
// alias for FromSequence.
func Just[T any](values ...T) Observable[T] {
	return fromSlice(values)
}

// FromSequence emits every value given, in order, then completes.
func FromSequence[T any](values ...T) Observable[T] {
	return fromSlice(values)
}

// Range emits count consecutive integers starting at start, then
// completes.
func Range(start, count int) Observable[int] {
	return Create(func(ctx context.Context, destination Observer[int]) Cancelable {
		for i := 0; i < count; i++ {
			kind, err := destination.OnNext(ctx, start+i).Await(ctx)
			if err != nil {
				destination.OnError(ctx, err)
				return NewBooleanCancelable(nil)
			}
			if kind == Done {
				return NewBooleanCancelable(nil)
			}
		}
		destination.OnComplete(ctx)
		return NewBooleanCancelable(nil)
	})
}

// FromIterable emits every value of values, one per task submitted to
// s, so a slow consumer never blocks the caller of Subscribe (§5: the
// thread hop named for fromIterable).
func FromIterable[T any](s Scheduler, values []T) Observable[T] {
	return Create(func(ctx context.Context, destination Observer[T]) Cancelable {
		cancelable := NewBooleanCancelable(nil)

		var emit func(ctx context.Context)
		index := 0
		emit = func(ctx context.Context) {
			if cancelable.IsCanceled() {
				return
			}
			if index >= len(values) {
				destination.OnComplete(ctx)
				return
			}

			value := values[index]
			index++

			kind, err := destination.OnNext(ctx, value).Await(ctx)
			if err != nil {
				destination.OnError(ctx, err)
				return
			}
			if kind == Done {
				return
			}
			s.Submit(ctx, emit)
		}

		s.Submit(ctx, emit)
		return cancelable
	})
}

// Interval emits successive integers starting at 0, once per period,
// until canceled or the consumer returns Done.
func Interval(s Scheduler, period time.Duration) Observable[int] {
	return Create(func(ctx context.Context, destination Observer[int]) Cancelable {
		count := 0
		var cancelable Cancelable
		cancelable = s.SubmitRecurring(ctx, period, func(ctx context.Context) {
			value := count
			count++

			kind, err := destination.OnNext(ctx, value).Await(ctx)
			if err != nil {
				destination.OnError(ctx, err)
				cancelable.Cancel()
				return
			}
			if kind == Done {
				cancelable.Cancel()
			}
		})
		return cancelable
	})
}

// DefaultInterval is Interval using the package-level default scheduler
// installed with SetDefaultScheduler.
func DefaultInterval(period time.Duration) Observable[int] {
	return Interval(requireDefaultScheduler(), period)
}

// Continuous emits f(0), f(1), f(2), ... back to back, as fast as the
// consumer acknowledges, each call scheduled through s.
func Continuous[T any](s Scheduler, f func(index int) T) Observable[T] {
	return Create(func(ctx context.Context, destination Observer[T]) Cancelable {
		cancelable := NewBooleanCancelable(nil)

		var emit func(ctx context.Context)
		index := 0
		emit = func(ctx context.Context) {
			if cancelable.IsCanceled() {
				return
			}

			value := f(index)
			index++

			kind, err := destination.OnNext(ctx, value).Await(ctx)
			if err != nil {
				destination.OnError(ctx, err)
				return
			}
			if kind == Done {
				return
			}
			s.Submit(ctx, emit)
		}

		s.Submit(ctx, emit)
		return cancelable
	})
}

// DefaultContinuous is Continuous using the package-level default
// scheduler installed with SetDefaultScheduler.
func DefaultContinuous[T any](f func(index int) T) Observable[T] {
	return Continuous(requireDefaultScheduler(), f)
}
