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

import "context"

// DoOnComplete runs cb after destination has observed OnComplete. A
// panic inside cb never re-enters the stream: it is handed to s's
// failure reporter instead (§4.9 "inside a callback scheduled on the
// scheduler").
func DoOnComplete[T any](s Scheduler, cb func(ctx context.Context)) func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return Create(func(ctx context.Context, destination Observer[T]) Cancelable {
			return source.Subscribe(ctx, NewObserver(
				destination.OnNext,
				destination.OnError,
				func(ctx context.Context) {
					destination.OnComplete(ctx)
					s.Submit(ctx, func(ctx context.Context) {
						if err := guardUserCode(func() { cb(ctx) }); err != nil {
							s.ReportFailure(ctx, err)
						}
					})
				},
			))
		})
	}
}

// Materialize turns every event, including the two terminal ones, into
// a Notification value delivered through OnNext, followed by a single
// OnComplete (§4.3 "materialize").
func Materialize[T any]() func(Observable[T]) Observable[Notification[T]] {
	return func(source Observable[T]) Observable[Notification[T]] {
		return Create(func(ctx context.Context, destination Observer[Notification[T]]) Cancelable {
			return source.Subscribe(ctx, NewObserver(
				func(ctx context.Context, value T) Ack {
					return destination.OnNext(ctx, NewNotificationNext(value))
				},
				func(ctx context.Context, err error) {
					destination.OnNext(ctx, NewNotificationError[T](err))
					destination.OnComplete(ctx)
				},
				func(ctx context.Context) {
					destination.OnNext(ctx, NewNotificationComplete[T]())
					destination.OnComplete(ctx)
				},
			))
		})
	}
}

// Dematerialize is the inverse of Materialize: it replays each
// Notification as the live event it represents.
func Dematerialize[T any]() func(Observable[Notification[T]]) Observable[T] {
	return func(source Observable[Notification[T]]) Observable[T] {
		return Create(func(ctx context.Context, destination Observer[T]) Cancelable {
			return source.Subscribe(ctx, NewObserver(
				func(ctx context.Context, n Notification[T]) Ack {
					return dematerializeOnto(ctx, n, destination)
				},
				destination.OnError,
				destination.OnComplete,
			))
		})
	}
}

// AsFuture subscribes to source and blocks until its first item, error,
// or empty completion, then tells upstream Done (§4.3 "asFuture":
// "resolves a promise with the first item or empty/error"). ok reports
// whether a value was actually emitted; a source that completes without
// emitting anything returns ok == false with ErrAsFutureEmptySource.
func AsFuture[T any](ctx context.Context, source Observable[T]) (value T, ok bool, err error) {
	done := make(chan struct{})

	cancelable := source.Subscribe(ctx, NewObserver(
		func(ctx context.Context, v T) Ack {
			select {
			case <-done:
			default:
				value = v
				ok = true
				close(done)
			}
			return DoneAck()
		},
		func(ctx context.Context, thrown error) {
			select {
			case <-done:
			default:
				err = thrown
				close(done)
			}
		},
		func(ctx context.Context) {
			select {
			case <-done:
			default:
				err = ErrAsFutureEmptySource
				close(done)
			}
		},
	))

	select {
	case <-done:
	case <-ctx.Done():
		cancelable.Cancel()
		var zero T
		return zero, false, ctx.Err()
	}

	return value, ok, err
}
