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

// ObserveOn re-schedules every downstream call onto s, serializing them
// by chaining each new Ack onto the last one seen so far in a Cell
// (§4.3 "observeOn": "re-schedules downstream calls onto s; serializes
// by chaining acks through a last-response cell").
func ObserveOn[T any](s Scheduler) func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return Create(func(ctx context.Context, destination Observer[T]) Cancelable {
			last := NewCell[Ack](ContinueAck())

			return source.Subscribe(ctx, NewObserver(
				func(ctx context.Context, value T) Ack {
					promise := NewAckPromise()
					prior := last.GetAndSet(promise.Ack())

					s.Submit(ctx, func(ctx context.Context) {
						prior.Await(ctx)
						ack := destination.OnNext(ctx, value)
						kind, err := ack.Await(ctx)
						if err != nil {
							promise.Reject(err)
							return
						}
						promise.Resolve(kind)
					})

					return promise.Ack()
				},
				func(ctx context.Context, err error) {
					prior := last.Get()
					s.Submit(ctx, func(ctx context.Context) {
						prior.Await(ctx)
						destination.OnError(ctx, err)
					})
				},
				func(ctx context.Context) {
					prior := last.Get()
					s.Submit(ctx, func(ctx context.Context) {
						prior.Await(ctx)
						destination.OnComplete(ctx)
					})
				},
			))
		})
	}
}

// DefaultObserveOn is ObserveOn using the package-level default scheduler
// installed with SetDefaultScheduler.
func DefaultObserveOn[T any]() func(Observable[T]) Observable[T] {
	return ObserveOn[T](requireDefaultScheduler())
}

// SubscribeOn defers the call to source.Subscribe itself onto s, instead
// of running it on the caller's goroutine (§4.3 "subscribeOn": "defers
// the subscribeFn itself onto s").
func SubscribeOn[T any](s Scheduler) func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return Create(func(ctx context.Context, destination Observer[T]) Cancelable {
			cancelable := NewSingleAssignmentCancelable()
			s.Submit(ctx, func(ctx context.Context) {
				cancelable.SetCancelable(source.Subscribe(ctx, destination))
			})
			return cancelable
		})
	}
}

// DefaultSubscribeOn is SubscribeOn using the package-level default
// scheduler installed with SetDefaultScheduler.
func DefaultSubscribeOn[T any]() func(Observable[T]) Observable[T] {
	return SubscribeOn[T](requireDefaultScheduler())
}

// Buffered inserts a BufferedObserver between source and its subscriber
// so upstream may push without awaiting acks (§4.3 "buffered / sync").
func Buffered[T any](s Scheduler) func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return Create(func(ctx context.Context, destination Observer[T]) Cancelable {
			return source.Subscribe(ctx, NewBufferedObserver[T](destination, s))
		})
	}
}

// Sync is an alias for Buffered under the name the operator catalogue
// also lists it by.
func Sync[T any](s Scheduler) func(Observable[T]) Observable[T] {
	return Buffered[T](s)
}
