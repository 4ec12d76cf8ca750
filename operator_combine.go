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
	"sync"

	"github.com/samber/lo"
)

// Flatten subscribes to each inner Observable in turn, starting the next
// one only after the current one completes, and forwards its items in
// order (§4.3 "concat": "subscribe to next inner only after previous
// completes; preserves full order"). flatMap is Map followed by Flatten.
func Flatten[T any]() func(Observable[Observable[T]]) Observable[T] {
	return func(source Observable[Observable[T]]) Observable[T] {
		return Create(func(ctx context.Context, destination Observer[T]) Cancelable {
			var (
				mu           sync.Mutex
				queue        []Observable[T]
				upstreamDone bool
				active       bool
			)

			composite := NewCompositeCancelable()

			var subscribeNext func()
			subscribeNext = func() {
				mu.Lock()
				if active {
					mu.Unlock()
					return
				}
				if len(queue) == 0 {
					done := upstreamDone
					mu.Unlock()
					if done {
						destination.OnComplete(ctx)
					}
					return
				}

				next := queue[0]
				queue = queue[1:]
				active = true
				mu.Unlock()

				inner := next.Subscribe(ctx, NewObserver(
					func(ctx context.Context, value T) Ack {
						return destination.OnNext(ctx, value)
					},
					destination.OnError,
					func(ctx context.Context) {
						mu.Lock()
						active = false
						mu.Unlock()
						subscribeNext()
					},
				))
				composite.Add(inner)
			}

			outer := source.Subscribe(ctx, NewObserver(
				func(ctx context.Context, inner Observable[T]) Ack {
					mu.Lock()
					queue = append(queue, inner)
					mu.Unlock()
					subscribeNext()
					return ContinueAck()
				},
				destination.OnError,
				func(ctx context.Context) {
					mu.Lock()
					upstreamDone = true
					idle := !active && len(queue) == 0
					mu.Unlock()
					if idle {
						destination.OnComplete(ctx)
					}
				},
			))
			composite.Add(outer)

			return composite
		})
	}
}

// FlatMap maps every item to an inner Observable and concatenates the
// results, preserving source order (§4.3 algebraic law: map(f).flatten
// == flatMap(f)).
func FlatMap[T, R any](f func(T) Observable[R]) func(Observable[T]) Observable[R] {
	return func(source Observable[T]) Observable[R] {
		return Flatten[R]()(Map[T, Observable[R]](f)(source))
	}
}

// fromSlice builds an Observable that emits each element of items, in
// order, then completes.
func fromSlice[T any](items []T) Observable[T] {
	return Create(func(ctx context.Context, destination Observer[T]) Cancelable {
		for _, item := range items {
			kind, err := destination.OnNext(ctx, item).Await(ctx)
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

// Concat subscribes to sources one at a time, in order, emitting all of
// one before moving on to the next.
func Concat[T any](sources ...Observable[T]) Observable[T] {
	return Flatten[T]()(fromSlice(sources))
}

// MergeObservable subscribes to every inner Observable as soon as it
// arrives and interleaves their items as they are produced, completing
// once the outer and every inner have completed (§4.3 "merge": "subscribe
// to all as they arrive; completion waits for all via ref-counting").
func MergeObservable[T any]() func(Observable[Observable[T]]) Observable[T] {
	return func(source Observable[Observable[T]]) Observable[T] {
		return Create(func(ctx context.Context, destination Observer[T]) Cancelable {
			buffer := newMergeAckBuffer()
			composite := NewCompositeCancelable()
			refCount := NewRefCountCancelable(func() {
				buffer.scheduleDone(ctx, destination.OnComplete)
			})

			outer := source.Subscribe(ctx, NewObserver(
				func(ctx context.Context, inner Observable[T]) Ack {
					childRef := refCount.Acquire()
					innerSub := inner.Subscribe(ctx, NewObserver(
						func(ctx context.Context, value T) Ack {
							return buffer.scheduleNext(destination.OnNext(ctx, value))
						},
						destination.OnError,
						func(ctx context.Context) {
							childRef.Cancel()
						},
					))
					composite.Add(innerSub)
					return ContinueAck()
				},
				destination.OnError,
				func(ctx context.Context) {
					refCount.Cancel()
				},
			))
			composite.Add(outer)

			return composite
		})
	}
}

// Merge subscribes to every source concurrently and interleaves their
// items as they arrive.
func Merge[T any](sources ...Observable[T]) Observable[T] {
	return MergeObservable[T]()(fromSlice(sources))
}

// zipQueueItem holds a value awaiting its pairing partner, plus the
// promise the producer that pushed it is blocked on.
type zipQueueItem[T any] struct {
	value   T
	promise *AckPromise
}

// Zip2 pairs items from a and b by position: the side that produces
// faster buffers its unmatched items under a lock until the other side
// catches up (§4.3 "zip": "two queues under a lock; completes when
// either side completes with its queue empty").
func Zip2[A, B any](a Observable[A], b Observable[B]) Observable[lo.Tuple2[A, B]] {
	return Create(func(ctx context.Context, destination Observer[lo.Tuple2[A, B]]) Cancelable {
		var (
			mu           sync.Mutex
			queueA       []zipQueueItem[A]
			queueB       []zipQueueItem[B]
			doneA, doneB bool
			finished     bool
		)

		forwardPairedAck := func(ack Ack, promise *AckPromise) Ack {
			go func() {
				kind, err := ack.Await(ctx)
				if err != nil {
					promise.Reject(err)
					return
				}
				promise.Resolve(kind)
			}()
			return ack
		}

		composite := NewCompositeCancelable()

		subA := a.Subscribe(ctx, NewObserver(
			func(ctx context.Context, value A) Ack {
				mu.Lock()
				if finished {
					mu.Unlock()
					return DoneAck()
				}
				if len(queueB) > 0 {
					partner := queueB[0]
					queueB = queueB[1:]
					mu.Unlock()

					ack := destination.OnNext(ctx, lo.Tuple2[A, B]{A: value, B: partner.value})
					return forwardPairedAck(ack, partner.promise)
				}

				promise := NewAckPromise()
				queueA = append(queueA, zipQueueItem[A]{value: value, promise: promise})
				mu.Unlock()
				return promise.Ack()
			},
			func(ctx context.Context, err error) {
				mu.Lock()
				finished = true
				mu.Unlock()
				destination.OnError(ctx, err)
			},
			func(ctx context.Context) {
				mu.Lock()
				doneA = true
				complete := !finished && len(queueA) == 0
				if complete {
					finished = true
				}
				mu.Unlock()
				if complete {
					destination.OnComplete(ctx)
				}
			},
		))
		composite.Add(subA)

		subB := b.Subscribe(ctx, NewObserver(
			func(ctx context.Context, value B) Ack {
				mu.Lock()
				if finished {
					mu.Unlock()
					return DoneAck()
				}
				if len(queueA) > 0 {
					partner := queueA[0]
					queueA = queueA[1:]
					mu.Unlock()

					ack := destination.OnNext(ctx, lo.Tuple2[A, B]{A: partner.value, B: value})
					return forwardPairedAck(ack, partner.promise)
				}

				promise := NewAckPromise()
				queueB = append(queueB, zipQueueItem[B]{value: value, promise: promise})
				mu.Unlock()
				return promise.Ack()
			},
			func(ctx context.Context, err error) {
				mu.Lock()
				finished = true
				mu.Unlock()
				destination.OnError(ctx, err)
			},
			func(ctx context.Context) {
				mu.Lock()
				doneB = true
				complete := !finished && len(queueB) == 0
				if complete {
					finished = true
				}
				mu.Unlock()
				if complete {
					destination.OnComplete(ctx)
				}
			},
		))
		composite.Add(subB)

		return composite
	})
}
