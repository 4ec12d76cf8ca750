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
)

// guardUserCode runs fn, converting a panic into an *observerError
// instead of letting it unwind through the caller. Operators use this
// for the predicate/mapping functions users hand them (§4.3 "user-code
// protection"): a panic raised before the operator has called
// downstream is routed to onError itself, and upstream is told Done.
func guardUserCode(fn func()) error {
	var panicErr error
	lo.TryCatchWithErrorValue(
		func() error {
			fn()
			return nil
		},
		func(e any) {
			panicErr = newObserverError(recoverValueToError(e))
		},
	)
	return panicErr
}

// Map applies f to every item, preserving ordering and back-pressure.
func Map[T, R any](f func(T) R) func(Observable[T]) Observable[R] {
	return func(source Observable[T]) Observable[R] {
		return Create(func(ctx context.Context, destination Observer[R]) Cancelable {
			return source.Subscribe(ctx, NewObserver(
				func(ctx context.Context, value T) Ack {
					var mapped R
					if err := guardUserCode(func() { mapped = f(value) }); err != nil {
						destination.OnError(ctx, err)
						return DoneAck()
					}
					return destination.OnNext(ctx, mapped)
				},
				destination.OnError,
				destination.OnComplete,
			))
		})
	}
}

// Filter forwards items for which p holds; dropped items resolve
// upstream to Continue without reaching destination.
func Filter[T any](p func(T) bool) func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return Create(func(ctx context.Context, destination Observer[T]) Cancelable {
			return source.Subscribe(ctx, NewObserver(
				func(ctx context.Context, value T) Ack {
					var keep bool
					if err := guardUserCode(func() { keep = p(value) }); err != nil {
						destination.OnError(ctx, err)
						return DoneAck()
					}
					if !keep {
						return ContinueAck()
					}
					return destination.OnNext(ctx, value)
				},
				destination.OnError,
				destination.OnComplete,
			))
		})
	}
}

// Take forwards the first n items; on the n-th it completes downstream
// and stops upstream by returning Done.
func Take[T any](n int) func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return Create(func(ctx context.Context, destination Observer[T]) Cancelable {
			if n <= 0 {
				destination.OnComplete(ctx)
				return NewBooleanCancelable(nil)
			}

			count := 0
			return source.Subscribe(ctx, NewObserver(
				func(ctx context.Context, value T) Ack {
					count++
					ack := destination.OnNext(ctx, value)
					if count >= n {
						destination.OnComplete(ctx)
						return DoneAck()
					}
					return ack
				},
				destination.OnError,
				destination.OnComplete,
			))
		})
	}
}

// TakeRight keeps a ring buffer of the n most recent items and emits
// them, in order, once the source completes.
func TakeRight[T any](n int) func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return Create(func(ctx context.Context, destination Observer[T]) Cancelable {
			if n <= 0 {
				return source.Subscribe(ctx, NewObserver(
					func(ctx context.Context, value T) Ack { return ContinueAck() },
					destination.OnError,
					destination.OnComplete,
				))
			}

			buffer := make([]T, 0, n)
			return source.Subscribe(ctx, NewObserver(
				func(ctx context.Context, value T) Ack {
					buffer = append(buffer, value)
					if len(buffer) > n {
						buffer = buffer[1:]
					}
					return ContinueAck()
				},
				destination.OnError,
				func(ctx context.Context) {
					for _, v := range buffer {
						destination.OnNext(ctx, v)
					}
					destination.OnComplete(ctx)
				},
			))
		})
	}
}

// Drop swallows the first n items, acknowledging them immediately, and
// forwards everything after.
func Drop[T any](n int) func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return Create(func(ctx context.Context, destination Observer[T]) Cancelable {
			count := 0
			return source.Subscribe(ctx, NewObserver(
				func(ctx context.Context, value T) Ack {
					if count < n {
						count++
						return ContinueAck()
					}
					return destination.OnNext(ctx, value)
				},
				destination.OnError,
				destination.OnComplete,
			))
		})
	}
}

// TakeWhile forwards items while p holds; the first item for which p
// is false completes downstream and stops upstream.
func TakeWhile[T any](p func(T) bool) func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return Create(func(ctx context.Context, destination Observer[T]) Cancelable {
			return source.Subscribe(ctx, NewObserver(
				func(ctx context.Context, value T) Ack {
					var keep bool
					if err := guardUserCode(func() { keep = p(value) }); err != nil {
						destination.OnError(ctx, err)
						return DoneAck()
					}
					if !keep {
						destination.OnComplete(ctx)
						return DoneAck()
					}
					return destination.OnNext(ctx, value)
				},
				destination.OnError,
				destination.OnComplete,
			))
		})
	}
}

// DropWhile swallows items until the first one for which p is false,
// then forwards that item and everything after.
func DropWhile[T any](p func(T) bool) func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return Create(func(ctx context.Context, destination Observer[T]) Cancelable {
			dropping := true
			return source.Subscribe(ctx, NewObserver(
				func(ctx context.Context, value T) Ack {
					if dropping {
						var keep bool
						if err := guardUserCode(func() { keep = p(value) }); err != nil {
							destination.OnError(ctx, err)
							return DoneAck()
						}
						if keep {
							return ContinueAck()
						}
						dropping = false
					}
					return destination.OnNext(ctx, value)
				},
				destination.OnError,
				destination.OnComplete,
			))
		})
	}
}

// Scan emits the running accumulator for every input item.
func Scan[T, R any](seed R, op func(R, T) R) func(Observable[T]) Observable[R] {
	return func(source Observable[T]) Observable[R] {
		return Create(func(ctx context.Context, destination Observer[R]) Cancelable {
			acc := seed
			return source.Subscribe(ctx, NewObserver(
				func(ctx context.Context, value T) Ack {
					acc = op(acc, value)
					return destination.OnNext(ctx, acc)
				},
				destination.OnError,
				destination.OnComplete,
			))
		})
	}
}

// FoldLeft accumulates silently and emits a single value at completion.
func FoldLeft[T, R any](seed R, op func(R, T) R) func(Observable[T]) Observable[R] {
	return func(source Observable[T]) Observable[R] {
		return Create(func(ctx context.Context, destination Observer[R]) Cancelable {
			acc := seed
			return source.Subscribe(ctx, NewObserver(
				func(ctx context.Context, value T) Ack {
					acc = op(acc, value)
					return ContinueAck()
				},
				destination.OnError,
				func(ctx context.Context) {
					destination.OnNext(ctx, acc)
					destination.OnComplete(ctx)
				},
			))
		})
	}
}
