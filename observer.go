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
	"fmt"
	"sync/atomic"

	"github.com/samber/lo"
)

// Context key used to opt out of observer panic capture for a specific
// subscription. Use WithObserverPanicCaptureDisabled to set this value on
// a subscription's context. The key type is unexported to avoid
// collisions with user-defined context keys.
type observerPanicCaptureDisabledKeyType struct{}

var observerPanicCaptureDisabledKey observerPanicCaptureDisabledKeyType

// WithObserverPanicCaptureDisabled returns a derived context that disables
// wrapping observer callbacks with panic-capture for the subscription that
// uses this context. This is intended for benchmarking or performance-
// sensitive pipelines; by default the library keeps panic-capture enabled.
func WithObserverPanicCaptureDisabled(ctx context.Context) context.Context {
	return context.WithValue(ctx, observerPanicCaptureDisabledKey, true)
}

func isObserverPanicCaptureDisabled(ctx context.Context) bool {
	v := ctx.Value(observerPanicCaptureDisabledKey)
	b, ok := v.(bool)
	return ok && b
}

// Observer is the consumer of an Observable. Its grammar (§3, §8): any
// number of OnNext calls, each returning an Ack the caller must Await
// before calling OnNext again, followed by at most one terminal event
// (OnComplete or OnError). After a terminal event, or after any Ack
// resolves to Done, no further events may be delivered. SafeObserver
// (built by NewObserver) drops every event that arrives after a
// terminal event; it does not track Acks, so an OnNext that arrives
// after an Ack resolved to Done still reaches its callback. Producers
// must stop on Done themselves, and observers built by hand must honor
// both rules themselves (see spec §7 "protocol violation").
type Observer[T any] interface {
	// OnNext delivers the next value. It returns an Ack the caller must
	// await before calling OnNext again — this is the back-pressure
	// contract the whole package is built on.
	OnNext(ctx context.Context, value T) Ack
	// OnError delivers a terminal error. Called at most once.
	OnError(ctx context.Context, err error)
	// OnComplete delivers a terminal completion. Called at most once.
	OnComplete(ctx context.Context)

	// IsDone reports whether a terminal event has already been delivered.
	IsDone() bool
	// HasThrown reports whether the terminal event was an error.
	HasThrown() bool
	// IsCompleted reports whether the terminal event was a completion.
	IsCompleted() bool
}

const (
	observerStatusActive int32 = iota
	observerStatusErrored
	observerStatusCompleted
)

var _ Observer[int] = (*safeObserver[int])(nil)

// NewObserver creates an Observer from plain callbacks, wrapped in the
// SafeObserver grammar: at most one terminal event, no events once
// terminated, user panics converted to OnError.
func NewObserver[T any](onNext func(ctx context.Context, value T) Ack, onError func(ctx context.Context, err error), onComplete func(ctx context.Context)) Observer[T] {
	return &safeObserver[T]{
		capturePanics: true,
		onNext:        onNext,
		onError:       onError,
		onComplete:    onComplete,
	}
}

// NewUnsafeObserver creates an Observer like NewObserver but without
// panic recovery. Use only when callers guarantee the callbacks cannot
// panic, or want panics to propagate — mirrors the package's "unsafe"
// naming for performance-optimized constructors.
func NewUnsafeObserver[T any](onNext func(ctx context.Context, value T) Ack, onError func(ctx context.Context, err error), onComplete func(ctx context.Context)) Observer[T] {
	return &safeObserver[T]{
		capturePanics: false,
		onNext:        onNext,
		onError:       onError,
		onComplete:    onComplete,
	}
}

type safeObserver[T any] struct {
	// 0: active, 1: errored, 2: completed
	status        int32
	capturePanics bool
	onNext        func(ctx context.Context, value T) Ack
	onError       func(ctx context.Context, err error)
	onComplete    func(ctx context.Context)
}

func (o *safeObserver[T]) OnNext(ctx context.Context, value T) Ack {
	if o.onNext == nil || atomic.LoadInt32(&o.status) != observerStatusActive {
		OnDroppedNotification(ctx, NewNotificationNext(value))
		return DoneAck()
	}

	return o.tryNext(ctx, value)
}

func (o *safeObserver[T]) OnError(ctx context.Context, err error) {
	if o.onError == nil || !atomic.CompareAndSwapInt32(&o.status, observerStatusActive, observerStatusErrored) {
		OnDroppedNotification(ctx, NewNotificationError[T](err))
		return
	}

	o.tryError(ctx, err)
}

func (o *safeObserver[T]) OnComplete(ctx context.Context) {
	if o.onComplete == nil || !atomic.CompareAndSwapInt32(&o.status, observerStatusActive, observerStatusCompleted) {
		OnDroppedNotification(ctx, NewNotificationComplete[T]())
		return
	}

	o.tryComplete(ctx)
}

func (o *safeObserver[T]) tryNext(ctx context.Context, value T) Ack {
	if !o.capturePanics || isObserverPanicCaptureDisabled(ctx) {
		return o.watch(ctx, o.onNext(ctx, value))
	}

	var ack Ack
	var panicErr error

	lo.TryCatchWithErrorValue(
		func() error {
			ack = o.onNext(ctx, value)
			return nil
		},
		func(e any) {
			panicErr = newObserverError(recoverValueToError(e))
		},
	)

	if panicErr != nil {
		if o.onError == nil {
			OnUnhandledError(ctx, panicErr)
		} else {
			o.tryError(ctx, panicErr)
		}

		return DoneAck()
	}

	return o.watch(ctx, ack)
}

// watch wraps an Ack returned by the wrapped onNext so that, when the
// caller eventually Awaits it, an asynchronous failure is converted into
// OnError the same way a synchronous panic is (§4.4: "If onNext... its
// returned future fails, convert to onError").
func (o *safeObserver[T]) watch(ctx context.Context, ack Ack) Ack {
	if ack == nil {
		return ContinueAck()
	}

	return watchedAck[T]{inner: ack, ctx: ctx, observer: o}
}

type watchedAck[T any] struct {
	inner    Ack
	ctx      context.Context
	observer *safeObserver[T]
}

func (w watchedAck[T]) Await(ctx context.Context) (AckKind, error) {
	kind, err := w.inner.Await(ctx)
	if err != nil {
		if w.observer.onError == nil {
			OnUnhandledError(w.ctx, err)
		} else {
			w.observer.tryError(w.ctx, err)
		}

		return Done, nil
	}

	return kind, nil
}

func (o *safeObserver[T]) tryError(ctx context.Context, err error) {
	if !o.capturePanics || isObserverPanicCaptureDisabled(ctx) {
		o.onError(ctx, err)
		return
	}

	lo.TryCatchWithErrorValue(
		func() error {
			o.onError(ctx, err)
			return nil
		},
		func(e any) {
			OnUnhandledError(ctx, newObserverError(recoverValueToError(e)))
		},
	)
}

func (o *safeObserver[T]) tryComplete(ctx context.Context) {
	if !o.capturePanics || isObserverPanicCaptureDisabled(ctx) {
		o.onComplete(ctx)
		return
	}

	lo.TryCatchWithErrorValue(
		func() error {
			o.onComplete(ctx)
			return nil
		},
		func(e any) {
			OnUnhandledError(ctx, newObserverError(recoverValueToError(e)))
		},
	)
}

func (o *safeObserver[T]) IsDone() bool {
	return atomic.LoadInt32(&o.status) != observerStatusActive
}

func (o *safeObserver[T]) HasThrown() bool {
	return atomic.LoadInt32(&o.status) == observerStatusErrored
}

func (o *safeObserver[T]) IsCompleted() bool {
	return atomic.LoadInt32(&o.status) == observerStatusCompleted
}

/*********************
 * Partial Observers *
 *********************/

// OnNextFunc builds an Observer from only a next callback; errors and
// completion are silently swallowed. Useful for quick pipelines where the
// caller only cares about values.
func OnNextFunc[T any](onNext func(ctx context.Context, value T) Ack) Observer[T] {
	return NewObserver(onNext, func(ctx context.Context, err error) {}, func(ctx context.Context) {})
}

// NoopObserver is an Observer that does nothing and always acknowledges
// Continue.
func NoopObserver[T any]() Observer[T] {
	return NewObserver(
		func(ctx context.Context, value T) Ack { return ContinueAck() },
		func(ctx context.Context, err error) {},
		func(ctx context.Context) {},
	)
}

// PrintObserver is a utility Observer that dumps notifications for debug
// purposes.
func PrintObserver[T any]() Observer[T] {
	return NewObserver(
		func(ctx context.Context, value T) Ack {
			fmt.Printf("Next: %v\n", value)
			return ContinueAck()
		},
		func(ctx context.Context, err error) {
			fmt.Printf("Error: %s\n", err.Error())
		},
		func(ctx context.Context) {
			fmt.Printf("Completed\n")
		},
	)
}
