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

	"github.com/creyer/monifu/internal/xsync"
)

// SubscribeFunc is the constructor function passed to Create: given a
// destination Observer, it starts producing values and returns a
// Cancelable that tears down whatever resources it allocated.
type SubscribeFunc[T any] func(ctx context.Context, destination Observer[T]) Cancelable

// Observable is a factory for streams (§2): calling Subscribe starts one
// independent execution that pushes values into destination according to
// the Observer grammar, honoring back-pressure through the Ack each
// OnNext call returns.
type Observable[T any] interface {
	Subscribe(ctx context.Context, destination Observer[T]) Cancelable
}

var _ Observable[int] = (*observableImpl[int])(nil)

// Create builds an Observable from a SubscribeFunc (§6 "create"). Any
// panic raised by subscribe itself — as opposed to a panic inside a
// value the subscribe function pushes through destination, which
// SafeObserver already handles — is routed to destination.OnError and
// the subscription is canceled (§4.3 "Exception inside subscribeFn",
// §4.9).
func Create[T any](subscribe SubscribeFunc[T]) Observable[T] {
	return &observableImpl[T]{subscribe: subscribe}
}

type observableImpl[T any] struct {
	subscribe SubscribeFunc[T]
}

func (o *observableImpl[T]) Subscribe(ctx context.Context, destination Observer[T]) Cancelable {
	cancelable := NewSingleAssignmentCancelable()

	lo.TryCatchWithErrorValue(
		func() error {
			cancelable.SetCancelable(o.subscribe(ctx, destination))
			return nil
		},
		func(e any) {
			destination.OnError(ctx, newObservableError(recoverValueToError(e)))
			cancelable.Cancel()
		},
	)

	return cancelable
}

// Collect drains obs synchronously, returning every value it emits
// before completing, or the error it terminated with. If ctx is done
// first, the subscription is canceled and ctx.Err() is returned.
func Collect[T any](ctx context.Context, obs Observable[T]) ([]T, error) {
	var (
		values []T
		err    error
		once   sync.Once
	)
	done := make(chan struct{})

	cancelable := obs.Subscribe(ctx, NewObserver(
		func(ctx context.Context, value T) Ack {
			values = append(values, value)
			return ContinueAck()
		},
		func(ctx context.Context, thrown error) {
			err = thrown
			once.Do(func() { close(done) })
		},
		func(ctx context.Context) {
			once.Do(func() { close(done) })
		},
	))

	select {
	case <-done:
		return values, err
	case <-ctx.Done():
		cancelable.Cancel()
		return nil, ctx.Err()
	}
}

// ConnectableObservable decouples subscription from execution: observers
// subscribe as usual, but the source is only subscribed to — once — when
// Connect is called. This is how multicast (§4.3, §4.7) shares one
// upstream execution across many downstream observers.
type ConnectableObservable[T any] interface {
	Observable[T]
	Connect(ctx context.Context) Cancelable
}

// ConnectableConfig configures a ConnectableObservable's Connector (the
// subject used to fan out to subscribers) and whether that subject is
// replaced the next time Connect runs after a disconnect.
type ConnectableConfig[T any] struct {
	Connector         func() Subject[T]
	ResetOnDisconnect bool
}

func defaultConnector[T any]() Subject[T] {
	return NewPublishSubject[T]()
}

var _ ConnectableObservable[int] = (*connectableObservableImpl[int])(nil)

// Multicast turns source into a ConnectableObservable using config's
// Connector (§4.3 "multicast(subject)").
func Multicast[T any](source Observable[T], config ConnectableConfig[T]) ConnectableObservable[T] {
	if config.Connector == nil {
		panic(ErrConnectableObservableMissingConnectorFactory)
	}

	return &connectableObservableImpl[T]{
		mu:      xsync.NewMutexWithLock(),
		config:  config,
		source:  source,
		subject: config.Connector(),
	}
}

// Publish returns a ConnectableObservable backed by a PublishSubject.
func Publish[T any](source Observable[T]) ConnectableObservable[T] {
	return Multicast(source, ConnectableConfig[T]{Connector: defaultConnector[T], ResetOnDisconnect: true})
}

// PublishBehavior returns a ConnectableObservable backed by a
// BehaviorSubject seeded with initial.
func PublishBehavior[T any](source Observable[T], initial T) ConnectableObservable[T] {
	return Multicast(source, ConnectableConfig[T]{
		Connector:         func() Subject[T] { return NewBehaviorSubject(initial) },
		ResetOnDisconnect: true,
	})
}

// PublishReplay returns a ConnectableObservable backed by a
// ReplaySubject with the given history size (ReplayUnlimitedBufferSize
// for an unbounded history).
func PublishReplay[T any](source Observable[T], bufferSize int) ConnectableObservable[T] {
	return Multicast(source, ConnectableConfig[T]{
		Connector:         func() Subject[T] { return NewReplaySubject[T](bufferSize) },
		ResetOnDisconnect: true,
	})
}

type connectableObservableImpl[T any] struct {
	mu         xsync.Mutex
	config     ConnectableConfig[T]
	source     Observable[T]
	subject    Subject[T]
	cancelable Cancelable
}

func (s *connectableObservableImpl[T]) Connect(ctx context.Context) Cancelable {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancelable != nil && !s.cancelable.IsCanceled() {
		return s.cancelable
	}

	subject := s.subject
	s.cancelable = s.source.Subscribe(ctx, subject)

	if composite, ok := s.cancelable.(CompositeCancelable); ok {
		composite.Add(NewBooleanCancelable(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.config.ResetOnDisconnect {
				s.subject = s.config.Connector()
			}
		}))
	} else {
		inner := s.cancelable
		s.cancelable = NewCompositeCancelable(inner, NewBooleanCancelable(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.config.ResetOnDisconnect {
				s.subject = s.config.Connector()
			}
		}))
	}

	return s.cancelable
}

func (s *connectableObservableImpl[T]) Subscribe(ctx context.Context, destination Observer[T]) Cancelable {
	s.mu.Lock()
	subject := s.subject
	s.mu.Unlock()
	return subject.Subscribe(ctx, destination)
}
