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
	"sync/atomic"
)

// Subject is simultaneously the ingestion side (Observer) and the
// subscription side (Observable) of a multicast stream (§4.7).
type Subject[T any] interface {
	Observer[T]
	Observable[T]
	// HasObservers reports whether the subject currently has subscribers.
	HasObservers() bool
	// CountObservers returns the current subscriber count.
	CountObservers() int
}

// cachePolicy decides what a subject remembers across onNext calls and
// what a late subscriber replays on subscription — the one axis
// PublishSubject, BehaviorSubject and ReplaySubject differ on. Everything
// else (the CAS state machine, fan-out, subscriber bookkeeping) is
// shared.
type cachePolicy[T any] interface {
	// record returns the history a new subscriber must replay after
	// folding in value.
	record(history []T, value T) []T
}

// subjectState is the immutable snapshot a subject's atomic.Pointer
// holds. Every transition replaces it wholesale via CAS retry (§4.7,
// §5: "single atomic cell with CAS + retry loop; no locks").
type subjectState[T any] struct {
	status    Kind
	nextID    uint64
	observers map[uint64]Observer[T]
	history   []T
	err       error
}

func emptySubjectState[T any](seed []T) *subjectState[T] {
	return &subjectState[T]{status: KindNext, observers: map[uint64]Observer[T]{}, history: seed}
}

func (s *subjectState[T]) withObserver(id uint64, o Observer[T]) *subjectState[T] {
	next := make(map[uint64]Observer[T], len(s.observers)+1)
	for k, v := range s.observers {
		next[k] = v
	}
	next[id] = o
	return &subjectState[T]{status: s.status, nextID: s.nextID, observers: next, history: s.history, err: s.err}
}

func (s *subjectState[T]) withoutObserver(id uint64) *subjectState[T] {
	if _, ok := s.observers[id]; !ok {
		return s
	}
	next := make(map[uint64]Observer[T], len(s.observers))
	for k, v := range s.observers {
		if k != id {
			next[k] = v
		}
	}
	return &subjectState[T]{status: s.status, nextID: s.nextID, observers: next, history: s.history, err: s.err}
}

type subjectImpl[T any] struct {
	state  atomic.Pointer[subjectState[T]]
	policy cachePolicy[T]
}

func newSubjectImpl[T any](seed []T, policy cachePolicy[T]) *subjectImpl[T] {
	s := &subjectImpl[T]{policy: policy}
	s.state.Store(emptySubjectState[T](seed))
	return s
}

// Subscribe implements Observable. Per §4.7's transition table: while
// the subject is active the observer joins the subscriber set and
// receives the current cache first; once the subject has reached
// Complete, every new subscriber is replayed the cache then the
// terminal event, and the subject's own subscriber set is left alone.
func (s *subjectImpl[T]) Subscribe(ctx context.Context, destination Observer[T]) Cancelable {
	for {
		wrapped := newConnectableObserver[T](destination)
		old := s.state.Load()

		for _, v := range old.history {
			wrapped.OnNext(ctx, v)
		}

		switch old.status {
		case KindError:
			wrapped.OnError(ctx, old.err)
			wrapped.connect(ctx)
			return NewBooleanCancelable(nil)
		case KindComplete:
			wrapped.OnComplete(ctx)
			wrapped.connect(ctx)
			return NewBooleanCancelable(nil)
		}

		id := old.nextID
		next := old.withObserver(id, wrapped)
		next.nextID = id + 1

		if s.state.CompareAndSwap(old, next) {
			wrapped.connect(ctx)
			return NewBooleanCancelable(func() {
				s.removeObserver(id)
			})
		}
	}
}

func (s *subjectImpl[T]) removeObserver(id uint64) {
	for {
		old := s.state.Load()
		if old.status != KindNext {
			return
		}
		next := old.withoutObserver(id)
		if next == old || s.state.CompareAndSwap(old, next) {
			return
		}
	}
}

// OnNext implements Observer. It updates the cache per the subject's
// policy and fans the value out to every current subscriber, returning
// an Ack that represents the conjunction of their acknowledgements
// (§4.7 "Fan-out back-pressure").
func (s *subjectImpl[T]) OnNext(ctx context.Context, value T) Ack {
	var snapshot *subjectState[T]

	for {
		old := s.state.Load()
		if old.status != KindNext {
			OnDroppedNotification(ctx, NewNotificationNext(value))
			return DoneAck()
		}

		next := &subjectState[T]{
			status:    old.status,
			nextID:    old.nextID,
			observers: old.observers,
			history:   s.policy.record(old.history, value),
		}

		if s.state.CompareAndSwap(old, next) {
			snapshot = next
			break
		}
	}

	return s.broadcastNext(ctx, snapshot, value)
}

func (s *subjectImpl[T]) broadcastNext(ctx context.Context, snapshot *subjectState[T], value T) Ack {
	if len(snapshot.observers) == 0 {
		return ContinueAck()
	}

	acks := make([]fanoutEntry[T], 0, len(snapshot.observers))
	for id, o := range snapshot.observers {
		acks = append(acks, fanoutEntry[T]{id: id, ack: o.OnNext(ctx, value)})
	}

	return fanoutAck[T]{ctx: ctx, subject: s, entries: acks}
}

type fanoutEntry[T any] struct {
	id  uint64
	ack Ack
}

// fanoutAck awaits every subscriber's Ack from one OnNext broadcast and
// resolves to the conjunction: Continue only if every subscriber said
// Continue. Subscribers that resolved Done (or whose future failed) are
// removed from the subject's subscriber set (§4.7: "When it returns
// Done, the subject removes it from the subscribers list atomically").
type fanoutAck[T any] struct {
	ctx     context.Context
	subject *subjectImpl[T]
	entries []fanoutEntry[T]
}

func (f fanoutAck[T]) Await(ctx context.Context) (AckKind, error) {
	result := Continue
	var firstErr error

	for _, e := range f.entries {
		kind, err := e.ack.Await(ctx)
		if err != nil || kind == Done {
			f.subject.removeObserver(e.id)
			result = Done
			if err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}

	return result, firstErr
}

// OnError implements Observer: the subject transitions to Complete with
// err and fans the terminal out to every current subscriber exactly
// once (§4.7, §7 "A subject fan-outs onError to every current
// subscriber atomically with the Complete transition").
func (s *subjectImpl[T]) OnError(ctx context.Context, err error) {
	snapshot := s.transitionToTerminal(KindError, err)
	if snapshot == nil {
		OnDroppedNotification(ctx, NewNotificationError[T](err))
		return
	}

	for _, o := range snapshot.observers {
		o.OnError(ctx, err)
	}
}

// OnComplete implements Observer.
func (s *subjectImpl[T]) OnComplete(ctx context.Context) {
	snapshot := s.transitionToTerminal(KindComplete, nil)
	if snapshot == nil {
		OnDroppedNotification(ctx, NewNotificationComplete[T]())
		return
	}

	for _, o := range snapshot.observers {
		o.OnComplete(ctx)
	}
}

func (s *subjectImpl[T]) transitionToTerminal(status Kind, err error) *subjectState[T] {
	for {
		old := s.state.Load()
		if old.status != KindNext {
			return nil
		}

		next := &subjectState[T]{status: status, nextID: old.nextID, observers: old.observers, history: old.history, err: err}
		if s.state.CompareAndSwap(old, next) {
			return next
		}
	}
}

func (s *subjectImpl[T]) IsDone() bool {
	return s.state.Load().status != KindNext
}

func (s *subjectImpl[T]) HasThrown() bool {
	return s.state.Load().status == KindError
}

func (s *subjectImpl[T]) IsCompleted() bool {
	return s.state.Load().status == KindComplete
}

func (s *subjectImpl[T]) HasObservers() bool {
	return len(s.state.Load().observers) > 0
}

func (s *subjectImpl[T]) CountObservers() int {
	return len(s.state.Load().observers)
}
