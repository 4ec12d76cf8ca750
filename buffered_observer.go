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
	"sync/atomic"
)

// bufferedObserver absorbs producer pushes without back-pressure (§4.5):
// OnNext enqueues and returns Continue synchronously, regardless of
// whether the wrapped observer is ready. A single drain task, posted on
// scheduler, pops the queue and awaits each item's Ack in turn, stopping
// once the wrapped observer's Ack resolves to Done or a terminal event
// is reached. From then on OnNext drops the item and returns Done.
type bufferedObserver[T any] struct {
	inner      Observer[T]
	scheduler  Scheduler
	mu         sync.Mutex
	queue      []Notification[T]
	draining   int32
	terminated bool
}

// NewBufferedObserver wraps inner so producers can push without
// awaiting its Ack; draining is posted onto scheduler (§5 "the internal
// buffered observer introduce[s] actual thread hops by posting tasks
// onto the scheduler").
func NewBufferedObserver[T any](inner Observer[T], scheduler Scheduler) Observer[T] {
	return &bufferedObserver[T]{inner: inner, scheduler: scheduler}
}

func (b *bufferedObserver[T]) OnNext(ctx context.Context, value T) Ack {
	if !b.enqueue(ctx, NewNotificationNext(value)) {
		return DoneAck()
	}
	return ContinueAck()
}

func (b *bufferedObserver[T]) OnError(ctx context.Context, err error) {
	b.enqueue(ctx, NewNotificationError[T](err))
}

func (b *bufferedObserver[T]) OnComplete(ctx context.Context) {
	b.enqueue(ctx, NewNotificationComplete[T]())
}

func (b *bufferedObserver[T]) enqueue(ctx context.Context, n Notification[T]) bool {
	b.mu.Lock()
	if b.terminated {
		b.mu.Unlock()
		OnDroppedNotification(ctx, n)
		return false
	}

	if n.Kind != KindNext {
		b.terminated = true
	}

	b.queue = append(b.queue, n)
	b.mu.Unlock()

	b.ensureDraining(ctx)
	return true
}

func (b *bufferedObserver[T]) ensureDraining(ctx context.Context) {
	if atomic.CompareAndSwapInt32(&b.draining, 0, 1) {
		b.scheduler.Submit(ctx, b.drain)
	}
}

func (b *bufferedObserver[T]) drain(ctx context.Context) {
	for {
		b.mu.Lock()
		if len(b.queue) == 0 {
			atomic.StoreInt32(&b.draining, 0)
			b.mu.Unlock()
			return
		}

		n := b.queue[0]
		b.queue = b.queue[1:]
		b.mu.Unlock()

		ack := dematerializeOnto(ctx, n, b.inner)
		if kind, _ := ack.Await(ctx); kind == Done {
			b.mu.Lock()
			b.terminated = true
			b.queue = nil
			atomic.StoreInt32(&b.draining, 0)
			b.mu.Unlock()
			return
		}
	}
}

func (b *bufferedObserver[T]) IsDone() bool      { return b.inner.IsDone() }
func (b *bufferedObserver[T]) HasThrown() bool   { return b.inner.HasThrown() }
func (b *bufferedObserver[T]) IsCompleted() bool { return b.inner.IsCompleted() }
