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
)

// connectableObserver buffers every event it receives until connect is
// called (§4.6). Subjects use it to deliver cached history to a late
// subscriber atomically: the history is pushed into the buffer before
// the observer is made visible to live broadcasts, then connect drains
// the buffer in order onto the wrapped observer and the wrapper becomes
// transparent for everything after.
type connectableObserver[T any] struct {
	mu         sync.Mutex
	connected  bool
	terminated bool
	inner      Observer[T]
	buffer     []Notification[T]
}

func newConnectableObserver[T any](inner Observer[T]) *connectableObserver[T] {
	return &connectableObserver[T]{inner: inner}
}

func (o *connectableObserver[T]) OnNext(ctx context.Context, value T) Ack {
	o.mu.Lock()
	if o.connected {
		o.mu.Unlock()
		return o.inner.OnNext(ctx, value)
	}
	if o.terminated {
		o.mu.Unlock()
		OnDroppedNotification(ctx, NewNotificationNext(value))
		return DoneAck()
	}
	o.buffer = append(o.buffer, NewNotificationNext(value))
	o.mu.Unlock()
	return ContinueAck()
}

func (o *connectableObserver[T]) OnError(ctx context.Context, err error) {
	o.mu.Lock()
	if o.connected {
		o.mu.Unlock()
		o.inner.OnError(ctx, err)
		return
	}
	if o.terminated {
		o.mu.Unlock()
		OnDroppedNotification(ctx, NewNotificationError[T](err))
		return
	}
	o.terminated = true
	o.buffer = append(o.buffer, NewNotificationError[T](err))
	o.mu.Unlock()
}

func (o *connectableObserver[T]) OnComplete(ctx context.Context) {
	o.mu.Lock()
	if o.connected {
		o.mu.Unlock()
		o.inner.OnComplete(ctx)
		return
	}
	if o.terminated {
		o.mu.Unlock()
		OnDroppedNotification(ctx, NewNotificationComplete[T]())
		return
	}
	o.terminated = true
	o.buffer = append(o.buffer, NewNotificationComplete[T]())
	o.mu.Unlock()
}

func (o *connectableObserver[T]) IsDone() bool      { return o.inner.IsDone() }
func (o *connectableObserver[T]) HasThrown() bool   { return o.inner.HasThrown() }
func (o *connectableObserver[T]) IsCompleted() bool { return o.inner.IsCompleted() }

// connect drains the buffer onto inner in order, respecting back-pressure
// (it stops early if an Ack resolves to Done), then marks the observer
// transparent so every later call reaches inner directly.
func (o *connectableObserver[T]) connect(ctx context.Context) {
	for {
		o.mu.Lock()
		buffer := o.buffer
		o.buffer = nil
		if len(buffer) == 0 {
			o.connected = true
			o.mu.Unlock()
			return
		}
		o.mu.Unlock()

		for _, n := range buffer {
			ack := dematerializeOnto(ctx, n, o.inner)
			if kind, _ := ack.Await(ctx); kind == Done {
				o.mu.Lock()
				o.buffer = nil
				o.connected = true
				o.mu.Unlock()
				return
			}
		}
	}
}
