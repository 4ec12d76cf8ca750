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

// mergeAckBuffer serializes the acknowledgements of a merge operator's
// inner subscriptions (§4.8). scheduleNext chains a new Ack onto the
// last one seen so far; scheduleDone chains a terminal action after
// every Ack scheduled before it, and from that point on every
// scheduleNext resolves to Done without being chained at all.
type mergeAckBuffer struct {
	mu   sync.Mutex
	last Ack
	done bool
}

func newMergeAckBuffer() *mergeAckBuffer {
	return &mergeAckBuffer{last: ContinueAck()}
}

func (b *mergeAckBuffer) scheduleNext(ack Ack) Ack {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.done {
		return DoneAck()
	}

	chained := chainedAck{prev: b.last, next: ack}
	b.last = chained
	return chained
}

// scheduleDone arranges for terminal to run exactly once, after every
// Ack scheduled before this call has resolved.
func (b *mergeAckBuffer) scheduleDone(ctx context.Context, terminal func(ctx context.Context)) {
	b.mu.Lock()
	if b.done {
		b.mu.Unlock()
		return
	}
	prev := b.last
	b.done = true
	b.mu.Unlock()

	go func() {
		prev.Await(ctx)
		terminal(ctx)
	}()
}

type chainedAck struct {
	prev Ack
	next Ack
}

func (c chainedAck) Await(ctx context.Context) (AckKind, error) {
	if _, err := c.prev.Await(ctx); err != nil {
		return Done, err
	}
	return c.next.Await(ctx)
}
