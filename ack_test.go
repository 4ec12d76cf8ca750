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
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContinueAndDoneAck(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	kind, err := ContinueAck().Await(context.Background())
	is.Equal(Continue, kind)
	is.NoError(err)

	kind, err = DoneAck().Await(context.Background())
	is.Equal(Done, kind)
	is.NoError(err)
}

func TestFailedAck(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	boom := errors.New("boom")
	kind, err := FailedAck(boom).Await(context.Background())
	is.Equal(Done, kind)
	is.Equal(boom, err)
}

func TestAckOf(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	kind, _ := AckOf(Continue).Await(context.Background())
	is.Equal(Continue, kind)

	kind, _ = AckOf(Done).Await(context.Background())
	is.Equal(Done, kind)
}

func TestAckPromiseResolveIsIdempotent(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	p := NewAckPromise()
	p.Resolve(Continue)
	p.Resolve(Done)

	kind, err := p.Ack().Await(context.Background())
	is.Equal(Continue, kind, "the first resolution wins")
	is.NoError(err)
}

func TestAckPromiseRejectCarriesError(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	boom := errors.New("boom")
	p := NewAckPromise()
	p.Reject(boom)
	p.Resolve(Continue)

	kind, err := p.Ack().Await(context.Background())
	is.Equal(Done, kind)
	is.Equal(boom, err)
}

func TestAckPromiseAwaitBlocksUntilResolved(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	p := NewAckPromise()
	go func() {
		time.Sleep(10 * time.Millisecond)
		p.Resolve(Continue)
	}()

	kind, err := p.Ack().Await(context.Background())
	is.Equal(Continue, kind)
	is.NoError(err)
}

func TestAckPromiseAwaitHonorsContextCancellation(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewAckPromise()
	kind, err := p.Ack().Await(ctx)
	is.Equal(Done, kind)
	is.NoError(err)
}
