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

	"github.com/stretchr/testify/assert"
)

func TestCollectEmitsValuesInOrder(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	values, err := Collect(context.Background(), FromSequence(1, 2, 3))
	is.NoError(err)
	is.Equal([]int{1, 2, 3}, values)
}

func TestCollectPropagatesError(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	boom := errors.New("boom")
	values, err := Collect(context.Background(), ErrorObservable[int](boom))
	is.Equal(boom, err)
	is.Empty(values)
}

func TestCreatePanicInSubscribeRoutesToOnError(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	obs := Create(func(ctx context.Context, destination Observer[int]) Cancelable {
		panic("boom")
	})

	values, err := Collect(context.Background(), obs)
	is.Empty(values)
	is.Error(err)
}

func TestPublishSharesOneUpstreamExecution(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	subscribeCount := 0
	source := Create(func(ctx context.Context, destination Observer[int]) Cancelable {
		subscribeCount++
		destination.OnNext(ctx, 1)
		destination.OnComplete(ctx)
		return NewBooleanCancelable(nil)
	})

	connectable := Publish(source)

	var firstValues, secondValues []int
	connectable.Subscribe(context.Background(), NewObserver(
		func(ctx context.Context, v int) Ack { firstValues = append(firstValues, v); return ContinueAck() },
		func(ctx context.Context, err error) {},
		func(ctx context.Context) {},
	))
	connectable.Subscribe(context.Background(), NewObserver(
		func(ctx context.Context, v int) Ack { secondValues = append(secondValues, v); return ContinueAck() },
		func(ctx context.Context, err error) {},
		func(ctx context.Context) {},
	))

	connectable.Connect(context.Background())

	is.Equal(1, subscribeCount)
	is.Equal([]int{1}, firstValues)
	is.Equal([]int{1}, secondValues)
}

func TestPublishBehaviorReplaysMostRecentValue(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	connectable := PublishBehavior(Never[int](), 42)
	connectable.Connect(context.Background())

	var values []int
	connectable.Subscribe(context.Background(), NewObserver(
		func(ctx context.Context, v int) Ack { values = append(values, v); return ContinueAck() },
		func(ctx context.Context, err error) {},
		func(ctx context.Context) {},
	))

	is.Equal([]int{42}, values)
}
