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

func TestDoOnCompleteRunsAfterDownstreamComplete(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	s := &inlineScheduler{}
	called := false

	_, err := Collect(context.Background(), DoOnComplete[int](s, func(ctx context.Context) { called = true })(FromSequence(1, 2)))
	is.NoError(err)
	is.True(called)
}

func TestDoOnCompletePanicReportsFailureInsteadOfReenteringStream(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	s := &inlineScheduler{}
	values, err := Collect(context.Background(), DoOnComplete[int](s, func(ctx context.Context) { panic("boom") })(FromSequence(1)))
	is.NoError(err)
	is.Equal([]int{1}, values)
	is.Len(s.failures, 1)
}

func TestMaterializeAndDematerializeRoundTrip(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	notifications, err := Collect(context.Background(), Materialize[int]()(FromSequence(1, 2)))
	is.NoError(err)
	is.Len(notifications, 3)
	is.Equal(KindNext, notifications[0].Kind)
	is.Equal(KindNext, notifications[1].Kind)
	is.Equal(KindComplete, notifications[2].Kind)

	values, err := Collect(context.Background(), Dematerialize[int]()(FromSequence(notifications...)))
	is.NoError(err)
	is.Equal([]int{1, 2}, values)
}

func TestMaterializeCapturesError(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	boom := errors.New("boom")
	notifications, err := Collect(context.Background(), Materialize[int]()(ErrorObservable[int](boom)))
	is.NoError(err)
	is.Len(notifications, 1)
	is.Equal(KindError, notifications[0].Kind)
	is.Equal(boom, notifications[0].Err)
}

func TestAsFutureResolvesFirstValue(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	value, ok, err := AsFuture(context.Background(), FromSequence(1, 2, 3))
	is.NoError(err)
	is.True(ok)
	is.Equal(1, value)
}

func TestAsFutureEmptySourceReturnsError(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	_, ok, err := AsFuture(context.Background(), Empty[int]())
	is.False(ok)
	is.Equal(ErrAsFutureEmptySource, err)
}

func TestAsFuturePropagatesSourceError(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	boom := errors.New("boom")
	_, ok, err := AsFuture(context.Background(), ErrorObservable[int](boom))
	is.False(ok)
	is.Equal(boom, err)
}
