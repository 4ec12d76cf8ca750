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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObserveOnPreservesOrder(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	s := &inlineScheduler{}
	values, err := Collect(context.Background(), ObserveOn[int](s)(FromSequence(1, 2, 3)))
	is.NoError(err)
	is.Equal([]int{1, 2, 3}, values)
}

func TestSubscribeOnDefersSubscription(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	s := &inlineScheduler{}
	values, err := Collect(context.Background(), SubscribeOn[int](s)(FromSequence(1, 2, 3)))
	is.NoError(err)
	is.Equal([]int{1, 2, 3}, values)
}

func TestBufferedForwardsAllItems(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	s := &inlineScheduler{}
	values, err := Collect(context.Background(), Buffered[int](s)(FromSequence(1, 2, 3)))
	is.NoError(err)
	is.Equal([]int{1, 2, 3}, values)
}
