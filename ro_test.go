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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSchedulerWiresConvenienceConstructors(t *testing.T) {
	is := assert.New(t)

	is.Nil(GetDefaultScheduler())
	is.Panics(func() { DefaultContinuous(func(i int) int { return i }) })

	SetDefaultScheduler(&inlineScheduler{})
	defer SetDefaultScheduler(nil)

	values, err := Collect(context.Background(), Take[int](3)(DefaultContinuous(func(i int) int { return i })))
	is.NoError(err)
	is.Equal([]int{0, 1, 2}, values)

	values, err = Collect(context.Background(), DefaultObserveOn[int]()(FromSequence(1, 2, 3)))
	is.NoError(err)
	is.Equal([]int{1, 2, 3}, values)

	values, err = Collect(context.Background(), DefaultSubscribeOn[int]()(FromSequence(1, 2, 3)))
	is.NoError(err)
	is.Equal([]int{1, 2, 3}, values)
}

func TestOnUnhandledErrorAndDroppedNotificationHooks(t *testing.T) {
	is := assert.New(t)

	var gotErr error
	SetOnUnhandledError(func(ctx context.Context, err error) { gotErr = err })
	defer SetOnUnhandledError(nil)

	boom := context.DeadlineExceeded
	OnUnhandledError(context.Background(), boom)
	is.Equal(boom, gotErr)

	var gotNotification string
	SetOnDroppedNotification(func(ctx context.Context, n fmt.Stringer) { gotNotification = n.String() })
	defer SetOnDroppedNotification(nil)

	OnDroppedNotification(context.Background(), NewNotificationNext(42))
	is.Equal("Next(42)", gotNotification)
}
