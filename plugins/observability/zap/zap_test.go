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

package zap

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/creyer/monifu"
)

func TestInstallRoutesUnhandledErrorToLogger(t *testing.T) {
	is := assert.New(t)

	core, logs := observer.New(zapcore.DebugLevel)
	Install(zap.New(core))
	defer monifu.SetOnUnhandledError(nil)

	boom := errors.New("boom")
	monifu.OnUnhandledError(context.Background(), boom)

	entries := logs.All()
	is.Len(entries, 1)
	is.Equal("monifu: unhandled error", entries[0].Message)
}

func TestInstallRoutesDroppedNotificationToLogger(t *testing.T) {
	is := assert.New(t)

	core, logs := observer.New(zapcore.DebugLevel)
	Install(zap.New(core))
	defer monifu.SetOnDroppedNotification(nil)

	monifu.OnDroppedNotification(context.Background(), monifu.NewNotificationNext(7))

	entries := logs.All()
	is.Len(entries, 1)
	is.Equal("monifu: dropped notification", entries[0].Message)
}
