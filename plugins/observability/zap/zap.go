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

// Package zap wires go.uber.org/zap into monifu's swappable
// OnUnhandledError / OnDroppedNotification hooks, in place of the
// package-level no-op defaults monifu.IgnoreOnUnhandledError and
// monifu.IgnoreOnDroppedNotification.
package zap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/creyer/monifu"
)

// Install points monifu's unhandled-error and dropped-notification
// hooks at logger.
func Install(logger *zap.Logger) {
	monifu.SetOnUnhandledError(onUnhandledError(logger))
	monifu.SetOnDroppedNotification(onDroppedNotification(logger))
}

func onUnhandledError(logger *zap.Logger) func(ctx context.Context, err error) {
	return func(ctx context.Context, err error) {
		if err == nil {
			return
		}
		logger.Error("monifu: unhandled error", zap.Error(err))
	}
}

func onDroppedNotification(logger *zap.Logger) func(ctx context.Context, notification fmt.Stringer) {
	return func(ctx context.Context, notification fmt.Stringer) {
		logger.Warn("monifu: dropped notification", zap.Stringer("notification", notification))
	}
}
