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
	"time"
)

// Scheduler is the execution context the core is built against but does
// not implement itself (§6): callers supply one concrete scheduler,
// such as the one in the scheduler subpackage. Every thread hop named
// in §5 — observeOn, subscribeOn, interval, continuous, fromIterable,
// BufferedObserver's drain loop — posts through this interface rather
// than spawning bare goroutines.
type Scheduler interface {
	// Submit runs task as soon as a worker is available.
	Submit(ctx context.Context, task func(ctx context.Context))
	// SubmitAfter runs task once, after delay. The returned Cancelable
	// aborts the task if canceled before it starts running.
	SubmitAfter(ctx context.Context, delay time.Duration, task func(ctx context.Context)) Cancelable
	// SubmitRecurring runs task repeatedly, every interval, until the
	// returned Cancelable is canceled.
	SubmitRecurring(ctx context.Context, interval time.Duration, task func(ctx context.Context)) Cancelable
	// ReportFailure reports a failure that occurred outside the stream
	// (§4.9 "inside a callback scheduled on the scheduler") — it is
	// never re-entered into any Observer chain.
	ReportFailure(ctx context.Context, err error)
}
