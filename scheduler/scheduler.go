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

// Package scheduler is the concrete monifu.Scheduler the core is built
// against but does not implement itself. Submit dispatches onto a
// github.com/ygrebnov/workers pool; SubmitAfter and SubmitRecurring
// layer delayed and periodic firing on top of it with the standard
// library's time.Timer/time.Ticker, since the pack carries no
// scheduling/cron library to ground those two concerns on instead.
package scheduler

import (
	"context"
	"time"

	"github.com/ygrebnov/workers"

	"github.com/creyer/monifu"
)

// Scheduler runs tasks on a github.com/ygrebnov/workers pool.
type Scheduler struct {
	pool workers.Workers[struct{}]
}

// New starts a Scheduler backed by a workers pool built from config. A
// nil config uses the pool's own defaults (dynamic sizing, unbounded
// task intake). Failures reported outside the pool (e.g. from
// monifu.DoOnComplete callbacks) are routed to OnUnhandledError;
// failures surfaced by the pool itself are forwarded there too.
func New(ctx context.Context, config *workers.Config) *Scheduler {
	pool := workers.New[struct{}](ctx, config)
	pool.Start(ctx)

	s := &Scheduler{pool: pool}
	go s.drainPoolErrors(ctx)
	return s
}

func (s *Scheduler) drainPoolErrors(ctx context.Context) {
	for err := range s.pool.GetErrors() {
		monifu.OnUnhandledError(ctx, err)
	}
}

// Submit runs task as soon as a pool worker is available.
func (s *Scheduler) Submit(ctx context.Context, task func(ctx context.Context)) {
	_ = s.pool.AddTask(func(ctx context.Context) error {
		task(ctx)
		return nil
	})
}

// SubmitAfter runs task once, after delay, on the pool.
func (s *Scheduler) SubmitAfter(ctx context.Context, delay time.Duration, task func(ctx context.Context)) monifu.Cancelable {
	var timer *time.Timer
	cancelable := monifu.NewBooleanCancelable(func() {
		if timer != nil {
			timer.Stop()
		}
	})

	timer = time.AfterFunc(delay, func() {
		if cancelable.IsCanceled() {
			return
		}
		s.Submit(ctx, task)
	})

	return cancelable
}

// SubmitRecurring runs task on the pool every interval, until the
// returned Cancelable is canceled.
func (s *Scheduler) SubmitRecurring(ctx context.Context, interval time.Duration, task func(ctx context.Context)) monifu.Cancelable {
	ticker := time.NewTicker(interval)
	cancelable := monifu.NewBooleanCancelable(func() { ticker.Stop() })

	go func() {
		for range ticker.C {
			if cancelable.IsCanceled() {
				return
			}
			s.Submit(ctx, task)
		}
	}()

	return cancelable
}

// ReportFailure routes err to OnUnhandledError (§4.9): a failure
// reported from inside a scheduled callback is never re-entered into
// any Observer chain.
func (s *Scheduler) ReportFailure(ctx context.Context, err error) {
	monifu.OnUnhandledError(ctx, err)
}

var _ monifu.Scheduler = (*Scheduler)(nil)
