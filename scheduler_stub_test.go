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

// inlineScheduler runs every task synchronously on whatever goroutine
// submits it, except timed/recurring tasks which still need a real
// goroutine. It exists purely so operator tests can exercise Scheduler
// consumers without depending on the concrete scheduler subpackage.
type inlineScheduler struct {
	failures []error
}

func (s *inlineScheduler) Submit(ctx context.Context, task func(ctx context.Context)) {
	task(ctx)
}

func (s *inlineScheduler) SubmitAfter(ctx context.Context, delay time.Duration, task func(ctx context.Context)) Cancelable {
	cancelable := NewBooleanCancelable(nil)
	timer := time.AfterFunc(delay, func() {
		if cancelable.IsCanceled() {
			return
		}
		task(ctx)
	})
	return NewBooleanCancelable(func() { timer.Stop() })
}

func (s *inlineScheduler) SubmitRecurring(ctx context.Context, interval time.Duration, task func(ctx context.Context)) Cancelable {
	ticker := time.NewTicker(interval)
	stop := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				task(ctx)
			case <-stop:
				ticker.Stop()
				return
			}
		}
	}()
	return NewBooleanCancelable(func() { close(stop) })
}

func (s *inlineScheduler) ReportFailure(ctx context.Context, err error) {
	s.failures = append(s.failures, err)
}
