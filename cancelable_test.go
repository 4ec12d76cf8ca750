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
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBooleanCancelableRunsActionOnce(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	var calls int32
	c := NewBooleanCancelable(func() { atomic.AddInt32(&calls, 1) })

	is.False(c.IsCanceled())
	c.Cancel()
	c.Cancel()
	c.Cancel()

	is.True(c.IsCanceled())
	is.EqualValues(1, atomic.LoadInt32(&calls))
}

func TestBooleanCancelableNilAction(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	c := NewBooleanCancelable(nil)
	is.NotPanics(func() { c.Cancel() })
	is.True(c.IsCanceled())
}

func TestSingleAssignmentCancelableSetOnce(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	target := NewSingleAssignmentCancelable()
	first := NewBooleanCancelable(nil)
	second := NewBooleanCancelable(nil)

	target.SetCancelable(first)
	target.SetCancelable(second)

	is.False(first.IsCanceled())
	is.True(second.IsCanceled(), "a second assignment is canceled immediately instead of stored")

	target.Cancel()
	is.True(first.IsCanceled())
}

func TestSingleAssignmentCancelableCancelsLateAssignment(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	target := NewSingleAssignmentCancelable()
	target.Cancel()

	inner := NewBooleanCancelable(nil)
	target.SetCancelable(inner)
	is.True(inner.IsCanceled())
}

func TestCompositeCancelableCancelsChildren(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	composite := NewCompositeCancelable()
	a := NewBooleanCancelable(nil)
	b := NewBooleanCancelable(nil)
	composite.Add(a)
	composite.Add(b)

	composite.Cancel()
	is.True(a.IsCanceled())
	is.True(b.IsCanceled())

	late := NewBooleanCancelable(nil)
	composite.Add(late)
	is.True(late.IsCanceled(), "adding to an already-canceled composite cancels immediately")
}

func TestCompositeCancelableRemove(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	composite := NewCompositeCancelable()
	a := NewBooleanCancelable(nil)
	composite.Add(a)
	composite.Remove(a)

	composite.Cancel()
	is.False(a.IsCanceled())
}

func TestRefCountCancelableFiresOnceCountReachesZero(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	var fired int32
	rc := NewRefCountCancelable(func() { atomic.AddInt32(&fired, 1) })

	child1 := rc.Acquire()
	child2 := rc.Acquire()

	child1.Cancel()
	is.EqualValues(0, atomic.LoadInt32(&fired))

	rc.Cancel()
	is.EqualValues(0, atomic.LoadInt32(&fired), "one acquired child is still outstanding")

	child2.Cancel()
	is.EqualValues(1, atomic.LoadInt32(&fired))
}

func TestRefCountCancelableNoAcquiredChildren(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	var fired int32
	rc := NewRefCountCancelable(func() { atomic.AddInt32(&fired, 1) })
	rc.Cancel()
	is.EqualValues(1, atomic.LoadInt32(&fired))
}
