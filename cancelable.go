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
	"sync"

	"github.com/samber/lo"

	"github.com/creyer/monifu/internal/xerrors"
)

// Cancelable is a handle over running work with an idempotent Cancel (§4.2).
// Calling Cancel more than once, from any number of goroutines, runs the
// underlying teardown exactly once.
type Cancelable interface {
	Cancel()
	IsCanceled() bool
}

// booleanCancelable runs a single action the first time Cancel is called.
// It is also the child handle RefCountCancelable.Acquire hands out.
type booleanCancelable struct {
	mu     sync.Mutex
	done   bool
	action func()
}

// NewBooleanCancelable returns a Cancelable that runs action exactly once,
// on the first Cancel call. A nil action is allowed; Cancel then only
// flips the canceled flag.
func NewBooleanCancelable(action func()) Cancelable {
	return &booleanCancelable{action: action}
}

func (c *booleanCancelable) Cancel() {
	c.mu.Lock()
	if c.done {
		c.mu.Unlock()
		return
	}
	c.done = true
	action := c.action
	c.action = nil
	c.mu.Unlock()

	if action == nil {
		return
	}

	if err := runTeardown(action); err != nil {
		panic(err)
	}
}

func (c *booleanCancelable) IsCanceled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// SingleAssignmentCancelable holds exactly one inner Cancelable, settable
// once. Setting it after the slot is already occupied, or after the
// SingleAssignmentCancelable has itself been canceled, cancels the
// incoming value immediately instead of storing it (§4.2: "target
// settable exactly once").
type SingleAssignmentCancelable interface {
	Cancelable
	SetCancelable(c Cancelable)
}

type singleAssignmentCancelable struct {
	mu       sync.Mutex
	done     bool
	assigned bool
	inner    Cancelable
}

// NewSingleAssignmentCancelable returns an empty SingleAssignmentCancelable.
func NewSingleAssignmentCancelable() SingleAssignmentCancelable {
	return &singleAssignmentCancelable{}
}

func (c *singleAssignmentCancelable) SetCancelable(inner Cancelable) {
	if inner == nil {
		return
	}

	c.mu.Lock()
	if c.done || c.assigned {
		c.mu.Unlock()
		inner.Cancel()
		return
	}

	c.assigned = true
	c.inner = inner
	c.mu.Unlock()
}

func (c *singleAssignmentCancelable) Cancel() {
	c.mu.Lock()
	if c.done {
		c.mu.Unlock()
		return
	}
	c.done = true
	inner := c.inner
	c.inner = nil
	c.mu.Unlock()

	if inner != nil {
		inner.Cancel()
	}
}

func (c *singleAssignmentCancelable) IsCanceled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// CompositeCancelable aggregates any number of children. Canceling it
// cancels every child currently held and clears the set; adding a child
// after that point cancels the child immediately instead of holding it.
type CompositeCancelable interface {
	Cancelable
	Add(c Cancelable)
	Remove(c Cancelable)
}

type compositeCancelable struct {
	mu       sync.Mutex
	done     bool
	children map[Cancelable]struct{}
}

// NewCompositeCancelable returns an empty CompositeCancelable, optionally
// seeded with the given children.
func NewCompositeCancelable(children ...Cancelable) CompositeCancelable {
	c := &compositeCancelable{children: make(map[Cancelable]struct{}, len(children))}
	for _, child := range children {
		c.Add(child)
	}
	return c
}

func (c *compositeCancelable) Add(child Cancelable) {
	if child == nil {
		return
	}

	c.mu.Lock()
	if c.done {
		c.mu.Unlock()
		child.Cancel()
		return
	}

	c.children[child] = struct{}{}
	c.mu.Unlock()
}

func (c *compositeCancelable) Remove(child Cancelable) {
	if child == nil {
		return
	}

	c.mu.Lock()
	delete(c.children, child)
	c.mu.Unlock()
}

func (c *compositeCancelable) Cancel() {
	c.mu.Lock()
	if c.done {
		c.mu.Unlock()
		return
	}
	c.done = true
	children := c.children
	c.children = nil
	c.mu.Unlock()

	var errs []error
	for child := range children {
		if err := runTeardown(child.Cancel); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		panic(xerrors.Join(errs...))
	}
}

func (c *compositeCancelable) IsCanceled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// RefCountCancelable models completion-by-reference-count (§4.5, §9): a
// merge-style operator acquires one reference per inner subscription and
// releases it on that inner's completion; the outer subscription holds
// one permanent reference, released when the outer source completes.
// onComplete runs exactly once, when the count drops to zero.
type RefCountCancelable interface {
	Cancelable
	Acquire() Cancelable
}

type refCountCancelable struct {
	mu         sync.Mutex
	count      int
	done       bool
	onComplete func()
}

// NewRefCountCancelable returns a RefCountCancelable holding one implicit
// reference for the outer subscription; onComplete fires once Cancel has
// been called and every acquired child has also been canceled.
func NewRefCountCancelable(onComplete func()) RefCountCancelable {
	return &refCountCancelable{count: 1, onComplete: onComplete}
}

func (c *refCountCancelable) Acquire() Cancelable {
	c.mu.Lock()
	if c.done {
		c.mu.Unlock()
		return NewBooleanCancelable(nil)
	}
	c.count++
	c.mu.Unlock()

	return NewBooleanCancelable(c.release)
}

func (c *refCountCancelable) release() {
	c.mu.Lock()
	c.count--
	fire := c.count == 0
	c.mu.Unlock()

	if fire {
		c.fireOnComplete()
	}
}

// Cancel releases the outer subscription's permanent reference. It does
// not cancel acquired children itself — each child is canceled by the
// inner subscription it guards completing or erroring.
func (c *refCountCancelable) Cancel() {
	c.mu.Lock()
	if c.done {
		c.mu.Unlock()
		return
	}
	c.done = true
	c.count--
	fire := c.count == 0
	c.mu.Unlock()

	if fire {
		c.fireOnComplete()
	}
}

func (c *refCountCancelable) fireOnComplete() {
	if c.onComplete == nil {
		return
	}
	onComplete := c.onComplete
	c.onComplete = nil
	if err := runTeardown(onComplete); err != nil {
		panic(err)
	}
}

func (c *refCountCancelable) IsCanceled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// runTeardown executes fn, converting a panic into an *unsubscriptionError
// instead of letting it escape mid-unwind.
func runTeardown(fn func()) (err error) {
	lo.TryCatchWithErrorValue(
		func() error {
			fn()
			return nil
		},
		func(e any) {
			err = newUnsubscriptionError(recoverValueToError(e))
		},
	)

	return err
}
