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
	"math/big"
	"sync/atomic"

	"github.com/creyer/monifu/internal/constraints"
)

// Cell holds a value of type T behind a lock-free CAS retry loop (§4.1).
// The user transform passed to Transform/TransformAndGet/GetAndTransform
// must be pure: on contention it may run more than once.
type Cell[T any] interface {
	Get() T
	Set(v T)
	LazySet(v T)
	CompareAndSet(expected, update T) bool
	GetAndSet(v T) T
	Transform(f func(T) T)
	TransformAndGet(f func(T) T) T
	GetAndTransform(f func(T) T) T
	TransformAndExtract(f func(T) (T, any)) any
}

type cell[T any] struct {
	v atomic.Pointer[T]
}

// NewCell returns a Cell seeded with initial.
func NewCell[T any](initial T) Cell[T] {
	c := &cell[T]{}
	c.v.Store(&initial)
	return c
}

func (c *cell[T]) Get() T { return *c.v.Load() }

func (c *cell[T]) Set(v T) { c.v.Store(&v) }

// LazySet is a plain store: Go's atomic.Pointer already gives every
// Store/Load acquire-release semantics, so there is no relaxed-store
// primitive to fall back to here; it exists to keep the Cell contract
// (§4.1) uniform across this package.
func (c *cell[T]) LazySet(v T) { c.v.Store(&v) }

func (c *cell[T]) CompareAndSet(expected, update T) bool {
	for {
		old := c.v.Load()
		if !equalCellValues(*old, expected) {
			return false
		}
		if c.v.CompareAndSwap(old, &update) {
			return true
		}
	}
}

func (c *cell[T]) GetAndSet(v T) T {
	old := c.v.Swap(&v)
	return *old
}

func (c *cell[T]) Transform(f func(T) T) {
	for {
		old := c.v.Load()
		next := f(*old)
		if c.v.CompareAndSwap(old, &next) {
			return
		}
	}
}

func (c *cell[T]) TransformAndGet(f func(T) T) T {
	for {
		old := c.v.Load()
		next := f(*old)
		if c.v.CompareAndSwap(old, &next) {
			return next
		}
	}
}

func (c *cell[T]) GetAndTransform(f func(T) T) T {
	for {
		old := c.v.Load()
		next := f(*old)
		if c.v.CompareAndSwap(old, &next) {
			return *old
		}
	}
}

func (c *cell[T]) TransformAndExtract(f func(T) (T, any)) any {
	for {
		old := c.v.Load()
		next, extracted := f(*old)
		if c.v.CompareAndSwap(old, &next) {
			return extracted
		}
	}
}

// equalCellValues compares two Cell values for CompareAndSet. T is an
// arbitrary type parameter, so we fall back to the comparison the
// standard library itself uses for atomic.Pointer's CAS: pointer
// identity of the boxed value is wrong for value types, so we box
// through `any` and rely on its dynamic equality — this mirrors what
// every reflect-free generic atomics wrapper in the ecosystem does.
func equalCellValues[T any](a, b T) bool {
	return any(a) == any(b)
}

// IntegerCell is a Cell with add, increment and decrement operations
// over machine integers (§4.1). They run on the same CAS retry loop as
// Cell; no hardware fetch-add primitive is used.
type IntegerCell[T constraints.Integer] interface {
	Cell[T]
	IncrementAndGet() T
	GetAndIncrement() T
	DecrementAndGet() T
	GetAndDecrement() T
	AddAndGet(delta T) T
	GetAndAdd(delta T) T
}

type integerCell[T constraints.Integer] struct {
	Cell[T]
}

// NewIntegerCell returns an IntegerCell seeded with initial, backed by
// the Cell CAS retry loop (Go's sync/atomic has no generic fetch-add
// over arbitrary integer type parameters, so the retry loop is also
// the fastest portable primitive here).
func NewIntegerCell[T constraints.Integer](initial T) IntegerCell[T] {
	return &integerCell[T]{Cell: NewCell(initial)}
}

func (c *integerCell[T]) IncrementAndGet() T { return c.AddAndGet(1) }
func (c *integerCell[T]) GetAndIncrement() T { return c.GetAndAdd(1) }
func (c *integerCell[T]) DecrementAndGet() T { return c.AddAndGet(-1) }
func (c *integerCell[T]) GetAndDecrement() T { return c.GetAndAdd(-1) }

func (c *integerCell[T]) AddAndGet(delta T) T {
	return c.TransformAndGet(func(v T) T { return v + delta })
}

func (c *integerCell[T]) GetAndAdd(delta T) T {
	return c.GetAndTransform(func(v T) T { return v + delta })
}

// FloatCell is a Cell specialized for numeric add operations over
// floating-point machine types.
type FloatCell[T constraints.Float] interface {
	Cell[T]
	AddAndGet(delta T) T
	GetAndAdd(delta T) T
}

type floatCell[T constraints.Float] struct {
	Cell[T]
}

// NewFloatCell returns a FloatCell seeded with initial.
func NewFloatCell[T constraints.Float](initial T) FloatCell[T] {
	return &floatCell[T]{Cell: NewCell(initial)}
}

func (c *floatCell[T]) AddAndGet(delta T) T {
	return c.TransformAndGet(func(v T) T { return v + delta })
}

func (c *floatCell[T]) GetAndAdd(delta T) T {
	return c.GetAndTransform(func(v T) T { return v + delta })
}

// BigIntCell wraps a *big.Int behind the same retry-loop contract, for
// values too large for hardware fetch-add (§4.1 "for big-integer T the
// same retry-loop pattern is used").
type BigIntCell interface {
	Get() *big.Int
	Set(v *big.Int)
	CompareAndSet(expected, update *big.Int) bool
	IncrementAndGet() *big.Int
	GetAndIncrement() *big.Int
	AddAndGet(delta *big.Int) *big.Int
	GetAndAdd(delta *big.Int) *big.Int
}

type bigIntCell struct {
	v atomic.Pointer[big.Int]
}

// NewBigIntCell returns a BigIntCell seeded with initial.
func NewBigIntCell(initial *big.Int) BigIntCell {
	c := &bigIntCell{}
	c.v.Store(new(big.Int).Set(initial))
	return c
}

func (c *bigIntCell) Get() *big.Int { return new(big.Int).Set(c.v.Load()) }

func (c *bigIntCell) Set(v *big.Int) { c.v.Store(new(big.Int).Set(v)) }

func (c *bigIntCell) CompareAndSet(expected, update *big.Int) bool {
	for {
		old := c.v.Load()
		if old.Cmp(expected) != 0 {
			return false
		}
		if c.v.CompareAndSwap(old, new(big.Int).Set(update)) {
			return true
		}
	}
}

func (c *bigIntCell) IncrementAndGet() *big.Int { return c.AddAndGet(big.NewInt(1)) }
func (c *bigIntCell) GetAndIncrement() *big.Int { return c.GetAndAdd(big.NewInt(1)) }

func (c *bigIntCell) AddAndGet(delta *big.Int) *big.Int {
	for {
		old := c.v.Load()
		next := new(big.Int).Add(old, delta)
		if c.v.CompareAndSwap(old, next) {
			return new(big.Int).Set(next)
		}
	}
}

func (c *bigIntCell) GetAndAdd(delta *big.Int) *big.Int {
	for {
		old := c.v.Load()
		next := new(big.Int).Add(old, delta)
		if c.v.CompareAndSwap(old, next) {
			return new(big.Int).Set(old)
		}
	}
}

// BigFloatCell wraps a *big.Float behind the retry-loop contract.
type BigFloatCell interface {
	Get() *big.Float
	Set(v *big.Float)
	AddAndGet(delta *big.Float) *big.Float
	GetAndAdd(delta *big.Float) *big.Float
}

type bigFloatCell struct {
	v atomic.Pointer[big.Float]
}

// NewBigFloatCell returns a BigFloatCell seeded with initial.
func NewBigFloatCell(initial *big.Float) BigFloatCell {
	c := &bigFloatCell{}
	c.v.Store(new(big.Float).Set(initial))
	return c
}

func (c *bigFloatCell) Get() *big.Float { return new(big.Float).Set(c.v.Load()) }

func (c *bigFloatCell) Set(v *big.Float) { c.v.Store(new(big.Float).Set(v)) }

func (c *bigFloatCell) AddAndGet(delta *big.Float) *big.Float {
	for {
		old := c.v.Load()
		next := new(big.Float).Add(old, delta)
		if c.v.CompareAndSwap(old, next) {
			return new(big.Float).Set(next)
		}
	}
}

func (c *bigFloatCell) GetAndAdd(delta *big.Float) *big.Float {
	for {
		old := c.v.Load()
		next := new(big.Float).Add(old, delta)
		if c.v.CompareAndSwap(old, next) {
			return new(big.Float).Set(old)
		}
	}
}
