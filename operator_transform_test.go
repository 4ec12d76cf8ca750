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

func TestMapAppliesFunction(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	values, err := Collect(context.Background(), Map(func(v int) int { return v * 2 })(FromSequence(1, 2, 3)))
	is.NoError(err)
	is.Equal([]int{2, 4, 6}, values)
}

func TestMapPanicRoutesToOnError(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	obs := Map(func(v int) int {
		if v == 2 {
			panic("boom")
		}
		return v
	})(FromSequence(1, 2, 3))

	values, err := Collect(context.Background(), obs)
	is.Equal([]int{1}, values)
	is.Error(err)
}

func TestFilterKeepsMatchingItems(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	values, err := Collect(context.Background(), Filter(func(v int) bool { return v%2 == 0 })(FromSequence(1, 2, 3, 4)))
	is.NoError(err)
	is.Equal([]int{2, 4}, values)
}

func TestTakeStopsUpstreamAfterN(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	values, err := Collect(context.Background(), Take[int](2)(FromSequence(1, 2, 3, 4)))
	is.NoError(err)
	is.Equal([]int{1, 2}, values)
}

func TestTakeZeroCompletesImmediately(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	values, err := Collect(context.Background(), Take[int](0)(FromSequence(1, 2, 3)))
	is.NoError(err)
	is.Empty(values)
}

func TestTakeRightKeepsLastN(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	values, err := Collect(context.Background(), TakeRight[int](2)(FromSequence(1, 2, 3, 4)))
	is.NoError(err)
	is.Equal([]int{3, 4}, values)
}

func TestDropSwallowsFirstN(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	values, err := Collect(context.Background(), Drop[int](2)(FromSequence(1, 2, 3, 4)))
	is.NoError(err)
	is.Equal([]int{3, 4}, values)
}

func TestTakeWhileStopsAtFirstFalse(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	values, err := Collect(context.Background(), TakeWhile(func(v int) bool { return v < 3 })(FromSequence(1, 2, 3, 1)))
	is.NoError(err)
	is.Equal([]int{1, 2}, values)
}

func TestDropWhileForwardsAfterFirstFalse(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	values, err := Collect(context.Background(), DropWhile(func(v int) bool { return v < 3 })(FromSequence(1, 2, 3, 1)))
	is.NoError(err)
	is.Equal([]int{3, 1}, values)
}

func TestScanEmitsRunningAccumulator(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	values, err := Collect(context.Background(), Scan(0, func(acc, v int) int { return acc + v })(FromSequence(1, 2, 3)))
	is.NoError(err)
	is.Equal([]int{1, 3, 6}, values)
}

func TestFoldLeftEmitsSingleFinalValue(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	values, err := Collect(context.Background(), FoldLeft(0, func(acc, v int) int { return acc + v })(FromSequence(1, 2, 3)))
	is.NoError(err)
	is.Equal([]int{6}, values)
}
