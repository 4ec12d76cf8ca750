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
	"sort"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func TestConcatPreservesOrderAcrossSources(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	values, err := Collect(context.Background(), Concat(FromSequence(1, 2), FromSequence(3, 4)))
	is.NoError(err)
	is.Equal([]int{1, 2, 3, 4}, values)
}

func TestFlatMapPreservesSourceOrder(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	obs := FlatMap(func(v int) Observable[int] { return FromSequence(v, v*10) })(FromSequence(1, 2))
	values, err := Collect(context.Background(), obs)
	is.NoError(err)
	is.Equal([]int{1, 10, 2, 20}, values)
}

func TestMergeInterleavesAllSources(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	values, err := Collect(context.Background(), Merge(FromSequence(1, 2), FromSequence(3, 4)))
	is.NoError(err)
	sort.Ints(values)
	is.Equal([]int{1, 2, 3, 4}, values)
}

func TestZip2PairsByPosition(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	obs := Zip2(FromSequence(1, 2, 3), FromSequence("a", "b", "c"))
	values, err := Collect(context.Background(), obs)
	is.NoError(err)
	is.Equal([]lo.Tuple2[int, string]{
		{A: 1, B: "a"},
		{A: 2, B: "b"},
		{A: 3, B: "c"},
	}, values)
}

func TestZip2StopsAtShorterSource(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	obs := Zip2(FromSequence(1, 2, 3), FromSequence("a", "b"))
	values, err := Collect(context.Background(), obs)
	is.NoError(err)
	is.Equal([]lo.Tuple2[int, string]{
		{A: 1, B: "a"},
		{A: 2, B: "b"},
	}, values)
}
