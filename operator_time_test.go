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

func TestTimeIntervalPairsItemWithElapsedNanos(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	pairs, err := Collect(context.Background(), TimeInterval[int]()(FromSequence(1, 2, 3)))
	is.NoError(err)
	is.Len(pairs, 3)
	for _, p := range pairs {
		is.GreaterOrEqual(p.B, int64(0))
	}
	is.Equal(1, pairs[0].A)
	is.Equal(2, pairs[1].A)
	is.Equal(3, pairs[2].A)
}

func TestTimestampPairsItemWithMonotonicReading(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	pairs, err := Collect(context.Background(), Timestamp[int]()(FromSequence(1, 2)))
	is.NoError(err)
	is.Len(pairs, 2)
	is.LessOrEqual(pairs[0].B, pairs[1].B)
}
