/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reading struct {
	value float64
}

func TestCountAggregator(t *testing.T) {
	agg := CountAggregator[reading]()
	acc := agg.NewAccumulator()
	acc = agg.Accumulate(acc, reading{1})
	acc = agg.Accumulate(acc, reading{2})
	assert.Equal(t, 2, agg.Finish(acc))

	left := agg.Accumulate(agg.NewAccumulator(), reading{1})
	right := agg.Accumulate(agg.NewAccumulator(), reading{2})
	right = agg.Accumulate(right, reading{3})
	assert.Equal(t, 3, agg.Finish(agg.Combine(left, right)))
}

func TestSumAggregator(t *testing.T) {
	agg := SumAggregator(func(r reading) float64 { return r.value })
	acc := agg.NewAccumulator()
	acc = agg.Accumulate(acc, reading{1.5})
	acc = agg.Accumulate(acc, reading{2.5})
	assert.Equal(t, 4.0, agg.Finish(acc))
}

func TestCollectAggregator(t *testing.T) {
	agg := CollectAggregator[reading]()
	left := agg.Accumulate(agg.NewAccumulator(), reading{1})
	right := agg.Accumulate(agg.NewAccumulator(), reading{2})
	combined := agg.Combine(left, right)
	assert.Equal(t, []reading{{1}, {2}}, agg.Finish(combined))

	t.Run("combine does not alias either input", func(t *testing.T) {
		combined[0].value = 99
		assert.Equal(t, 1.0, left[0].value)
	})
}

func TestExpressionAggregator(t *testing.T) {
	agg, err := ExpressionAggregator(
		"value * 2",
		func(r reading) map[string]interface{} { return map[string]interface{}{"value": r.value} },
	)
	require.NoError(t, err)

	acc := agg.NewAccumulator()
	acc = agg.Accumulate(acc, reading{3})
	acc = agg.Accumulate(acc, reading{4})
	assert.Equal(t, 14.0, agg.Finish(acc))

	t.Run("invalid expression fails at compile time", func(t *testing.T) {
		_, err := ExpressionAggregator[reading]("value +++ 1", nil)
		assert.Error(t, err)
	})
}

func TestAggregatorValidate(t *testing.T) {
	complete := CountAggregator[reading]()

	t.Run("missing NewAccumulator", func(t *testing.T) {
		a := complete
		a.NewAccumulator = nil
		err := a.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "NewAccumulator")
	})

	t.Run("missing Combine", func(t *testing.T) {
		a := complete
		a.Combine = nil
		err := a.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Combine")
	})
}
