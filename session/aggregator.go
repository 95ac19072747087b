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
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/spf13/cast"
)

// Aggregator is the aggregation contract supplied by the caller, mirroring
// this repository's AggregatorFunction interface (New / Add / Result) with
// the Combine operation window merging requires. NewAccumulator must
// produce a fresh, independent value on every call. Combine must be
// associative and consistent with Accumulate: for any split of an event
// multiset into S1, S2, Combine(fold(S1), fold(S2)) must equal fold(S1 ∪
// S2) up to the caller's own equivalence semantics. The operator relies on
// this only when an event bridges two existing windows; it never
// speculatively combines for performance.
type Aggregator[T any, A any, R any] struct {
	NewAccumulator func() A
	Accumulate     func(acc A, event T) A
	Combine        func(a, b A) A
	Finish         func(acc A) R
}

func (a Aggregator[T, A, R]) validate() error {
	if a.NewAccumulator == nil {
		return &ConfigError{Field: "Aggregator.NewAccumulator", Reason: "must not be nil"}
	}
	if a.Accumulate == nil {
		return &ConfigError{Field: "Aggregator.Accumulate", Reason: "must not be nil"}
	}
	if a.Combine == nil {
		return &ConfigError{Field: "Aggregator.Combine", Reason: "must not be nil"}
	}
	if a.Finish == nil {
		return &ConfigError{Field: "Aggregator.Finish", Reason: "must not be nil"}
	}
	return nil
}

// CountAggregator builds an Aggregator that counts the events landing in
// each session, the aggregator used throughout the spec's end-to-end
// scenarios.
func CountAggregator[T any]() Aggregator[T, int, int] {
	return Aggregator[T, int, int]{
		NewAccumulator: func() int { return 0 },
		Accumulate:     func(acc int, _ T) int { return acc + 1 },
		Combine:        func(a, b int) int { return a + b },
		Finish:         func(acc int) int { return acc },
	}
}

// SumAggregator builds an Aggregator that sums a numeric projection of each
// event.
func SumAggregator[T any](valueOf func(T) float64) Aggregator[T, float64, float64] {
	return Aggregator[T, float64, float64]{
		NewAccumulator: func() float64 { return 0 },
		Accumulate:     func(acc float64, e T) float64 { return acc + valueOf(e) },
		Combine:        func(a, b float64) float64 { return a + b },
		Finish:         func(acc float64) float64 { return acc },
	}
}

// CollectAggregator builds an Aggregator that retains every event of a
// session, for callers that need the raw member list rather than a
// numeric reduction. Collect is not cheap memory-wise and is meant for
// sessions expected to stay small; large fan-in sessions should prefer a
// numeric Aggregator.
func CollectAggregator[T any]() Aggregator[T, []T, []T] {
	return Aggregator[T, []T, []T]{
		NewAccumulator: func() []T { return nil },
		Accumulate:     func(acc []T, e T) []T { return append(acc, e) },
		Combine: func(a, b []T) []T {
			return append(append(make([]T, 0, len(a)+len(b)), a...), b...)
		},
		Finish: func(acc []T) []T { return acc },
	}
}

// exprAccumulator holds the running sum of a compiled expression evaluated
// against each event in a session.
type exprAccumulator struct {
	sum float64
}

// ExpressionAggregator builds an Aggregator whose per-event value is the
// result of evaluating a user-supplied expr-lang/expr expression against a
// map built from each event by toEnv, summed across the session. This
// mirrors the role functions.ExpressionAggregatorFunction plays for custom
// SQL-level aggregations elsewhere in this repository, letting a caller
// assemble a session aggregator from a textual expression (for example
// "value * 2" or "value > 10") instead of hand-writing Go accumulator
// logic. The expression is compiled once, at construction time.
func ExpressionAggregator[T any](expression string, toEnv func(T) map[string]interface{}) (Aggregator[T, *exprAccumulator, float64], error) {
	program, err := expr.Compile(expression, expr.AllowUndefinedVariables())
	if err != nil {
		return Aggregator[T, *exprAccumulator, float64]{}, fmt.Errorf("session: compiling expression %q: %w", expression, err)
	}
	return buildExpressionAggregator(program, toEnv), nil
}

func buildExpressionAggregator[T any](program *vm.Program, toEnv func(T) map[string]interface{}) Aggregator[T, *exprAccumulator, float64] {
	return Aggregator[T, *exprAccumulator, float64]{
		NewAccumulator: func() *exprAccumulator { return &exprAccumulator{} },
		Accumulate: func(acc *exprAccumulator, e T) *exprAccumulator {
			out, err := expr.Run(program, toEnv(e))
			if err != nil {
				panic(fmt.Errorf("session: evaluating expression: %w", err))
			}
			acc.sum += cast.ToFloat64(out)
			return acc
		},
		Combine: func(a, b *exprAccumulator) *exprAccumulator {
			a.sum += b.sum
			return a
		},
		Finish: func(acc *exprAccumulator) float64 { return acc.sum },
	}
}
