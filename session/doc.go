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

/*
Package session implements a session-window aggregation operator for an
event-time stream processor.

For each grouping key derived from incoming events, the operator maintains
a dynamic collection of session windows: intervals of event time within
which consecutive events for that key arrive no further apart than a
configured gap. Each key/session pair emits a single aggregated result once
its session is known to be complete, signaled by a watermark advancing past
the session's end.

# Core Features

  - Event-time semantics - sessions are delimited by event time, not arrival
    order or wall-clock time, and tolerate out-of-order arrival up to the
    watermark's lateness bound
  - Dynamic window set - a new event creates, extends, or merges session
    windows per key as it arrives
  - Incremental aggregation - a four-operation Aggregator contract
    (NewAccumulator / Accumulate / Combine / Finish) is applied
    incrementally and merged compatibly with window merges
  - Bounded memory - completed sessions are flushed on watermark advance and
    empty per-key state is reclaimed immediately

# Basic Usage

	agg := session.CountAggregator[Event]()
	op, err := session.NewOperator(session.Config[Event, string, int, int]{
		MaxGap:     10,
		EventTime:  func(e Event) int64 { return e.Timestamp },
		Key:        func(e Event) string { return e.DeviceID },
		Aggregator: agg,
	})
	if err != nil {
		// invalid configuration
	}

	op.OnEvent(e)

	cursor := op.OnWatermark(1000)
	for {
		s, ok := cursor.Next()
		if !ok {
			break
		}
		// push s downstream; if downstream applies backpressure, stop and
		// resume later by calling cursor.Next() again.
	}

The operator is single-threaded cooperative: OnEvent and OnWatermark must be
invoked strictly sequentially from one goroutine. Parallelism across keys is
the host's responsibility, achieved by partitioning the upstream by key and
running one Operator per partition.
*/
package session
