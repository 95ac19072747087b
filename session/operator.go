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
	"math"

	"github.com/arborflow/sessionwindow/logger"
)

// Operator owns the per-key window maps and the deadline index for one
// input partition. It is single-threaded cooperative: OnEvent and
// OnWatermark must be invoked strictly sequentially from one goroutine.
// There is no internal synchronization — unlike this repository's other
// window types (CountingWindow, TumblingWindow), which each own a
// sync.Mutex because they are driven by an internal ticker goroutine, this
// operator is driven entirely by its caller and adds no concurrency of its
// own. Parallelism across keys is achieved upstream, by partitioning the
// stream by key and instantiating one Operator per partition.
type Operator[T any, K comparable, A any, R any] struct {
	cfg       Config[T, K, A, R]
	log       logger.Logger
	watermark int64
	windows   map[K]*windowMap[A]
	deadlines *deadlineIndex[K]
}

// NewOperator validates cfg and constructs an Operator. The watermark
// starts at math.MinInt64, so every event is initially eligible.
func NewOperator[T any, K comparable, A any, R any](cfg Config[T, K, A, R]) (*Operator[T, K, A, R], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	log := cfg.Logger
	if log == nil {
		log = logger.GetDefault()
	}
	return &Operator[T, K, A, R]{
		cfg:       cfg,
		log:       log,
		watermark: math.MinInt64,
		windows:   make(map[K]*windowMap[A]),
		deadlines: newDeadlineIndex[K](),
	}, nil
}

// OnEvent ingests one event. It never emits; completed sessions surface
// only through OnWatermark. A late event (event time below the current
// watermark) is dropped silently per the spec's error handling design,
// though a WARN diagnostic is logged for host-side observability.
func (op *Operator[T, K, A, R]) OnEvent(e T) {
	t := op.cfg.EventTime(e)
	if t < op.watermark {
		op.log.Warn("session: dropping late event at time %d (watermark %d)", t, op.watermark)
		return
	}

	k := op.cfg.Key(e)
	wm, ok := op.windows[k]
	if !ok {
		wm = newWindowMap[A]()
		op.windows[k] = wm
	}

	ev := eventInterval(t, op.cfg.MaxGap)
	matches := wm.overlaps(ev)

	switch len(matches) {
	case 0:
		acc := op.cfg.Aggregator.NewAccumulator()
		acc = op.cfg.Aggregator.Accumulate(acc, e)
		wm.insert(ev, acc)
		op.deadlines.add(ev.End, k)

	case 1:
		i := matches[0]
		cur := wm.entries[i]
		if cur.interval.Start <= ev.Start && ev.End <= cur.interval.End {
			// cur already covers ev: no interval change, same deadline.
			wm.entries[i].acc = op.cfg.Aggregator.Accumulate(cur.acc, e)
			return
		}
		merged := union(cur.interval, ev)
		acc := op.cfg.Aggregator.Accumulate(cur.acc, e)
		if merged.End != cur.interval.End {
			op.deadlines.remove(cur.interval.End, k)
			op.deadlines.add(merged.End, k)
		}
		wm.replaceAt(i, merged, acc)

	case 2:
		lo, hi := matches[0], matches[1]
		left := wm.entries[lo]
		right := wm.entries[hi]
		merged := union(left.interval, right.interval)
		combined := op.cfg.Aggregator.Combine(left.acc, right.acc)
		combined = op.cfg.Aggregator.Accumulate(combined, e)

		op.deadlines.remove(left.interval.End, k)
		op.deadlines.remove(right.interval.End, k)

		// Remove the higher index first so the lower index stays valid.
		wm.removeAt(hi)
		wm.removeAt(lo)
		wm.insert(merged, combined)
		op.deadlines.add(merged.End, k)

	default:
		panic(&InvariantError{
			Reason: "more than two existing windows overlap one event interval",
			Detail: matches,
		})
	}
}

// OnWatermark records a new watermark (ignored if it does not exceed the
// current one) and returns a resumable Cursor over every session whose
// window end is now strictly below the watermark. The host pulls the
// cursor until it is exhausted or its own output buffer is full; if the
// latter, the same cursor can be resumed later with no lost or duplicated
// emissions.
func (op *Operator[T, K, A, R]) OnWatermark(wm int64) *Cursor[K, R] {
	if wm > op.watermark {
		op.watermark = wm
	} else if wm < op.watermark {
		op.log.Warn("session: ignoring watermark regression %d (current %d)", wm, op.watermark)
	}
	return &Cursor[K, R]{op: op, targetWatermark: op.watermark}
}

// popNext removes and finishes one session whose window end is strictly
// below targetWatermark, returning ok=false once none remain. It is the
// single mutation point for watermark-driven removal, keeping the deadline
// index and per-key window maps in lockstep at every step, and is the
// method Cursor.Next calls on each pull.
func (op *Operator[T, K, A, R]) popNext(targetWatermark int64) (Session[K, R], bool) {
	end, key, ok := op.deadlines.smallestBelow(targetWatermark)
	if !ok {
		return Session[K, R]{}, false
	}

	wm, ok := op.windows[key]
	if !ok {
		panic(&InvariantError{Reason: "deadline index references a key with no window map", Detail: key})
	}
	iv, acc, ok := wm.removeByEnd(end)
	if !ok {
		panic(&InvariantError{Reason: "deadline index entry has no matching window", Detail: end})
	}
	op.deadlines.remove(end, key)
	if wm.Len() == 0 {
		delete(op.windows, key)
	}

	return Session[K, R]{
		Key:    key,
		Start:  iv.Start,
		End:    iv.End,
		Result: op.cfg.Aggregator.Finish(acc),
	}, true
}

// Stats reports the number of keys currently holding at least one open
// window and the total number of open windows across all keys, for
// host-side memory monitoring.
type Stats struct {
	Keys    int
	Windows int
}

// Stats returns a snapshot of the operator's current memory footprint.
func (op *Operator[T, K, A, R]) Stats() Stats {
	total := 0
	for _, wm := range op.windows {
		total += wm.Len()
	}
	return Stats{Keys: len(op.windows), Windows: total}
}
