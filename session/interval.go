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

import "math"

// Interval is an immutable closed range [Start, End] over event-time
// coordinates. End must never be less than Start.
type Interval struct {
	Start int64
	End   int64
}

// Overlaps reports whether iv and other share at least one point in event
// time. This relation is intentionally non-transitive across a chain of
// intervals ([0,5] overlaps [4,9], [4,9] overlaps [8,12], but [0,5] does not
// overlap [8,12]) and must never be used as a substitute for equality
// outside a single pairwise check.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.End >= other.Start && other.End >= iv.Start
}

// Touches reports whether iv is immediately adjacent to other with no gap
// (iv.End == other.Start-1 or other.End == iv.Start-1). Adjacent intervals
// are not merged automatically; only overlap triggers a merge, per the
// closed-interval, strict-gap invariant.
func (iv Interval) Touches(other Interval) bool {
	return iv.End+1 == other.Start || other.End+1 == iv.Start
}

// union returns the smallest interval that contains both a and b.
func union(a, b Interval) Interval {
	start := a.Start
	if b.Start < start {
		start = b.Start
	}
	end := a.End
	if b.End > end {
		end = b.End
	}
	return Interval{Start: start, End: end}
}

// eventInterval builds the probe interval [t, t+maxGap] for an event
// arriving at time t, saturating instead of overflowing per the open
// question in the design notes: an event whose gap window would exceed the
// representable range is clamped to math.MaxInt64 rather than wrapping.
func eventInterval(t, maxGap int64) Interval {
	end := t + maxGap
	if maxGap > 0 && end < t {
		end = math.MaxInt64
	}
	return Interval{Start: t, End: end}
}
