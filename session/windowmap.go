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

import "sort"

// entry is one open session window together with its owned accumulator.
type entry[A any] struct {
	interval Interval
	acc      A
}

// windowMap is the per-key ordered mapping from Interval to accumulator
// state described in the design notes. The distilled spec's source
// re-implementation used an ordered map keyed by a non-transitive overlap
// comparator; this port takes the redesign the spec itself recommends
// instead (see design note "Non-transitive ordering key"): a slice kept
// sorted by Start, searched with sort.Search. Because windows for a single
// key are always pairwise non-overlapping with a strict gap between them,
// sorting by Start is equivalent to sorting by End, and a single binary
// search locates every candidate overlap.
type windowMap[A any] struct {
	entries []entry[A]
}

// newWindowMap creates an empty per-key window map.
func newWindowMap[A any]() *windowMap[A] {
	return &windowMap[A]{}
}

// Len reports how many open windows this key currently holds.
func (m *windowMap[A]) Len() int {
	return len(m.entries)
}

// lowerBound returns the index of the first entry whose interval.End is >=
// start. Every entry before this index ends strictly before start and
// therefore cannot overlap any probe beginning at start.
func (m *windowMap[A]) lowerBound(start int64) int {
	return sort.Search(len(m.entries), func(i int) bool {
		return m.entries[i].interval.End >= start
	})
}

// overlaps returns the indices (at most two, per the invariant that every
// stored window has length >= maxGap) of existing windows overlapping
// probe, in ascending order.
func (m *windowMap[A]) overlaps(probe Interval) []int {
	start := m.lowerBound(probe.Start)
	var found []int
	for i := start; i < len(m.entries) && m.entries[i].interval.Start <= probe.End; i++ {
		if m.entries[i].interval.Overlaps(probe) {
			found = append(found, i)
		}
	}
	return found
}

// insert adds a new, non-overlapping window in sorted-by-Start order.
func (m *windowMap[A]) insert(iv Interval, acc A) {
	i := sort.Search(len(m.entries), func(i int) bool {
		return m.entries[i].interval.Start >= iv.Start
	})
	m.entries = append(m.entries, entry[A]{})
	copy(m.entries[i+1:], m.entries[i:])
	m.entries[i] = entry[A]{interval: iv, acc: acc}
}

// replaceAt overwrites the window at index i in place (extension or merge
// result), preserving sort order only when the caller guarantees the new
// interval does not cross a neighboring entry's Start — true for every
// mutation the operator performs, since the replacement interval is always
// the union of windows already located at or adjacent to i.
func (m *windowMap[A]) replaceAt(i int, iv Interval, acc A) {
	m.entries[i] = entry[A]{interval: iv, acc: acc}
}

// removeAt deletes the window at index i and returns it.
func (m *windowMap[A]) removeAt(i int) entry[A] {
	e := m.entries[i]
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	return e
}

// removeByEnd removes the unique window ending exactly at end, if any. Two
// windows for the same key can never share an End under the non-overlap
// invariant, so at most one match exists.
func (m *windowMap[A]) removeByEnd(end int64) (Interval, A, bool) {
	i := sort.Search(len(m.entries), func(i int) bool {
		return m.entries[i].interval.End >= end
	})
	if i < len(m.entries) && m.entries[i].interval.End == end {
		e := m.removeAt(i)
		return e.interval, e.acc, true
	}
	var zero A
	return Interval{}, zero, false
}

// all returns the windows in ascending Start (== ascending End) order, for
// invariant checks and tests. The returned slice must not be mutated.
func (m *windowMap[A]) all() []entry[A] {
	return m.entries
}
