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

// deadlineIndex is the ordered mapping from session end-time to the set of
// keys having at least one window ending at that time. It lets a watermark
// flush locate expiring keys without scanning every key in the operator.
//
// This is denormalized state derived from the per-key window maps: it is
// maintained only at the mutation sites in operator.go, never recomputed.
type deadlineIndex[K comparable] struct {
	ends    []int64
	buckets map[int64]map[K]struct{}
}

func newDeadlineIndex[K comparable]() *deadlineIndex[K] {
	return &deadlineIndex[K]{
		buckets: make(map[int64]map[K]struct{}),
	}
}

// add registers that key k now has a window ending at end.
func (d *deadlineIndex[K]) add(end int64, k K) {
	bucket, ok := d.buckets[end]
	if !ok {
		i := sort.Search(len(d.ends), func(i int) bool { return d.ends[i] >= end })
		d.ends = append(d.ends, 0)
		copy(d.ends[i+1:], d.ends[i:])
		d.ends[i] = end
		bucket = make(map[K]struct{})
		d.buckets[end] = bucket
	}
	bucket[k] = struct{}{}
}

// remove un-registers key k's window ending at end. If that was the last
// key registered at end, the end-time entry itself is dropped.
func (d *deadlineIndex[K]) remove(end int64, k K) {
	bucket, ok := d.buckets[end]
	if !ok {
		return
	}
	delete(bucket, k)
	if len(bucket) == 0 {
		delete(d.buckets, end)
		i := sort.Search(len(d.ends), func(i int) bool { return d.ends[i] >= end })
		if i < len(d.ends) && d.ends[i] == end {
			d.ends = append(d.ends[:i], d.ends[i+1:]...)
		}
	}
}

// smallestBelow returns one key registered at the smallest end-time that is
// strictly less than wm, along with that end-time. ok is false once no
// end-time below wm remains. Which key is returned when several share the
// same end-time is unspecified, matching the spec's "ordering across keys
// is unspecified" clause.
func (d *deadlineIndex[K]) smallestBelow(wm int64) (end int64, key K, ok bool) {
	if len(d.ends) == 0 || d.ends[0] >= wm {
		return 0, key, false
	}
	end = d.ends[0]
	for k := range d.buckets[end] {
		return end, k, true
	}
	// A bucket is always removed as soon as it becomes empty, so this is
	// unreachable; treated as an invariant violation rather than silently
	// skipped.
	panic(&InvariantError{Reason: "deadline index has an empty bucket", Detail: end})
}

// len reports the number of distinct end-times currently tracked, for
// Stats().
func (d *deadlineIndex[K]) len() int {
	return len(d.ends)
}
