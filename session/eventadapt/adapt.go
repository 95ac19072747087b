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

// Package eventadapt builds session.Config's EventTime and Key projections
// for events shaped as map[string]interface{} or structs, the two shapes
// this repository's own window package accepts at its boundary (see
// CountingWindow.getKey). Callers whose events are already typed should
// write their own projections directly; this package exists for callers
// who, like the rest of this repository's operators, receive loosely typed
// rows from an upstream decoder.
package eventadapt

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/spf13/cast"
)

// EventTimeField returns an EventTime projection that reads field from a
// map[string]interface{} or struct event and tolerantly coerces it to a
// Unix-epoch integer using spf13/cast. It panics if field is absent or the
// value cannot be coerced, since a malformed event-time field means the
// operator cannot place the event into any window at all.
func EventTimeField(field string) func(interface{}) int64 {
	return func(e interface{}) int64 {
		v, ok := lookup(e, field)
		if !ok {
			panic(fmt.Sprintf("eventadapt: event has no field %q", field))
		}
		t, err := cast.ToInt64E(v)
		if err != nil {
			panic(fmt.Sprintf("eventadapt: field %q: %v", field, err))
		}
		return t
	}
}

// KeyFields returns a Key projection that reads one or more fields from a
// map[string]interface{} or struct event, casts each to a string, and joins
// them with "|" — the same composite-key convention
// CountingWindow.getKey uses for its GroupByKeys. A missing field
// contributes an empty string rather than panicking, since a key is
// informational grouping rather than something the operator's correctness
// depends on.
func KeyFields(fields ...string) func(interface{}) string {
	return func(e interface{}) string {
		parts := make([]string, len(fields))
		for i, f := range fields {
			if v, ok := lookup(e, f); ok {
				parts[i] = cast.ToString(v)
			}
		}
		return strings.Join(parts, "|")
	}
}

// lookup reads field from a map[string]interface{} (or any map with string
// keys) or an exported struct field, mirroring the shapes
// CountingWindow.getKey supports.
func lookup(e interface{}, field string) (interface{}, bool) {
	v := reflect.ValueOf(e)
	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		mv := v.MapIndex(reflect.ValueOf(field))
		if !mv.IsValid() {
			return nil, false
		}
		return mv.Interface(), true
	case reflect.Struct:
		fv := v.FieldByName(field)
		if !fv.IsValid() {
			return nil, false
		}
		return fv.Interface(), true
	default:
		return nil, false
	}
}
