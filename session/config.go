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
	"github.com/arborflow/sessionwindow/logger"
	"gopkg.in/yaml.v3"
)

// Config is the fixed-at-construction configuration for an Operator: the
// maximum permissible gap between consecutive event times in the same
// session, the event-time and key projections, and the aggregation
// contract. There is no environment variable, file, or CLI surface at this
// level — see RawConfig/LoadConfigYAML for the one on-disk representation
// this repository supports for stream definitions.
type Config[T any, K comparable, A any, R any] struct {
	// MaxGap is the maximum permissible gap between consecutive event times
	// in the same session. Must be > 0; a zero MaxGap is explicitly
	// supported by the session algorithm (single-event sessions) but is
	// rejected here as almost certainly a misconfiguration — callers who
	// truly want that behavior can pass a MaxGap of 1 and rely on an
	// EventTime projection with matching granularity. See ZeroGapConfig
	// for the validated escape hatch.
	MaxGap int64
	// EventTime extracts the event-time coordinate from an event.
	EventTime func(T) int64
	// Key extracts the grouping key from an event.
	Key func(T) K
	// Aggregator is the four-operation aggregation contract.
	Aggregator Aggregator[T, A, R]
	// Logger receives diagnostics for dropped late events, ignored
	// watermark regressions, and invariant violations. Defaults to this
	// repository's package-level default logger when nil.
	Logger logger.Logger

	allowZeroGap bool
}

// ZeroGapConfig is Config with MaxGap permitted to be zero, for callers who
// deliberately want every event to start its own single-event session
// unless two events share the exact same timestamp.
func ZeroGapConfig[T any, K comparable, A any, R any](cfg Config[T, K, A, R]) Config[T, K, A, R] {
	cfg.allowZeroGap = true
	return cfg
}

func (c Config[T, K, A, R]) validate() error {
	if c.MaxGap < 0 {
		return &ConfigError{Field: "MaxGap", Reason: "must not be negative"}
	}
	if c.MaxGap == 0 && !c.allowZeroGap {
		return &ConfigError{Field: "MaxGap", Reason: "must be > 0 (use ZeroGapConfig to opt into single-event sessions)"}
	}
	if c.EventTime == nil {
		return &ConfigError{Field: "EventTime", Reason: "must not be nil"}
	}
	if c.Key == nil {
		return &ConfigError{Field: "Key", Reason: "must not be nil"}
	}
	return c.Aggregator.validate()
}

// RawConfig is the serializable subset of Config: the values that can be
// expressed without Go closures. It is the shape this repository's
// examples/persistence and examples/unified_config samples use for on-disk
// stream definitions, ported here to event-time session windows. A caller
// decodes a RawConfig and then supplies the EventTime/Key/Aggregator
// closures it cannot express on disk.
type RawConfig struct {
	MaxGapMillis   int64  `yaml:"maxGapMillis"`
	TimeField      string `yaml:"timeField"`
	KeyField       string `yaml:"keyField"`
	AggregatorType string `yaml:"aggregatorType"`
}

// LoadConfigYAML decodes a RawConfig from YAML, matching the configuration
// format used elsewhere in this repository.
func LoadConfigYAML(data []byte) (RawConfig, error) {
	var raw RawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return RawConfig{}, err
	}
	return raw, nil
}
