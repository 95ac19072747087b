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

import "fmt"

// InvariantError reports that the operator detected a violation of one of
// its structural invariants (two overlapping windows for the same key, a
// deadline index entry with no matching window, and similar). Per the
// spec's error handling design, this is a programming-error condition: the
// operator panics with an *InvariantError rather than returning one, since
// its caller is expected to treat the condition as job-fatal and the
// operator's internal state is no longer trustworthy once it occurs.
type InvariantError struct {
	Reason string
	Detail interface{}
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("session: invariant violation: %s (%v)", e.Reason, e.Detail)
}

// ConfigError reports an invalid Config passed to NewOperator. Unlike
// InvariantError, this is an ordinary, recoverable error: the caller simply
// fixed their configuration and constructs a new Operator.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("session: invalid config field %q: %s", e.Field, e.Reason)
}
