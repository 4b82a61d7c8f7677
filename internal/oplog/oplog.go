/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package oplog provides the append-only operation log accumulated during
// one export or import run. A Log is explicitly constructed by the caller
// and owned by a single run; it is not safe for use by two concurrent runs
// without external synchronization.
package oplog

import (
	"fmt"
	"time"
)

// Log is an in-memory, append-only entry buffer. One run's entry count is
// bounded by one archive's record count, so the buffer is unbounded by
// design (no rotation).
type Log struct {
	entries []Entry
	now     func() time.Time
}

// NewLog creates an empty operation log.
func NewLog() *Log {
	return &Log{now: time.Now}
}

// Clear discards all entries. Called once at the start of each run,
// never mid-run.
func (l *Log) Clear() {
	l.entries = nil
}

// Append adds one entry with the given severity.
func (l *Log) Append(message string, severity Severity) {
	l.entries = append(l.entries, Entry{
		Timestamp: l.now().UTC(),
		Severity:  severity,
		Message:   message,
	})
}

// Appendf formats and appends one entry.
func (l *Log) Appendf(severity Severity, format string, args ...interface{}) {
	l.Append(fmt.Sprintf(format, args...), severity)
}

// Entries returns a copy of the accumulated entries in append order.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}
