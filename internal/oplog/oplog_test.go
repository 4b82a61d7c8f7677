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

package oplog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendPreservesOrder(t *testing.T) {
	l := NewLog()
	l.Append("first", Info)
	l.Append("second", Warning)
	l.Appendf(Success, "third with %d args", 1)

	entries := l.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "first", entries[0].Message)
	assert.Equal(t, Info, entries[0].Severity)
	assert.Equal(t, "second", entries[1].Message)
	assert.Equal(t, Warning, entries[1].Severity)
	assert.Equal(t, "third with 1 args", entries[2].Message)
}

func TestClearDiscardsEntries(t *testing.T) {
	l := NewLog()
	l.Append("stale", Error)
	l.Clear()

	assert.Empty(t, l.Entries())

	l.Append("fresh", Info)
	require.Len(t, l.Entries(), 1)
	assert.Equal(t, "fresh", l.Entries()[0].Message)
}

func TestEntriesReturnsCopy(t *testing.T) {
	l := NewLog()
	l.Append("original", Info)

	entries := l.Entries()
	entries[0].Message = "mutated"

	assert.Equal(t, "original", l.Entries()[0].Message)
}

func TestEntryTimestampsAreUTC(t *testing.T) {
	l := NewLog()
	l.now = func() time.Time {
		return time.Date(2025, 3, 1, 12, 0, 0, 0, time.FixedZone("UTC-5", -5*3600))
	}
	l.Append("localized", Info)

	entry := l.Entries()[0]
	assert.Equal(t, time.UTC, entry.Timestamp.Location())
	assert.Equal(t, 17, entry.Timestamp.Hour())
}
