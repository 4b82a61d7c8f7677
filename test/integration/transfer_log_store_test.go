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

package integration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wso2/identity-account-transfer-service/internal/oplog"
	oplogstore "github.com/wso2/identity-account-transfer-service/internal/oplog/store"
	"github.com/wso2/identity-account-transfer-service/internal/system/database/client"
)

func TestTransferLogStorePersistAndFetch(t *testing.T) {
	_, err := testPG.DB.Exec("TRUNCATE transfer_log;")
	require.NoError(t, err)

	logStore := oplogstore.NewTransferLogStore(client.NewDBClient(testPG.DB))

	entries := []oplog.Entry{
		{Timestamp: time.Now().UTC().Truncate(time.Second), Severity: oplog.InfoImportant, Message: "Starting account import"},
		{Timestamp: time.Now().UTC().Truncate(time.Second), Severity: oplog.Success, Message: "Import finished: 1 created, 0 updated, 0 skipped"},
	}
	require.NoError(t, logStore.PersistLast("run-1", entries))

	got, err := logStore.LastEntries()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, oplog.InfoImportant, got[0].Severity)
	assert.Equal(t, "Starting account import", got[0].Message)

	// A second persist overwrites the first wholesale.
	require.NoError(t, logStore.PersistLast("run-2", entries[:1]))

	// Reads are cache-first, so a fresh store proves the DB row was replaced.
	freshStore := oplogstore.NewTransferLogStore(client.NewDBClient(testPG.DB))
	got, err = freshStore.LastEntries()
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestTransferLogStoreFormattedLinesAreEscaped(t *testing.T) {
	_, err := testPG.DB.Exec("TRUNCATE transfer_log;")
	require.NoError(t, err)

	logStore := oplogstore.NewTransferLogStore(client.NewDBClient(testPG.DB))

	ts := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	entries := []oplog.Entry{
		{Timestamp: ts, Severity: oplog.Warning, Message: `Skipping account <script>alert("x")</script>`},
	}
	require.NoError(t, logStore.PersistLast("run-esc", entries))

	lines, err := logStore.FormattedLast()
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "2025-06-01T09:30:00Z [WARNING]")
	assert.Contains(t, lines[0], "&lt;script&gt;")
	assert.NotContains(t, lines[0], "<script>")
}

func TestTransferLogStoreExpiredRowIsInvisible(t *testing.T) {
	_, err := testPG.DB.Exec("TRUNCATE transfer_log;")
	require.NoError(t, err)

	_, err = testPG.DB.Exec(`
		INSERT INTO transfer_log (singleton, run_id, entries, expires_at)
		VALUES (TRUE, 'stale', '[]', NOW() - INTERVAL '1 minute');`)
	require.NoError(t, err)

	logStore := oplogstore.NewTransferLogStore(client.NewDBClient(testPG.DB))

	entries, err := logStore.LastEntries()
	require.NoError(t, err)
	assert.Empty(t, entries)

	lines, err := logStore.FormattedLast()
	require.NoError(t, err)
	assert.Empty(t, lines)
}
