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

package store

import (
	"encoding/json"
	"fmt"
	"html"
	"time"

	"github.com/wso2/identity-account-transfer-service/internal/oplog"
	"github.com/wso2/identity-account-transfer-service/internal/system/cache"
	"github.com/wso2/identity-account-transfer-service/internal/system/constants"
	"github.com/wso2/identity-account-transfer-service/internal/system/database/client"
	errors2 "github.com/wso2/identity-account-transfer-service/internal/system/errors"
	"github.com/wso2/identity-account-transfer-service/internal/system/log"
)

// TransferLogStore persists the operation log of the most recent run.
// Retention is last-run-only: each PersistLast overwrites the previous
// log, and the persisted log expires after constants.TransferLogRetention.
type TransferLogStore struct {
	client client.DBClientInterface
	cache  *cache.Cache
}

// NewTransferLogStore creates a store over the given database client.
func NewTransferLogStore(dbClient client.DBClientInterface) *TransferLogStore {
	return &TransferLogStore{
		client: dbClient,
		cache:  cache.NewCache(constants.TransferLogRetention),
	}
}

// PersistLast overwrites the persisted log with this run's entries.
func (s *TransferLogStore) PersistLast(runID string, entries []oplog.Entry) error {

	logger := log.GetLogger()
	entriesJSON, err := json.Marshal(entries)
	if err != nil {
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.PERSIST_TRANSFER_LOG.Code,
			Message:     errors2.PERSIST_TRANSFER_LOG.Message,
			Description: "Failed to marshal operation log entries",
		}, err)
	}

	expiresAt := time.Now().UTC().Add(constants.TransferLogRetention)
	query := `
		INSERT INTO transfer_log (singleton, run_id, entries, expires_at)
		VALUES (TRUE, $1, $2, $3)
		ON CONFLICT (singleton) DO UPDATE SET
			run_id = EXCLUDED.run_id,
			entries = EXCLUDED.entries,
			expires_at = EXCLUDED.expires_at;`

	if _, err := s.client.ExecuteQuery(query, runID, entriesJSON, expiresAt); err != nil {
		errorMsg := fmt.Sprintf("Failed to persist operation log for run: %s", runID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.PERSIST_TRANSFER_LOG.Code,
			Message:     errors2.PERSIST_TRANSFER_LOG.Message,
			Description: errorMsg,
		}, err)
	}

	s.cache.Set(constants.TransferLogCacheKey, entries)
	logger.Debug("Operation log persisted", log.String("run_id", runID), log.Int("entries", len(entries)))
	return nil
}

// LastEntries returns the persisted entries of the most recent run, or an
// empty slice when nothing is persisted or the persisted log expired.
// Reads are served from the cache when possible.
func (s *TransferLogStore) LastEntries() ([]oplog.Entry, error) {

	if cached, ok := s.cache.Get(constants.TransferLogCacheKey); ok {
		if entries, ok := cached.([]oplog.Entry); ok {
			return entries, nil
		}
	}

	logger := log.GetLogger()
	query := `SELECT entries FROM transfer_log WHERE singleton = TRUE AND expires_at > $1;`

	results, err := s.client.ExecuteQuery(query, time.Now().UTC())
	if err != nil {
		errorMsg := "Failed to fetch the persisted operation log"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_TRANSFER_LOG.Code,
			Message:     errors2.GET_TRANSFER_LOG.Message,
			Description: errorMsg,
		}, err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	var entries []oplog.Entry
	raw, _ := results[0]["entries"].([]byte)
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UNMARSHAL_JSON.Code,
			Message:     errors2.UNMARSHAL_JSON.Message,
			Description: "Failed to unmarshal persisted operation log entries",
		}, err)
	}
	return entries, nil
}

// FormattedLast renders the persisted log as escaped display lines, one
// per entry, in append order. An empty slice means nothing is retrievable.
func (s *TransferLogStore) FormattedLast() ([]string, error) {

	entries, err := s.LastEntries()
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		line := fmt.Sprintf("%s [%s] %s",
			entry.Timestamp.Format(time.RFC3339), entry.Severity, html.EscapeString(entry.Message))
		lines = append(lines, line)
	}
	return lines, nil
}
