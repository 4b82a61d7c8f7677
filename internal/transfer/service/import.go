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

package service

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/wso2/identity-account-transfer-service/internal/account/store"
	"github.com/wso2/identity-account-transfer-service/internal/archive"
	"github.com/wso2/identity-account-transfer-service/internal/crypto"
	"github.com/wso2/identity-account-transfer-service/internal/oplog"
	oplogstore "github.com/wso2/identity-account-transfer-service/internal/oplog/store"
	errors2 "github.com/wso2/identity-account-transfer-service/internal/system/errors"
	"github.com/wso2/identity-account-transfer-service/internal/system/log"
	"github.com/wso2/identity-account-transfer-service/internal/transfer/model"
)

// ImportService opens an archive and reconciles its records against the
// account store. A codec or crypto failure aborts the run before any
// record is applied; per-record failures only skip the record.
type ImportService struct {
	reconciler *Reconciler
	logStore   *oplogstore.TransferLogStore
}

// NewImportService creates an import service over the given stores.
func NewImportService(accountStore store.AccountStore, logStore *oplogstore.TransferLogStore) *ImportService {
	return &ImportService{
		reconciler: NewReconciler(accountStore),
		logStore:   logStore,
	}
}

// Import opens the archive in the request and applies it to the store,
// or only computes decisions when the request asks for a dry run. The
// accumulated operation log is persisted whether the run succeeds or
// aborts on a bad archive.
func (s *ImportService) Import(request model.ImportRequest) (*model.ImportResult, error) {

	logger := log.GetLogger()
	runID := uuid.NewString()
	runLog := oplog.NewLog()
	runLog.Clear()
	if request.DryRun {
		runLog.Append("Starting account import (dry run)", oplog.InfoImportant)
	} else {
		runLog.Append("Starting account import", oplog.InfoImportant)
	}

	accounts, err := archive.Open([]byte(request.Data), request.Password)
	if err != nil {
		runLog.Appendf(oplog.Error, "Failed to open the archive: %v", err)
		s.persistLog(runID, runLog)
		return nil, openFailure(err)
	}

	if len(accounts) == 0 {
		runLog.Append("The archive contains no records", oplog.Warning)
	}

	summary, decisions := s.reconciler.Apply(accounts, request.DryRun, runLog)
	runLog.Appendf(oplog.Success, "Import finished: %d created, %d updated, %d skipped",
		summary.Created, summary.Updated, summary.Skipped)
	s.persistLog(runID, runLog)

	actionID := log.ActionImportAccounts
	if request.DryRun {
		actionID = log.ActionImportDryRun
	}
	logger.Audit(log.AuditEvent{
		InitiatorType: log.InitiatorTypeUser,
		TargetType:    log.TargetTypeArchive,
		ActionID:      actionID,
		Data: map[string]interface{}{
			"run_id":  runID,
			"created": summary.Created,
			"updated": summary.Updated,
			"skipped": summary.Skipped,
		},
	})

	return &model.ImportResult{
		RunID:     runID,
		DryRun:    request.DryRun,
		Summary:   summary,
		Decisions: decisions,
		Log:       runLog.Entries(),
	}, nil
}

// FormattedLastLog returns the display lines of the most recently
// persisted run log, or an empty slice when none is retrievable.
func (s *ImportService) FormattedLastLog() ([]string, error) {
	return s.logStore.FormattedLast()
}

// openFailure maps an archive open failure onto the API error space. A
// missing password is the caller's omission; everything else means the
// supplied archive or password is unusable, which is still a client
// problem, never a server fault.
func openFailure(err error) error {

	var cryptoErr *crypto.CryptoError
	if errors.As(err, &cryptoErr) && cryptoErr.Kind == crypto.MissingPassword {
		return errors2.NewClientError(errors2.ARCHIVE_PASSWORD_REQUIRED, http.StatusBadRequest)
	}
	return errors2.NewClientError(errors2.ARCHIVE_REJECTED, http.StatusBadRequest)
}

func (s *ImportService) persistLog(runID string, runLog *oplog.Log) {

	if s.logStore == nil {
		return
	}
	if err := s.logStore.PersistLast(runID, runLog.Entries()); err != nil {
		log.GetLogger().Warn("Failed to persist the operation log",
			log.String("run_id", runID), log.Error(err))
	}
}
