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
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/wso2/identity-account-transfer-service/internal/account/store"
	"github.com/wso2/identity-account-transfer-service/internal/archive"
	"github.com/wso2/identity-account-transfer-service/internal/oplog"
	oplogstore "github.com/wso2/identity-account-transfer-service/internal/oplog/store"
	"github.com/wso2/identity-account-transfer-service/internal/system/constants"
	errors2 "github.com/wso2/identity-account-transfer-service/internal/system/errors"
	"github.com/wso2/identity-account-transfer-service/internal/system/log"
	"github.com/wso2/identity-account-transfer-service/internal/transfer/model"
)

// ExportService seals the full account store into one encrypted archive.
type ExportService struct {
	store    store.AccountStore
	logStore *oplogstore.TransferLogStore
	now      func() time.Time
}

// NewExportService creates an export service over the given stores.
func NewExportService(accountStore store.AccountStore, logStore *oplogstore.TransferLogStore) *ExportService {
	return &ExportService{
		store:    accountStore,
		logStore: logStore,
		now:      time.Now,
	}
}

// Export fetches every stored account, normalizes it and seals the
// collection under the request password. The run's operation log is
// persisted before returning; a persistence failure is logged but does
// not fail an otherwise successful export.
func (s *ExportService) Export(request model.ExportRequest) (*model.ExportResult, error) {

	logger := log.GetLogger()
	runID := uuid.NewString()
	runLog := oplog.NewLog()
	runLog.Clear()
	runLog.Append("Starting account export", oplog.InfoImportant)

	if request.Password == "" {
		runLog.Append("Export rejected: no archive password supplied", oplog.Error)
		s.persistLog(runID, runLog)
		return nil, errors2.NewClientError(errors2.ARCHIVE_PASSWORD_REQUIRED, http.StatusBadRequest)
	}

	accounts, err := s.store.All()
	if err != nil {
		runLog.Appendf(oplog.Error, "Failed to fetch accounts: %v", err)
		s.persistLog(runID, runLog)
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.EXPORT_ARCHIVE.Code,
			Message:     errors2.EXPORT_ARCHIVE.Message,
			Description: "Failed to fetch accounts from the store",
		}, err)
	}

	exportedAt := s.now().UTC()
	for i := range accounts {
		accounts[i].Username = accounts[i].NormalizedUsername()
		if accounts[i].RegisteredAt == "" {
			accounts[i].RegisteredAt = exportedAt.Format(constants.RegisteredAtLayout)
		}
	}
	if len(accounts) == 0 {
		runLog.Append("The account store is empty; exporting an empty archive", oplog.Warning)
	}

	data, err := archive.Seal(accounts, request.Password)
	if err != nil {
		runLog.Appendf(oplog.Error, "Failed to seal the archive: %v", err)
		s.persistLog(runID, runLog)
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.EXPORT_ARCHIVE.Code,
			Message:     errors2.EXPORT_ARCHIVE.Message,
			Description: "Failed to seal the account archive",
		}, err)
	}

	filename := constants.ArchiveFilenamePrefix +
		exportedAt.Format(constants.ArchiveFilenameTimestampLayout) +
		constants.ArchiveFileExtension

	runLog.Appendf(oplog.Success, "Exported %d account(s) to %s", len(accounts), filename)
	s.persistLog(runID, runLog)

	logger.Audit(log.AuditEvent{
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      filename,
		TargetType:    log.TargetTypeArchive,
		ActionID:      log.ActionExportAccounts,
		Data:          map[string]interface{}{"run_id": runID, "count": len(accounts)},
	})

	return &model.ExportResult{
		RunID:    runID,
		Data:     data,
		Filename: filename,
		Count:    len(accounts),
	}, nil
}

func (s *ExportService) persistLog(runID string, runLog *oplog.Log) {

	if s.logStore == nil {
		return
	}
	if err := s.logStore.PersistLast(runID, runLog.Entries()); err != nil {
		log.GetLogger().Warn("Failed to persist the operation log",
			log.String("run_id", runID), log.Error(err))
	}
}
