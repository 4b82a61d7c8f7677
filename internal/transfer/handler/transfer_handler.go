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

package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/wso2/identity-account-transfer-service/internal/system/config"
	"github.com/wso2/identity-account-transfer-service/internal/system/constants"
	errors2 "github.com/wso2/identity-account-transfer-service/internal/system/errors"
	"github.com/wso2/identity-account-transfer-service/internal/system/utils"
	"github.com/wso2/identity-account-transfer-service/internal/transfer/model"
	"github.com/wso2/identity-account-transfer-service/internal/transfer/provider"
)

// defaultMaxArchiveBytes caps import payloads when no limit is configured.
const defaultMaxArchiveBytes = 32 << 20

// TransferHandler serves the archive export/import endpoints.
type TransferHandler struct{}

// NewTransferHandler creates a new transfer handler.
func NewTransferHandler() *TransferHandler {
	return &TransferHandler{}
}

// HandleExport seals the account store into an archive and returns it as
// a file download.
func (th *TransferHandler) HandleExport(w http.ResponseWriter, r *http.Request) {

	if err := utils.AuthnAndAuthz(r, constants.ScopeExport); err != nil {
		utils.HandleError(w, err)
		return
	}

	var request model.ExportRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		utils.WriteErrorResponse(w, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.EXPORT_BAD_REQUEST.Code,
			Message:     errors2.EXPORT_BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "export"),
		}, http.StatusBadRequest))
		return
	}

	exportService, err := provider.NewTransferProvider().GetExportService()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	result, err := exportService.Export(request)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Data)
}

// HandleImport opens the supplied archive and reconciles it against the
// account store, returning the summary and per-record decisions.
func (th *TransferHandler) HandleImport(w http.ResponseWriter, r *http.Request) {

	if err := utils.AuthnAndAuthz(r, constants.ScopeImport); err != nil {
		utils.HandleError(w, err)
		return
	}

	maxBytes := config.GetATSRuntime().Config.Transfer.MaxArchiveBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxArchiveBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	var request model.ImportRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		utils.WriteErrorResponse(w, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.IMPORT_BAD_REQUEST.Code,
			Message:     errors2.IMPORT_BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "import"),
		}, http.StatusBadRequest))
		return
	}
	if request.Data == "" {
		utils.WriteErrorResponse(w, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.IMPORT_BAD_REQUEST.Code,
			Message:     errors2.IMPORT_BAD_REQUEST.Message,
			Description: "Archive content is empty.",
		}, http.StatusBadRequest))
		return
	}

	importService, err := provider.NewTransferProvider().GetImportService()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	result, err := importService.Import(request)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(result)
}

// HandleGetLog returns the formatted operation log of the most recent
// run, or 204 when nothing is persisted or the persisted log expired.
func (th *TransferHandler) HandleGetLog(w http.ResponseWriter, r *http.Request) {

	if err := utils.AuthnAndAuthz(r, constants.ScopeViewLog); err != nil {
		utils.HandleError(w, err)
		return
	}

	importService, err := provider.NewTransferProvider().GetImportService()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	lines, err := importService.FormattedLastLog()
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	if len(lines) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string][]string{"lines": lines})
}
