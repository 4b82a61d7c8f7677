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

package model

import (
	accountmodel "github.com/wso2/identity-account-transfer-service/internal/account/model"
	"github.com/wso2/identity-account-transfer-service/internal/oplog"
)

// Action is the outcome kind of reconciling one record.
type Action string

const (
	ActionCreated Action = "CREATED"
	ActionUpdated Action = "UPDATED"
	ActionSkipped Action = "SKIPPED"
)

// SkipReason explains a skipped record. Structural rejections and store
// failures are collapsed into one skip counter; the reason keeps them
// distinguishable per decision.
type SkipReason string

const (
	SkipMissingUsername   SkipReason = "MISSING_USERNAME"
	SkipMissingCredential SkipReason = "MISSING_CREDENTIAL"
	SkipStoreError        SkipReason = "STORE_ERROR"
)

// Decision is the reconciliation outcome for a single record. Per-record
// failures are captured here as values; they are never propagated as
// errors, which is what keeps one bad record from aborting a run.
type Decision struct {
	Username     string                 `json:"username"`
	Action       Action                 `json:"action"`
	Reason       SkipReason             `json:"reason,omitempty"`
	Detail       string                 `json:"detail,omitempty"`
	ID           accountmodel.AccountID `json:"id"`
	MetadataKeys []string               `json:"metadataKeys,omitempty"`
}

// ImportSummary holds the exact decision counts of one run.
type ImportSummary struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// ImportResult is everything an import run produces for the caller.
type ImportResult struct {
	RunID     string        `json:"runId"`
	DryRun    bool          `json:"dryRun"`
	Summary   ImportSummary `json:"summary"`
	Decisions []Decision    `json:"decisions"`
	Log       []oplog.Entry `json:"log"`
}

// ExportResult carries the sealed archive and its suggested filename.
type ExportResult struct {
	RunID    string
	Data     []byte
	Filename string
	Count    int
}

// ImportRequest is the import endpoint payload. Data carries the archive
// content, which is already base64 text by construction.
type ImportRequest struct {
	Password string `json:"password"`
	DryRun   bool   `json:"dryRun"`
	Data     string `json:"data"`
}

// ExportRequest is the export endpoint payload.
type ExportRequest struct {
	Password string `json:"password"`
}
