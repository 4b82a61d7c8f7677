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

package constants

import "time"

// ApiBasePath is the base path under which all service routes are mounted.
const ApiBasePath = "/api/v1"

// MetadataRolesKey is the metadata key that carries an account's
// role/capability set. Importing this key replaces the stored role set
// wholesale; every other metadata key is merged individually.
const MetadataRolesKey = "capabilities"

// ArchiveFileExtension is the file extension convention for exported archives.
const ArchiveFileExtension = ".k7"

// ArchiveFilenamePrefix is the prefix of suggested export filenames.
const ArchiveFilenamePrefix = "accounts-"

// ArchiveFilenameTimestampLayout formats the timestamp embedded in
// suggested export filenames.
const ArchiveFilenameTimestampLayout = "20060102-150405"

// RegisteredAtLayout formats account registration timestamps inside archives.
const RegisteredAtLayout = "2006-01-02 15:04:05"

// TransferLogRetention is how long a persisted operation log stays
// retrievable after a run ends.
const TransferLogRetention = time.Hour

// TransferLogCacheKey keys the last persisted operation log in the
// in-process cache.
const TransferLogCacheKey = "transfer:last_log"

// Authorization scopes for the transfer API.
const (
	ScopeExport  = "account_transfer:export"
	ScopeImport  = "account_transfer:import"
	ScopeViewLog = "account_transfer:view"
)
