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

import "time"

// Severity tags one operation log entry.
type Severity string

const (
	Info          Severity = "INFO"
	Warning       Severity = "WARNING"
	Error         Severity = "ERROR"
	Success       Severity = "SUCCESS"
	InfoImportant Severity = "INFO_IMPORTANT"
	InfoDetail    Severity = "INFO_DETAIL"
)

// Entry is one timestamped line of an export or import run.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
}
