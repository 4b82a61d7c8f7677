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

package errors

const errorPrefix = "ATS-"

var (
	// Server error codes

	EXPORT_ARCHIVE = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Error while exporting the account archive.",
	}

	IMPORT_ARCHIVE = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Error while importing the account archive.",
	}

	GET_ACCOUNT = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Error while fetching account(s).",
	}

	ADD_ACCOUNT = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Error while creating an account.",
	}

	UPDATE_ACCOUNT = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Error while updating an account.",
	}

	SET_ACCOUNT_METADATA = ErrorMessage{
		Code:    errorPrefix + "15006",
		Message: "Error while writing account metadata.",
	}

	CLEAR_ACCOUNT_ROLES = ErrorMessage{
		Code:    errorPrefix + "15007",
		Message: "Error while clearing account roles.",
	}

	PERSIST_TRANSFER_LOG = ErrorMessage{
		Code:    errorPrefix + "15008",
		Message: "Error while persisting the transfer operation log.",
	}

	GET_TRANSFER_LOG = ErrorMessage{
		Code:    errorPrefix + "15009",
		Message: "Error while fetching the transfer operation log.",
	}

	UNMARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "15010",
		Message: "Error while unmarshalling JSON content.",
	}

	PARSING_ERROR = ErrorMessage{
		Code:    errorPrefix + "15011",
		Message: "Error while parsing token claims.",
	}

	HEALTH_CHECK = ErrorMessage{
		Code:    errorPrefix + "15012",
		Message: "Error while checking service health.",
	}

	// Client error codes

	UN_AUTHORIZED = ErrorMessage{
		Code:    errorPrefix + "11001",
		Message: "Unauthorized request.",
	}

	FORBIDDEN = ErrorMessage{
		Code:    errorPrefix + "11002",
		Message: "Insufficient permissions to perform this operation.",
	}

	EXPORT_BAD_REQUEST = ErrorMessage{
		Code:    errorPrefix + "11003",
		Message: "Invalid export request.",
	}

	IMPORT_BAD_REQUEST = ErrorMessage{
		Code:    errorPrefix + "11004",
		Message: "Invalid import request.",
	}

	ARCHIVE_PASSWORD_REQUIRED = ErrorMessage{
		Code:        errorPrefix + "11005",
		Message:     "Archive password is required.",
		Description: "A non-empty password must be supplied to seal or open an archive.",
	}

	ARCHIVE_REJECTED = ErrorMessage{
		Code:    errorPrefix + "11006",
		Message: "The supplied archive could not be opened.",
	}
)
