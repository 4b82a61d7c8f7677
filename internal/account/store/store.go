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
	"github.com/wso2/identity-account-transfer-service/internal/account/model"
)

// AccountStore is the mutation surface the reconciler works against.
// Implementations must treat usernames as already normalized; lookups are
// exact matches.
type AccountStore interface {
	// All returns every account in stable iteration order, metadata included.
	All() ([]model.Account, error)
	// FindByUsername returns the stored account or (nil, nil) when absent.
	FindByUsername(username string) (*model.Account, error)
	// Create inserts a new account and returns its store identifier.
	Create(account model.Account) (int64, error)
	// Update overwrites the core fields of an existing account.
	Update(id int64, account model.Account) error
	// SetMetadata upserts a single metadata key for the account.
	SetMetadata(id int64, key string, value interface{}) error
	// ClearRoles removes the stored role/capability set for the account.
	ClearRoles(id int64) error
}
