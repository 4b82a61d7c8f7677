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
	"fmt"
	"sort"

	"github.com/wso2/identity-account-transfer-service/internal/account/model"
	"github.com/wso2/identity-account-transfer-service/internal/system/constants"
)

// MemoryAccountStore is an in-memory AccountStore used by unit tests and
// local development. Every mutating call is appended to Mutations so tests
// can assert that dry runs never touch the store.
type MemoryAccountStore struct {
	accounts map[int64]*model.Account
	byName   map[string]int64
	nextID   int64

	// Mutations records Create/Update/SetMetadata/ClearRoles invocations
	// in call order.
	Mutations []string

	// Optional failure injection for reconciliation tests.
	FailCreate      error
	FailUpdate      error
	FailFind        error
	FailSetMetadata error
}

// NewMemoryAccountStore creates an empty in-memory store.
func NewMemoryAccountStore() *MemoryAccountStore {
	return &MemoryAccountStore{
		accounts: make(map[int64]*model.Account),
		byName:   make(map[string]int64),
		nextID:   1,
	}
}

// All returns the stored accounts ordered by id.
func (s *MemoryAccountStore) All() ([]model.Account, error) {

	ids := make([]int64, 0, len(s.accounts))
	for id := range s.accounts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	accounts := make([]model.Account, 0, len(ids))
	for _, id := range ids {
		accounts = append(accounts, cloneAccount(*s.accounts[id]))
	}
	return accounts, nil
}

// FindByUsername returns a copy of the stored account or (nil, nil).
func (s *MemoryAccountStore) FindByUsername(username string) (*model.Account, error) {

	if s.FailFind != nil {
		return nil, s.FailFind
	}
	id, ok := s.byName[username]
	if !ok {
		return nil, nil
	}
	account := cloneAccount(*s.accounts[id])
	return &account, nil
}

// Create inserts a new account and returns its identifier.
func (s *MemoryAccountStore) Create(account model.Account) (int64, error) {

	s.Mutations = append(s.Mutations, "Create:"+account.Username)
	if s.FailCreate != nil {
		return 0, s.FailCreate
	}

	id := s.nextID
	s.nextID++
	stored := cloneAccount(account)
	stored.ID = id
	stored.Metadata = nil
	s.accounts[id] = &stored
	s.byName[account.Username] = id
	return id, nil
}

// Update overwrites the core fields of an existing account.
func (s *MemoryAccountStore) Update(id int64, account model.Account) error {

	s.Mutations = append(s.Mutations, fmt.Sprintf("Update:%d", id))
	if s.FailUpdate != nil {
		return s.FailUpdate
	}

	stored, ok := s.accounts[id]
	if !ok {
		return fmt.Errorf("no account with id %d", id)
	}
	stored.CredentialHash = account.CredentialHash
	stored.Email = account.Email
	stored.URL = account.URL
	stored.NiceName = account.NiceName
	stored.DisplayName = account.DisplayName
	stored.FirstName = account.FirstName
	stored.LastName = account.LastName
	stored.Description = account.Description
	stored.RegisteredAt = account.RegisteredAt
	return nil
}

// SetMetadata upserts a single metadata key.
func (s *MemoryAccountStore) SetMetadata(id int64, key string, value interface{}) error {

	s.Mutations = append(s.Mutations, fmt.Sprintf("SetMetadata:%d:%s", id, key))
	if s.FailSetMetadata != nil {
		return s.FailSetMetadata
	}

	stored, ok := s.accounts[id]
	if !ok {
		return fmt.Errorf("no account with id %d", id)
	}
	if stored.Metadata == nil {
		stored.Metadata = make(map[string]interface{})
	}
	stored.Metadata[key] = value
	return nil
}

// ClearRoles removes the role set key from the account metadata.
func (s *MemoryAccountStore) ClearRoles(id int64) error {

	s.Mutations = append(s.Mutations, fmt.Sprintf("ClearRoles:%d", id))
	stored, ok := s.accounts[id]
	if !ok {
		return fmt.Errorf("no account with id %d", id)
	}
	delete(stored.Metadata, constants.MetadataRolesKey)
	return nil
}

func cloneAccount(account model.Account) model.Account {
	clone := account
	if account.Metadata != nil {
		clone.Metadata = make(map[string]interface{}, len(account.Metadata))
		for k, v := range account.Metadata {
			clone.Metadata[k] = v
		}
	}
	return clone
}
