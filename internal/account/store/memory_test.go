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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wso2/identity-account-transfer-service/internal/account/model"
)

func TestMemoryStoreCreateFindUpdate(t *testing.T) {
	s := NewMemoryAccountStore()

	id, err := s.Create(model.Account{Username: "alice", CredentialHash: "h1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	found, err := s.FindByUsername("alice")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "h1", found.CredentialHash)

	require.NoError(t, s.Update(id, model.Account{Username: "alice", CredentialHash: "h2"}))

	found, err = s.FindByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, "h2", found.CredentialHash)

	absent, err := s.FindByUsername("missing")
	require.NoError(t, err)
	assert.Nil(t, absent)
}

func TestMemoryStoreMetadataAndRoles(t *testing.T) {
	s := NewMemoryAccountStore()

	id, err := s.Create(model.Account{Username: "bob", CredentialHash: "h"})
	require.NoError(t, err)

	require.NoError(t, s.SetMetadata(id, "locale", "en"))
	require.NoError(t, s.SetMetadata(id, "capabilities", []interface{}{"admin"}))
	require.NoError(t, s.ClearRoles(id))

	found, err := s.FindByUsername("bob")
	require.NoError(t, err)
	assert.Equal(t, "en", found.Metadata["locale"])
	assert.NotContains(t, found.Metadata, "capabilities")
}

func TestMemoryStoreRecordsMutations(t *testing.T) {
	s := NewMemoryAccountStore()

	id, _ := s.Create(model.Account{Username: "carol", CredentialHash: "h"})
	_ = s.Update(id, model.Account{Username: "carol"})
	_ = s.SetMetadata(id, "k", "v")
	_ = s.ClearRoles(id)

	assert.Equal(t, []string{
		"Create:carol",
		"Update:1",
		"SetMetadata:1:k",
		"ClearRoles:1",
	}, s.Mutations)
}

func TestMemoryStoreFindReturnsCopy(t *testing.T) {
	s := NewMemoryAccountStore()

	id, _ := s.Create(model.Account{Username: "dave", CredentialHash: "h"})
	require.NoError(t, s.SetMetadata(id, "locale", "en"))

	found, err := s.FindByUsername("dave")
	require.NoError(t, err)
	found.Metadata["locale"] = "mutated"
	found.CredentialHash = "mutated"

	again, err := s.FindByUsername("dave")
	require.NoError(t, err)
	assert.Equal(t, "en", again.Metadata["locale"])
	assert.Equal(t, "h", again.CredentialHash)
}

func TestMemoryStoreFailureInjection(t *testing.T) {
	s := NewMemoryAccountStore()
	s.FailCreate = assert.AnError

	_, err := s.Create(model.Account{Username: "erin", CredentialHash: "h"})
	assert.ErrorIs(t, err, assert.AnError)
	// The attempt is still recorded.
	assert.Equal(t, []string{"Create:erin"}, s.Mutations)
}
