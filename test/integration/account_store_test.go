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

package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wso2/identity-account-transfer-service/internal/account/model"
	"github.com/wso2/identity-account-transfer-service/internal/account/store"
	"github.com/wso2/identity-account-transfer-service/internal/system/database/client"
)

func newPostgresStore(t *testing.T) *store.PostgresAccountStore {
	t.Helper()
	_, err := testPG.DB.Exec("TRUNCATE accounts CASCADE;")
	require.NoError(t, err)
	return store.NewPostgresAccountStore(client.NewDBClient(testPG.DB))
}

func TestPostgresAccountStoreCreateAndFind(t *testing.T) {
	accountStore := newPostgresStore(t)

	id, err := accountStore.Create(model.Account{
		Username:       "alice",
		CredentialHash: "h1",
		Email:          "alice@example.org",
		DisplayName:    "Alice",
		RegisteredAt:   "2025-01-01 10:00:00",
	})
	require.NoError(t, err)
	require.Positive(t, id)

	found, err := accountStore.FindByUsername("alice")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, id, found.ID)
	assert.Equal(t, "alice", found.Username)
	assert.Equal(t, "h1", found.CredentialHash)
	assert.Equal(t, "alice@example.org", found.Email)
	assert.Equal(t, "Alice", found.DisplayName)
	assert.Nil(t, found.Metadata)

	absent, err := accountStore.FindByUsername("nobody")
	require.NoError(t, err)
	assert.Nil(t, absent)
}

func TestPostgresAccountStoreUpdate(t *testing.T) {
	accountStore := newPostgresStore(t)

	id, err := accountStore.Create(model.Account{Username: "bob", CredentialHash: "old"})
	require.NoError(t, err)

	err = accountStore.Update(id, model.Account{
		Username:       "bob",
		CredentialHash: "new",
		FirstName:      "Bob",
		LastName:       "Builder",
	})
	require.NoError(t, err)

	found, err := accountStore.FindByUsername("bob")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "new", found.CredentialHash)
	assert.Equal(t, "Bob", found.FirstName)
	assert.Equal(t, "Builder", found.LastName)
}

func TestPostgresAccountStoreMetadataRoundTrip(t *testing.T) {
	accountStore := newPostgresStore(t)

	id, err := accountStore.Create(model.Account{Username: "carol", CredentialHash: "h"})
	require.NoError(t, err)

	require.NoError(t, accountStore.SetMetadata(id, "locale", "en_GB"))
	require.NoError(t, accountStore.SetMetadata(id, "capabilities", map[string]interface{}{"admin": true}))
	// Overwrite an existing key.
	require.NoError(t, accountStore.SetMetadata(id, "locale", "de_DE"))

	found, err := accountStore.FindByUsername("carol")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "de_DE", found.Metadata["locale"])
	assert.Equal(t, map[string]interface{}{"admin": true}, found.Metadata["capabilities"])

	require.NoError(t, accountStore.ClearRoles(id))

	found, err = accountStore.FindByUsername("carol")
	require.NoError(t, err)
	assert.NotContains(t, found.Metadata, "capabilities")
	assert.Equal(t, "de_DE", found.Metadata["locale"])
}

func TestPostgresAccountStoreAllOrderedByID(t *testing.T) {
	accountStore := newPostgresStore(t)

	for _, name := range []string{"u1", "u2", "u3"} {
		_, err := accountStore.Create(model.Account{Username: name, CredentialHash: "h"})
		require.NoError(t, err)
	}

	accounts, err := accountStore.All()
	require.NoError(t, err)
	require.Len(t, accounts, 3)
	assert.Equal(t, "u1", accounts[0].Username)
	assert.Equal(t, "u2", accounts[1].Username)
	assert.Equal(t, "u3", accounts[2].Username)
}
