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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalKnownFields(t *testing.T) {
	data := `{
		"key": "Alice",
		"credentialHash": "$P$Bhash",
		"email": "alice@example.org",
		"niceKey": "alice-nice",
		"displayName": "Alice A.",
		"registeredAt": "2024-06-01 08:30:00",
		"metadata": {"locale": "en_US"}
	}`

	var account Account
	require.NoError(t, json.Unmarshal([]byte(data), &account))

	assert.Equal(t, "Alice", account.Username)
	assert.Equal(t, "$P$Bhash", account.CredentialHash)
	assert.Equal(t, "alice@example.org", account.Email)
	assert.Equal(t, "alice-nice", account.NiceName)
	assert.Equal(t, "Alice A.", account.DisplayName)
	assert.Equal(t, "2024-06-01 08:30:00", account.RegisteredAt)
	assert.Equal(t, "en_US", account.Metadata["locale"])
}

func TestUnmarshalFoldsUnknownFieldsIntoMetadata(t *testing.T) {
	data := `{"key": "bob", "futureField": 42, "another": {"x": true}}`

	var account Account
	require.NoError(t, json.Unmarshal([]byte(data), &account))

	assert.Equal(t, "bob", account.Username)
	assert.Equal(t, float64(42), account.Metadata["futureField"])
	assert.Equal(t, map[string]interface{}{"x": true}, account.Metadata["another"])
}

func TestUnmarshalExplicitMetadataWinsOverUnknownField(t *testing.T) {
	data := `{"key": "bob", "locale": "top-level", "metadata": {"locale": "nested"}}`

	var account Account
	require.NoError(t, json.Unmarshal([]byte(data), &account))

	assert.Equal(t, "nested", account.Metadata["locale"])
}

func TestMarshalOmitsStoreID(t *testing.T) {
	account := Account{ID: 7, Username: "carol"}

	data, err := json.Marshal(account)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"id"`)
	assert.Contains(t, string(data), `"key":"carol"`)
}

func TestNormalizedUsername(t *testing.T) {
	account := Account{Username: "  MixedCase "}
	assert.Equal(t, "mixedcase", account.NormalizedUsername())

	empty := Account{Username: "   "}
	assert.Equal(t, "", empty.NormalizedUsername())
}

func TestHasRoleSet(t *testing.T) {
	withRoles := Account{Metadata: map[string]interface{}{"capabilities": map[string]interface{}{"admin": true}}}
	assert.True(t, withRoles.HasRoleSet("capabilities"))

	withoutRoles := Account{Metadata: map[string]interface{}{"locale": "en"}}
	assert.False(t, withoutRoles.HasRoleSet("capabilities"))

	nilMetadata := Account{}
	assert.False(t, nilMetadata.HasRoleSet("capabilities"))
}

func TestAccountIDVariants(t *testing.T) {
	real := RealID(42)
	assert.False(t, real.IsPending())
	assert.Equal(t, int64(42), real.Value())
	assert.Equal(t, "42", real.String())

	pending := PendingID(3)
	assert.True(t, pending.IsPending())
	assert.Equal(t, "pending-3", pending.String())

	data, err := json.Marshal(pending)
	require.NoError(t, err)
	assert.Equal(t, `"pending-3"`, string(data))
}
