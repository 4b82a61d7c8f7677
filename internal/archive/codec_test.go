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

package archive

import (
	"bytes"
	"errors"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wso2/identity-account-transfer-service/internal/account/model"
	"github.com/wso2/identity-account-transfer-service/internal/crypto"
)

// sealRawJSON compresses and encrypts an arbitrary JSON payload, bypassing
// the account serialization step.
func sealRawJSON(t *testing.T, payload string) []byte {
	t.Helper()

	var compressed bytes.Buffer
	writer := zlib.NewWriter(&compressed)
	_, err := writer.Write([]byte(payload))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	sealed, err := crypto.Encrypt(compressed.Bytes(), "secret")
	require.NoError(t, err)
	return []byte(sealed)
}

func sampleAccounts() []model.Account {
	return []model.Account{
		{
			Username:       "alice",
			CredentialHash: "$P$Bhash1",
			Email:          "alice@example.org",
			DisplayName:    "Alice",
			RegisteredAt:   "2024-06-01 08:30:00",
			Metadata: map[string]interface{}{
				"locale":       "en_US",
				"capabilities": map[string]interface{}{"editor": true},
			},
		},
		{
			Username:       "bob",
			CredentialHash: "$P$Bhash2",
			NiceName:       "bobby",
		},
	}
}

func TestSealOpenRoundTrip(t *testing.T) {
	accounts := sampleAccounts()

	sealed, err := Seal(accounts, "passw0rd")
	require.NoError(t, err)

	opened, err := Open(sealed, "passw0rd")
	require.NoError(t, err)
	require.Len(t, opened, len(accounts))

	assert.Equal(t, "alice", opened[0].Username)
	assert.Equal(t, "$P$Bhash1", opened[0].CredentialHash)
	assert.Equal(t, "alice@example.org", opened[0].Email)
	assert.Equal(t, "en_US", opened[0].Metadata["locale"])
	assert.Equal(t, map[string]interface{}{"editor": true}, opened[0].Metadata["capabilities"])

	// Order is preserved through the pipeline.
	assert.Equal(t, "bob", opened[1].Username)
	assert.Equal(t, "bobby", opened[1].NiceName)
	assert.Nil(t, opened[1].Metadata)
}

func TestSealEmptyPassword(t *testing.T) {
	_, err := Seal(sampleAccounts(), "")

	var codecErr *CodecError
	require.ErrorAs(t, err, &codecErr)
	assert.Equal(t, EncryptFailed, codecErr.Kind)

	var cryptoErr *crypto.CryptoError
	require.ErrorAs(t, err, &cryptoErr)
	assert.Equal(t, crypto.MissingPassword, cryptoErr.Kind)
}

func TestOpenWrongPassword(t *testing.T) {
	sealed, err := Seal(sampleAccounts(), "first")
	require.NoError(t, err)

	_, err = Open(sealed, "second")
	require.Error(t, err)

	// Without an integrity tag a wrong password surfaces either at the
	// padding check or as a garbage deflate stream.
	var cryptoErr *crypto.CryptoError
	var codecErr *CodecError
	switch {
	case errors.As(err, &cryptoErr):
		assert.Equal(t, crypto.DecryptFailed, cryptoErr.Kind)
	case errors.As(err, &codecErr):
		assert.Contains(t, []ErrorKind{DecompressFailed, ParseFailed}, codecErr.Kind)
	default:
		t.Fatalf("unexpected error type: %v", err)
	}
}

func TestOpenMalformedBase64(t *testing.T) {
	_, err := Open([]byte("!!not-base64!!"), "secret")

	// Fails at the crypto layer before any decompression is attempted.
	var cryptoErr *crypto.CryptoError
	require.ErrorAs(t, err, &cryptoErr)
	assert.Equal(t, crypto.MalformedEncoding, cryptoErr.Kind)
}

func TestOpenMissingPassword(t *testing.T) {
	sealed, err := Seal(sampleAccounts(), "secret")
	require.NoError(t, err)

	_, err = Open(sealed, "")

	var cryptoErr *crypto.CryptoError
	require.ErrorAs(t, err, &cryptoErr)
	assert.Equal(t, crypto.MissingPassword, cryptoErr.Kind)
}

func TestOpenGarbagePlaintext(t *testing.T) {
	// Encrypt bytes that are not a deflate stream at all: the password is
	// accepted, decompression is not.
	notCompressed, err := crypto.Encrypt([]byte("this was never compressed"), "secret")
	require.NoError(t, err)

	_, err = Open([]byte(notCompressed), "secret")

	var codecErr *CodecError
	require.ErrorAs(t, err, &codecErr)
	assert.Equal(t, DecompressFailed, codecErr.Kind)
}

func TestOpenTopLevelObjectFailsParse(t *testing.T) {
	// A compressed, encrypted JSON object instead of an array.
	sealed := sealRawJSON(t, `{"key":"alice"}`)

	_, err := Open(sealed, "secret")

	var codecErr *CodecError
	require.ErrorAs(t, err, &codecErr)
	assert.Equal(t, ParseFailed, codecErr.Kind)
}

func TestRoundTripEmptyArchive(t *testing.T) {
	sealed, err := Seal(nil, "secret")
	require.NoError(t, err)

	opened, err := Open(sealed, "secret")
	require.NoError(t, err)
	assert.Empty(t, opened)
}

func TestOpenPreservesUnknownFieldsInMetadata(t *testing.T) {
	sealed := sealRawJSON(t, `[{"key":"alice","credentialHash":"h","futureField":"kept"}]`)

	opened, err := Open(sealed, "secret")
	require.NoError(t, err)
	require.Len(t, opened, 1)
	assert.Equal(t, "kept", opened[0].Metadata["futureField"])
}
