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

package crypto

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	var cryptoErr *CryptoError
	require.ErrorAs(t, err, &cryptoErr)
	assert.Equal(t, kind, cryptoErr.Kind)
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	plaintext := []byte(`[{"key":"alice","credentialHash":"h"}]`)

	sealed, err := Encrypt(plaintext, "secret")
	require.NoError(t, err)

	opened, err := Decrypt(sealed, "secret")
	require.NoError(t, err)
	assert.Equal(t, plaintext, opened)
}

func TestEncryptRandomIVPerCall(t *testing.T) {
	plaintext := []byte("same bytes every time")

	first, err := Encrypt(plaintext, "secret")
	require.NoError(t, err)
	second, err := Encrypt(plaintext, "secret")
	require.NoError(t, err)

	// A fresh IV per call makes identical plaintexts seal differently.
	assert.NotEqual(t, first, second)
}

func TestEncryptOutputFraming(t *testing.T) {
	sealed, err := Encrypt([]byte("x"), "secret")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.Strict().DecodeString(sealed)
	require.NoError(t, err)

	// 16-byte IV plus at least one full cipher block.
	require.GreaterOrEqual(t, len(raw), 32)
	assert.Zero(t, (len(raw)-16)%16)
}

func TestEncryptEmptyPassword(t *testing.T) {
	_, err := Encrypt([]byte("data"), "")
	requireKind(t, err, MissingPassword)
}

func TestDecryptEmptyPassword(t *testing.T) {
	_, err := Decrypt("aGVsbG8=", "")
	requireKind(t, err, MissingPassword)
}

func TestDecryptWrongPassword(t *testing.T) {
	plaintext := []byte("some plaintext that pads")
	sealed, err := Encrypt(plaintext, "right")
	require.NoError(t, err)

	// No integrity tag: a wrong password almost always shows up as bad
	// padding, but can also decode to garbage that happens to unpad.
	opened, err := Decrypt(sealed, "wrong")
	if err != nil {
		requireKind(t, err, DecryptFailed)
	} else {
		assert.NotEqual(t, plaintext, opened)
	}
}

func TestDecryptMalformedBase64(t *testing.T) {
	_, err := Decrypt("not*base64*at*all", "secret")
	requireKind(t, err, MalformedEncoding)
}

func TestDecryptTruncatedBlob(t *testing.T) {
	// Valid base64, but too short to hold an IV and one block.
	short := base64.StdEncoding.EncodeToString(make([]byte, 20))
	_, err := Decrypt(short, "secret")
	requireKind(t, err, Truncated)
}

func TestDecryptNonBlockMultipleCiphertext(t *testing.T) {
	// IV plus a ciphertext that is not a multiple of the block size.
	blob := base64.StdEncoding.EncodeToString(make([]byte, 16+33))
	_, err := Decrypt(blob, "secret")
	requireKind(t, err, Truncated)
}

func TestDecryptCorruptedCiphertext(t *testing.T) {
	sealed, err := Encrypt([]byte("plaintext worth protecting"), "secret")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(sealed)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xFF
	corrupted := base64.StdEncoding.EncodeToString(raw)

	opened, err := Decrypt(corrupted, "secret")
	if err != nil {
		requireKind(t, err, DecryptFailed)
	} else {
		assert.NotEqual(t, []byte("plaintext worth protecting"), opened)
	}
}

func TestRoundTripEmptyPlaintext(t *testing.T) {
	sealed, err := Encrypt(nil, "secret")
	require.NoError(t, err)

	opened, err := Decrypt(sealed, "secret")
	require.NoError(t, err)
	assert.Empty(t, opened)
}
