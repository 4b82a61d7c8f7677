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

// Package archive implements the account archive codec. Sealing runs
// serialize -> compress -> encrypt; opening runs the exact inverse.
// Record order is preserved end to end.
package archive

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/wso2/identity-account-transfer-service/internal/account/model"
	"github.com/wso2/identity-account-transfer-service/internal/crypto"
)

// ErrorKind classifies codec failures by pipeline stage.
type ErrorKind string

const (
	SerializeFailed  ErrorKind = "SERIALIZE_FAILED"
	CompressFailed   ErrorKind = "COMPRESS_FAILED"
	EncryptFailed    ErrorKind = "ENCRYPT_FAILED"
	DecompressFailed ErrorKind = "DECOMPRESS_FAILED"
	ParseFailed      ErrorKind = "PARSE_FAILED"
)

// CodecError wraps a stage failure. Decryption failures are passed through
// as *crypto.CryptoError so the caller can tell "password rejected" from
// DecompressFailed, which means the password was accepted but the
// decrypted bytes are garbage.
type CodecError struct {
	Kind ErrorKind
	Err  error
}

func (e *CodecError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("archive: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("archive: %s", e.Kind)
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, err error) *CodecError {
	return &CodecError{Kind: kind, Err: err}
}

// Seal serializes the accounts to a JSON array, compresses the result at
// the maximum deflate level and encrypts it under the given password. Any
// stage failure short-circuits; no partial archive is ever returned.
func Seal(accounts []model.Account, password string) ([]byte, error) {

	serialized, err := json.Marshal(accounts)
	if err != nil {
		return nil, newError(SerializeFailed, err)
	}

	var compressed bytes.Buffer
	writer, err := zlib.NewWriterLevel(&compressed, zlib.BestCompression)
	if err != nil {
		return nil, newError(CompressFailed, err)
	}
	if _, err := writer.Write(serialized); err != nil {
		return nil, newError(CompressFailed, err)
	}
	if err := writer.Close(); err != nil {
		return nil, newError(CompressFailed, err)
	}

	sealed, err := crypto.Encrypt(compressed.Bytes(), password)
	if err != nil {
		return nil, newError(EncryptFailed, err)
	}

	return []byte(sealed), nil
}

// Open reverses Seal: decrypt, decompress, parse. The decoded top-level
// value must be a JSON array of record objects; anything else fails with
// ParseFailed. Unknown record fields survive into each account's metadata.
func Open(data []byte, password string) ([]model.Account, error) {

	plaintext, err := crypto.Decrypt(string(data), password)
	if err != nil {
		return nil, err
	}

	reader, err := zlib.NewReader(bytes.NewReader(plaintext))
	if err != nil {
		return nil, newError(DecompressFailed, err)
	}
	defer reader.Close()

	decompressed, err := io.ReadAll(reader)
	if err != nil {
		return nil, newError(DecompressFailed, err)
	}

	accounts := []model.Account{}
	if err := json.Unmarshal(decompressed, &accounts); err != nil {
		return nil, newError(ParseFailed, err)
	}

	return accounts, nil
}
