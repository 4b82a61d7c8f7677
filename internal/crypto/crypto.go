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

// Package crypto implements the symmetric encryption primitive used for
// account archives: AES-256-CBC with a key derived from the archive
// password and a fresh random IV per encryption.
//
// The key is SHA-256 of the password used directly, with no KDF, and the
// ciphertext carries no integrity tag. Both are inherited properties of
// the archive format and are kept for cross-deployment compatibility;
// a wrong password and a corrupted blob are therefore indistinguishable
// at decryption time.
package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// ErrorKind classifies encryption and decryption failures.
type ErrorKind string

const (
	// MissingPassword means an empty password was supplied.
	MissingPassword ErrorKind = "MISSING_PASSWORD"
	// MalformedEncoding means the input was not valid base64.
	MalformedEncoding ErrorKind = "MALFORMED_ENCODING"
	// Truncated means the decoded blob is too short to hold an IV and at
	// least one cipher block.
	Truncated ErrorKind = "TRUNCATED"
	// DecryptFailed means decryption produced an invalid padding, which is
	// the only available signal for a wrong password or corrupted bytes.
	DecryptFailed ErrorKind = "DECRYPT_FAILED"
	// EncryptFailed means the cipher or the system random source failed
	// while sealing.
	EncryptFailed ErrorKind = "ENCRYPT_FAILED"
)

// CryptoError is returned for every failure of Encrypt and Decrypt.
type CryptoError struct {
	Kind ErrorKind
	Err  error
}

func (e *CryptoError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("crypto: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("crypto: %s", e.Kind)
}

func (e *CryptoError) Unwrap() error {
	return e.Err
}

// newError builds a CryptoError of the given kind.
func newError(kind ErrorKind, err error) *CryptoError {
	return &CryptoError{Kind: kind, Err: err}
}

// deriveKey turns the archive password into 256-bit AES key material.
func deriveKey(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return sum[:]
}

// Encrypt seals the plaintext under the given password. The result is
// base64(iv || ciphertext) and is safe to embed in text transports.
// Encrypt keeps no state between calls and may be used concurrently.
func Encrypt(plaintext []byte, password string) (string, error) {

	if password == "" {
		return "", newError(MissingPassword, nil)
	}

	block, err := aes.NewCipher(deriveKey(password))
	if err != nil {
		return "", newError(EncryptFailed, err)
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", newError(EncryptFailed, err)
	}

	padded := padPKCS7(plaintext, aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return base64.StdEncoding.EncodeToString(append(iv, ciphertext...)), nil
}

// Decrypt reverses Encrypt: strict base64 decode, split off the IV,
// CBC-decrypt the remainder and strip the padding.
func Decrypt(encoded string, password string) ([]byte, error) {

	if password == "" {
		return nil, newError(MissingPassword, nil)
	}

	raw, err := base64.StdEncoding.Strict().DecodeString(encoded)
	if err != nil {
		return nil, newError(MalformedEncoding, err)
	}

	if len(raw) < aes.BlockSize*2 {
		return nil, newError(Truncated, fmt.Errorf("blob is %d bytes, need at least %d", len(raw), aes.BlockSize*2))
	}

	iv := raw[:aes.BlockSize]
	ciphertext := raw[aes.BlockSize:]
	if len(ciphertext)%aes.BlockSize != 0 {
		return nil, newError(Truncated, fmt.Errorf("ciphertext length %d is not a block multiple", len(ciphertext)))
	}

	block, err := aes.NewCipher(deriveKey(password))
	if err != nil {
		return nil, newError(DecryptFailed, err)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, err := unpadPKCS7(plaintext, aes.BlockSize)
	if err != nil {
		return nil, newError(DecryptFailed, err)
	}
	return unpadded, nil
}

// padPKCS7 appends PKCS#7 padding up to the block size.
func padPKCS7(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

// unpadPKCS7 validates and strips PKCS#7 padding.
func unpadPKCS7(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("invalid padded length %d", len(data))
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, fmt.Errorf("invalid padding byte %d", n)
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("inconsistent padding")
		}
	}
	return data[:len(data)-n], nil
}
