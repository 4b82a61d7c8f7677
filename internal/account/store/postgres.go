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
	"encoding/json"
	"fmt"

	"github.com/wso2/identity-account-transfer-service/internal/account/model"
	"github.com/wso2/identity-account-transfer-service/internal/system/constants"
	"github.com/wso2/identity-account-transfer-service/internal/system/database/client"
	errors2 "github.com/wso2/identity-account-transfer-service/internal/system/errors"
	"github.com/wso2/identity-account-transfer-service/internal/system/log"
)

// PostgresAccountStore persists accounts in the accounts and
// account_metadata tables.
type PostgresAccountStore struct {
	client client.DBClientInterface
}

// NewPostgresAccountStore creates a store over the given database client.
func NewPostgresAccountStore(dbClient client.DBClientInterface) *PostgresAccountStore {
	return &PostgresAccountStore{
		client: dbClient,
	}
}

// scanAccountRow maps one accounts row onto the model.
func scanAccountRow(row map[string]interface{}) model.Account {

	var account model.Account
	account.ID = int64Val(row["id"])
	account.Username = stringVal(row["username"])
	account.CredentialHash = stringVal(row["credential_hash"])
	account.Email = stringVal(row["email"])
	account.URL = stringVal(row["url"])
	account.NiceName = stringVal(row["nice_name"])
	account.DisplayName = stringVal(row["display_name"])
	account.FirstName = stringVal(row["first_name"])
	account.LastName = stringVal(row["last_name"])
	account.Description = stringVal(row["description"])
	account.RegisteredAt = stringVal(row["registered_at"])
	return account
}

// All returns every account ordered by id, metadata included.
func (s *PostgresAccountStore) All() ([]model.Account, error) {

	logger := log.GetLogger()
	query := `
		SELECT id, username, credential_hash, email, url, nice_name, display_name,
		       first_name, last_name, description, registered_at
		FROM accounts
		ORDER BY id;`

	results, err := s.client.ExecuteQuery(query)
	if err != nil {
		errorMsg := "Failed to fetch accounts"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_ACCOUNT.Code,
			Message:     errors2.GET_ACCOUNT.Message,
			Description: errorMsg,
		}, err)
	}

	accounts := make([]model.Account, 0, len(results))
	for _, row := range results {
		account := scanAccountRow(row)
		metadata, err := s.loadMetadata(account.ID)
		if err != nil {
			return nil, err
		}
		account.Metadata = metadata
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// FindByUsername returns the stored account or (nil, nil) when absent.
func (s *PostgresAccountStore) FindByUsername(username string) (*model.Account, error) {

	logger := log.GetLogger()
	query := `
		SELECT id, username, credential_hash, email, url, nice_name, display_name,
		       first_name, last_name, description, registered_at
		FROM accounts
		WHERE username = $1;`

	results, err := s.client.ExecuteQuery(query, username)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to fetch account with username: %s", username)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_ACCOUNT.Code,
			Message:     errors2.GET_ACCOUNT.Message,
			Description: errorMsg,
		}, err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	account := scanAccountRow(results[0])
	metadata, err := s.loadMetadata(account.ID)
	if err != nil {
		return nil, err
	}
	account.Metadata = metadata
	return &account, nil
}

// Create inserts a new account and returns the generated identifier.
func (s *PostgresAccountStore) Create(account model.Account) (int64, error) {

	logger := log.GetLogger()
	query := `
		INSERT INTO accounts (
			username, credential_hash, email, url, nice_name, display_name,
			first_name, last_name, description, registered_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id;`

	results, err := s.client.ExecuteQuery(query,
		account.Username,
		account.CredentialHash,
		account.Email,
		account.URL,
		account.NiceName,
		account.DisplayName,
		account.FirstName,
		account.LastName,
		account.Description,
		account.RegisteredAt,
	)
	if err != nil || len(results) == 0 {
		errorMsg := fmt.Sprintf("Failed to create account with username: %s", account.Username)
		logger.Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_ACCOUNT.Code,
			Message:     errors2.ADD_ACCOUNT.Message,
			Description: errorMsg,
		}, err)
	}

	id := int64Val(results[0]["id"])
	logger.Debug("Account created successfully", log.String("username", account.Username), log.Int64("id", id))
	return id, nil
}

// Update overwrites the core fields of an existing account.
func (s *PostgresAccountStore) Update(id int64, account model.Account) error {

	logger := log.GetLogger()
	query := `
		UPDATE accounts SET
			credential_hash = $1, email = $2, url = $3, nice_name = $4,
			display_name = $5, first_name = $6, last_name = $7,
			description = $8, registered_at = $9
		WHERE id = $10;`

	_, err := s.client.ExecuteQuery(query,
		account.CredentialHash,
		account.Email,
		account.URL,
		account.NiceName,
		account.DisplayName,
		account.FirstName,
		account.LastName,
		account.Description,
		account.RegisteredAt,
		id,
	)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to update account with id: %d", id)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_ACCOUNT.Code,
			Message:     errors2.UPDATE_ACCOUNT.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

// SetMetadata upserts a single metadata key. Values are stored as JSONB.
func (s *PostgresAccountStore) SetMetadata(id int64, key string, value interface{}) error {

	logger := log.GetLogger()
	valueJSON, err := json.Marshal(value)
	if err != nil {
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.SET_ACCOUNT_METADATA.Code,
			Message:     errors2.SET_ACCOUNT_METADATA.Message,
			Description: fmt.Sprintf("Failed to marshal metadata value for key: %s", key),
		}, err)
	}

	query := `
		INSERT INTO account_metadata (account_id, meta_key, meta_value)
		VALUES ($1, $2, $3)
		ON CONFLICT (account_id, meta_key) DO UPDATE SET meta_value = EXCLUDED.meta_value;`

	if _, err := s.client.ExecuteQuery(query, id, key, valueJSON); err != nil {
		errorMsg := fmt.Sprintf("Failed to set metadata key %s for account id: %d", key, id)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.SET_ACCOUNT_METADATA.Code,
			Message:     errors2.SET_ACCOUNT_METADATA.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

// ClearRoles removes the stored role set ahead of a role-replacing import.
func (s *PostgresAccountStore) ClearRoles(id int64) error {

	logger := log.GetLogger()
	query := `DELETE FROM account_metadata WHERE account_id = $1 AND meta_key = $2;`

	if _, err := s.client.ExecuteQuery(query, id, constants.MetadataRolesKey); err != nil {
		errorMsg := fmt.Sprintf("Failed to clear roles for account id: %d", id)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.CLEAR_ACCOUNT_ROLES.Code,
			Message:     errors2.CLEAR_ACCOUNT_ROLES.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

// loadMetadata reads all metadata rows of one account into a map.
func (s *PostgresAccountStore) loadMetadata(id int64) (map[string]interface{}, error) {

	logger := log.GetLogger()
	query := `SELECT meta_key, meta_value FROM account_metadata WHERE account_id = $1;`

	results, err := s.client.ExecuteQuery(query, id)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to fetch metadata for account id: %d", id)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_ACCOUNT.Code,
			Message:     errors2.GET_ACCOUNT.Message,
			Description: errorMsg,
		}, err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	metadata := make(map[string]interface{}, len(results))
	for _, row := range results {
		var value interface{}
		if err := json.Unmarshal(bytesVal(row["meta_value"]), &value); err != nil {
			errorMsg := fmt.Sprintf("Failed to unmarshal metadata value for account id: %d", id)
			logger.Debug(errorMsg, log.Error(err))
			return nil, errors2.NewServerError(errors2.ErrorMessage{
				Code:        errors2.UNMARSHAL_JSON.Code,
				Message:     errors2.UNMARSHAL_JSON.Message,
				Description: errorMsg,
			}, err)
		}
		metadata[stringVal(row["meta_key"])] = value
	}
	return metadata, nil
}

// Column values arrive as driver-dependent types; normalize the common ones.

func stringVal(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return ""
	}
}

func int64Val(v interface{}) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int32:
		return int64(t)
	case int:
		return int64(t)
	default:
		return 0
	}
}

func bytesVal(v interface{}) []byte {
	switch t := v.(type) {
	case []byte:
		return t
	case string:
		return []byte(t)
	default:
		return nil
	}
}
