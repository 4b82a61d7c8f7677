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

package provider

import (
	"fmt"
	"sync"

	"github.com/wso2/identity-account-transfer-service/internal/account/store"
	oplogstore "github.com/wso2/identity-account-transfer-service/internal/oplog/store"
	"github.com/wso2/identity-account-transfer-service/internal/system/config"
	dbprovider "github.com/wso2/identity-account-transfer-service/internal/system/database/provider"
	"github.com/wso2/identity-account-transfer-service/internal/transfer/service"
)

// TransferProvider wires the transfer services to the configured account
// store backend. Stores are built once per process and reused.
type TransferProvider struct{}

// NewTransferProvider creates a new transfer provider.
func NewTransferProvider() *TransferProvider {
	return &TransferProvider{}
}

var (
	accountStore store.AccountStore
	logStore     *oplogstore.TransferLogStore
	storeOnce    sync.Once
	storeErr     error
)

func initStores() {

	runtimeConfig := config.GetATSRuntime().Config

	dbClient, err := dbprovider.NewDBProvider().GetDBClient()
	if err != nil {
		storeErr = fmt.Errorf("failed to initialize the database client: %w", err)
		return
	}
	logStore = oplogstore.NewTransferLogStore(dbClient)

	switch runtimeConfig.DataSource.Type {
	case "mongo":
		db, err := dbprovider.GetMongoDatabase()
		if err != nil {
			storeErr = fmt.Errorf("failed to initialize the mongo account store: %w", err)
			return
		}
		accountStore = store.NewMongoAccountStore(db)
	default:
		accountStore = store.NewPostgresAccountStore(dbClient)
	}
}

// GetExportService returns an export service over the configured stores.
func (p *TransferProvider) GetExportService() (*service.ExportService, error) {

	storeOnce.Do(initStores)
	if storeErr != nil {
		return nil, storeErr
	}
	return service.NewExportService(accountStore, logStore), nil
}

// GetImportService returns an import service over the configured stores.
func (p *TransferProvider) GetImportService() (*service.ImportService, error) {

	storeOnce.Do(initStores)
	if storeErr != nil {
		return nil, storeErr
	}
	return service.NewImportService(accountStore, logStore), nil
}
