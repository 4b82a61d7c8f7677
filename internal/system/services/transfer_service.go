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

package services

import (
	"fmt"
	"net/http"

	"github.com/wso2/identity-account-transfer-service/internal/transfer/handler"
)

// TransferService exposes the archive export/import endpoints.
type TransferService struct {
	transferHandler *handler.TransferHandler
}

// NewTransferService creates the transfer service and registers its routes.
func NewTransferService(mux *http.ServeMux, apiBasePath string) *TransferService {

	instance := &TransferService{
		transferHandler: handler.NewTransferHandler(),
	}
	instance.RegisterRoutes(mux, apiBasePath)

	return instance
}

// RegisterRoutes mounts the transfer endpoints on the given mux.
func (s *TransferService) RegisterRoutes(mux *http.ServeMux, apiBasePath string) {

	mux.HandleFunc(fmt.Sprintf("POST %s/export", apiBasePath), s.transferHandler.HandleExport)
	mux.HandleFunc(fmt.Sprintf("POST %s/import", apiBasePath), s.transferHandler.HandleImport)
	mux.HandleFunc(fmt.Sprintf("GET %s/import/log", apiBasePath), s.transferHandler.HandleGetLog)
}
