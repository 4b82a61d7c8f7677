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

package main

import (
	"flag"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"slices"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/wso2/identity-account-transfer-service/internal/system/config"
	"github.com/wso2/identity-account-transfer-service/internal/system/constants"
	"github.com/wso2/identity-account-transfer-service/internal/system/log"
	"github.com/wso2/identity-account-transfer-service/internal/system/managers"
)

const configFile = "repository/conf/deployment.yaml"

func main() {

	atsHome := getATSHome()

	envFiles, _ := filepath.Glob(filepath.Join(atsHome, "config", "*.env"))
	_ = godotenv.Load(envFiles...)

	atsConfig, err := config.LoadConfig(atsHome, configFile)
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	if err := config.InitializeATSRuntime(atsHome, atsConfig); err != nil {
		stdlog.Fatalf("Failed to initialize the runtime configuration: %v", err)
	}

	if err := log.Init(atsConfig.Log.LogLevel); err != nil {
		stdlog.Fatalf("Failed to initialize the logger: %v", err)
	}
	logger := log.GetLogger()

	serverAddr := fmt.Sprintf("%s:%d", atsConfig.Addr.Host, atsConfig.Addr.Port)
	mux := initMultiplexer()
	handler := enableCORS(mux, atsConfig.Auth.CORSAllowedOrigins)

	ln, err := net.Listen("tcp", serverAddr)
	if err != nil {
		logger.Fatal("Failed to start the listener", log.String("addr", serverAddr), log.Error(err))
	}
	logger.Info("WSO2 account transfer service started", log.String("addr", serverAddr))

	server := &http.Server{Handler: handler}
	if err := server.Serve(ln); err != nil {
		logger.Fatal("Failed to serve requests", log.Error(err))
	}
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer() *http.ServeMux {

	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux)

	if err := serviceManager.RegisterServices(constants.ApiBasePath); err != nil {
		log.GetLogger().Fatal("Failed to register the services", log.Error(err))
	}

	return mux
}

func enableCORS(next http.Handler, allowedOrigins []string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && (slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin)) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, Content-Length")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func getATSHome() string {

	projectHomeFlag := flag.String("atsHome", "", "Path to the account transfer service home directory")
	flag.Parse()

	if *projectHomeFlag != "" {
		return *projectHomeFlag
	}

	dir, err := os.Getwd()
	if err != nil {
		stdlog.Fatalf("Failed to get the current working directory: %v", err)
	}
	return dir
}
