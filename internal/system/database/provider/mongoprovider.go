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
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wso2/identity-account-transfer-service/internal/system/config"
)

var (
	mongoClient *mongo.Client
	mongoOnce   sync.Once
	mongoErr    error
)

// GetMongoDatabase returns a handle to the configured mongo database.
// The underlying client is created once and reused.
func GetMongoDatabase() (*mongo.Database, error) {

	runtimeConfig := config.GetATSRuntime().Config

	mongoOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		clientOptions := options.Client().ApplyURI(runtimeConfig.DataSource.URI)
		mongoClient, mongoErr = mongo.Connect(ctx, clientOptions)
		if mongoErr != nil {
			return
		}
		mongoErr = mongoClient.Ping(ctx, nil)
	})

	if mongoErr != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", mongoErr)
	}
	return mongoClient.Database(runtimeConfig.DataSource.Name), nil
}
