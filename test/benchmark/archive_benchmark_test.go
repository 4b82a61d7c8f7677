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

package benchmark

import (
	"fmt"
	"testing"

	"github.com/wso2/identity-account-transfer-service/internal/account/model"
	"github.com/wso2/identity-account-transfer-service/internal/archive"
)

func benchmarkAccounts(n int) []model.Account {
	accounts := make([]model.Account, 0, n)
	for i := 0; i < n; i++ {
		accounts = append(accounts, model.Account{
			Username:       fmt.Sprintf("user%04d", i),
			CredentialHash: "$P$B2xH1uYmVdCv7vA0PqMnX1",
			Email:          fmt.Sprintf("user%04d@example.org", i),
			DisplayName:    fmt.Sprintf("User %d", i),
			RegisteredAt:   "2025-01-01 00:00:00",
			Metadata: map[string]interface{}{
				"locale":       "en_US",
				"capabilities": map[string]interface{}{"subscriber": true},
			},
		})
	}
	return accounts
}

func BenchmarkArchiveSeal(b *testing.B) {
	accounts := benchmarkAccounts(1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := archive.Seal(accounts, "bench-password"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkArchiveOpen(b *testing.B) {
	accounts := benchmarkAccounts(1000)
	sealed, err := archive.Seal(accounts, "bench-password")
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := archive.Open(sealed, "bench-password"); err != nil {
			b.Fatal(err)
		}
	}
}
