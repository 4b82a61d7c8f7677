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

package config

import "sync"

// ATSRuntime holds the runtime configuration for the account transfer service.
type ATSRuntime struct {
	ATSHome string `yaml:"ats_home"`
	Config  Config `yaml:"config"`
}

var (
	runtimeConfig *ATSRuntime
	once          sync.Once
)

// InitializeATSRuntime initializes the ATSRuntime configuration.
func InitializeATSRuntime(atsHome string, config *Config) error {

	once.Do(func() {
		runtimeConfig = &ATSRuntime{
			ATSHome: atsHome,
			Config:  *config,
		}
	})

	return nil
}

// GetATSRuntime returns the ATSRuntime configuration.
func GetATSRuntime() *ATSRuntime {

	if runtimeConfig == nil {
		panic("ATSRuntime is not initialized")
	}
	return runtimeConfig
}
