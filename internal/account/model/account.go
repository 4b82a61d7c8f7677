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

package model

import (
	"encoding/json"
	"strings"
)

// Account represents one identity entity as it travels through an archive:
// a stable login key, an opaque credential hash, a fixed set of optional
// profile attributes, and an open metadata map.
//
// Accounts are value objects. Reconciliation never mutates an Account in
// place; it produces a Decision describing what should happen to the store.
type Account struct {
	ID             int64                  `json:"-"`
	Username       string                 `json:"key"`
	CredentialHash string                 `json:"credentialHash,omitempty"`
	Email          string                 `json:"email,omitempty"`
	URL            string                 `json:"url,omitempty"`
	NiceName       string                 `json:"niceKey,omitempty"`
	DisplayName    string                 `json:"displayName,omitempty"`
	FirstName      string                 `json:"firstName,omitempty"`
	LastName       string                 `json:"lastName,omitempty"`
	Description    string                 `json:"description,omitempty"`
	RegisteredAt   string                 `json:"registeredAt,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// knownFields are the archive keys bound to fixed Account fields. Anything
// else in an archived record is folded into Metadata so that archives from
// newer deployments survive a round trip instead of silently losing fields.
var knownFields = map[string]bool{
	"key":            true,
	"credentialHash": true,
	"email":          true,
	"url":            true,
	"niceKey":        true,
	"displayName":    true,
	"firstName":      true,
	"lastName":       true,
	"description":    true,
	"registeredAt":   true,
	"metadata":       true,
}

// accountAlias avoids UnmarshalJSON recursion.
type accountAlias Account

// UnmarshalJSON decodes a record object, keeping unknown top-level fields
// by folding them into the metadata map.
func (a *Account) UnmarshalJSON(data []byte) error {

	var alias accountAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for key, value := range raw {
		if knownFields[key] {
			continue
		}
		if alias.Metadata == nil {
			alias.Metadata = make(map[string]interface{})
		}
		if _, exists := alias.Metadata[key]; !exists {
			alias.Metadata[key] = value
		}
	}

	*a = Account(alias)
	return nil
}

// NormalizedUsername returns the case-normalized login key used for store
// lookups: trimmed and lower-cased.
func (a *Account) NormalizedUsername() string {
	return strings.ToLower(strings.TrimSpace(a.Username))
}

// HasRoleSet reports whether the account metadata carries a
// role/capability set under the given key.
func (a *Account) HasRoleSet(rolesKey string) bool {
	if a.Metadata == nil {
		return false
	}
	_, ok := a.Metadata[rolesKey]
	return ok
}
