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

import "fmt"

// AccountID identifies an account in a reconciliation decision. It is
// either a real store identifier or a pending placeholder handed out
// during a dry run, when the record does not exist yet. The two variants
// are kept distinct instead of overloading the sign of a raw integer.
type AccountID struct {
	value   int64
	pending bool
}

// RealID wraps an identifier issued by the account store.
func RealID(v int64) AccountID {
	return AccountID{value: v}
}

// PendingID wraps the n-th placeholder of a dry run. Placeholders only
// exist so that metadata decisions can reference "this new record" in log
// output; they never reach the store.
func PendingID(seq int64) AccountID {
	return AccountID{value: seq, pending: true}
}

// IsPending reports whether the id is a dry-run placeholder.
func (id AccountID) IsPending() bool {
	return id.pending
}

// Value returns the wrapped identifier or placeholder sequence number.
func (id AccountID) Value() int64 {
	return id.value
}

func (id AccountID) String() string {
	if id.pending {
		return fmt.Sprintf("pending-%d", id.value)
	}
	return fmt.Sprintf("%d", id.value)
}

// MarshalJSON renders both variants as strings ("123" / "pending-1") so a
// decision list stays uniformly typed regardless of dry run.
func (id AccountID) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", id.String())), nil
}
