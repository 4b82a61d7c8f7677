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

package service

import (
	accountmodel "github.com/wso2/identity-account-transfer-service/internal/account/model"
	"github.com/wso2/identity-account-transfer-service/internal/account/store"
	"github.com/wso2/identity-account-transfer-service/internal/oplog"
	"github.com/wso2/identity-account-transfer-service/internal/system/constants"
	"github.com/wso2/identity-account-transfer-service/internal/system/utils"
	"github.com/wso2/identity-account-transfer-service/internal/transfer/model"
)

// Reconciler walks archived accounts in order and decides, per account,
// whether the store should create, update, or skip it. Per-account
// failures become Skipped decisions, never errors; one bad record does
// not abort the run.
type Reconciler struct {
	store store.AccountStore
}

// NewReconciler creates a reconciler over the given account store.
func NewReconciler(accountStore store.AccountStore) *Reconciler {
	return &Reconciler{store: accountStore}
}

// Apply reconciles the accounts sequentially in the given order. When
// dryRun is set, every decision is computed but no store mutation is
// issued; new accounts get pending identifiers instead of real ones.
func (r *Reconciler) Apply(accounts []accountmodel.Account, dryRun bool, runLog *oplog.Log) (model.ImportSummary, []model.Decision) {

	summary := model.ImportSummary{}
	decisions := make([]model.Decision, 0, len(accounts))
	var pendingSeq int64

	for _, account := range accounts {
		decision := r.reconcileOne(account, dryRun, &pendingSeq, runLog)
		decisions = append(decisions, decision)

		switch decision.Action {
		case model.ActionCreated:
			summary.Created++
		case model.ActionUpdated:
			summary.Updated++
		case model.ActionSkipped:
			summary.Skipped++
		}
	}
	return summary, decisions
}

func (r *Reconciler) reconcileOne(account accountmodel.Account, dryRun bool,
	pendingSeq *int64, runLog *oplog.Log) model.Decision {

	username := account.NormalizedUsername()
	// The store keys accounts by the normalized form, so the record must
	// carry it too; writing the raw username would orphan future lookups.
	account.Username = username
	if username == "" {
		runLog.Append("Skipping a record with no username", oplog.Warning)
		return model.Decision{
			Action: model.ActionSkipped,
			Reason: model.SkipMissingUsername,
		}
	}

	// A credential is only needed once something is actually written.
	if account.CredentialHash == "" && !dryRun {
		runLog.Appendf(oplog.Warning, "Skipping account %s: no credential hash", username)
		return model.Decision{
			Username: username,
			Action:   model.ActionSkipped,
			Reason:   model.SkipMissingCredential,
		}
	}

	existing, err := r.store.FindByUsername(username)
	if err != nil {
		runLog.Appendf(oplog.Error, "Failed to look up account %s: %v", username, err)
		return model.Decision{
			Username: username,
			Action:   model.ActionSkipped,
			Reason:   model.SkipStoreError,
			Detail:   err.Error(),
		}
	}

	var decision model.Decision
	if existing != nil {
		decision = r.updateExisting(username, account, *existing, dryRun, runLog)
	} else {
		decision = r.createNew(username, account, dryRun, pendingSeq, runLog)
	}
	if decision.Action == model.ActionSkipped {
		return decision
	}

	r.applyMetadata(&decision, account, dryRun, runLog)
	return decision
}

func (r *Reconciler) updateExisting(username string, incoming, existing accountmodel.Account,
	dryRun bool, runLog *oplog.Log) model.Decision {

	if !dryRun {
		if err := r.store.Update(existing.ID, incoming); err != nil {
			runLog.Appendf(oplog.Error, "Failed to update account %s: %v", username, err)
			return model.Decision{
				Username: username,
				Action:   model.ActionSkipped,
				Reason:   model.SkipStoreError,
				Detail:   err.Error(),
			}
		}
	}

	runLog.Appendf(oplog.Info, "Updated account %s", username)
	return model.Decision{
		Username: username,
		Action:   model.ActionUpdated,
		ID:       accountmodel.RealID(existing.ID),
	}
}

func (r *Reconciler) createNew(username string, incoming accountmodel.Account,
	dryRun bool, pendingSeq *int64, runLog *oplog.Log) model.Decision {

	if dryRun {
		*pendingSeq++
		runLog.Appendf(oplog.Info, "Created account %s", username)
		return model.Decision{
			Username: username,
			Action:   model.ActionCreated,
			ID:       accountmodel.PendingID(*pendingSeq),
		}
	}

	id, err := r.store.Create(incoming)
	if err != nil {
		runLog.Appendf(oplog.Error, "Failed to create account %s: %v", username, err)
		return model.Decision{
			Username: username,
			Action:   model.ActionSkipped,
			Reason:   model.SkipStoreError,
			Detail:   err.Error(),
		}
	}

	runLog.Appendf(oplog.Info, "Created account %s", username)
	return model.Decision{
		Username: username,
		Action:   model.ActionCreated,
		ID:       accountmodel.RealID(id),
	}
}

// applyMetadata upserts each metadata key individually (merge semantics),
// except the role set, which replaces the existing one wholesale: existing
// roles are cleared before the imported set is written. Per-key failures
// are logged and do not change the decision.
func (r *Reconciler) applyMetadata(decision *model.Decision, account accountmodel.Account,
	dryRun bool, runLog *oplog.Log) {

	if len(account.Metadata) == 0 {
		return
	}

	keys := utils.MetadataKeys(account.Metadata)
	decision.MetadataKeys = keys

	if account.HasRoleSet(constants.MetadataRolesKey) && !dryRun {
		if !decision.ID.IsPending() {
			if err := r.store.ClearRoles(decision.ID.Value()); err != nil {
				runLog.Appendf(oplog.Warning,
					"Failed to clear roles for account %s: %v", decision.Username, err)
			}
		}
	}

	for _, key := range keys {
		if dryRun {
			runLog.Appendf(oplog.InfoDetail,
				"Would set metadata %s for account %s (id %s)", key, decision.Username, decision.ID.String())
			continue
		}
		if err := r.store.SetMetadata(decision.ID.Value(), key, account.Metadata[key]); err != nil {
			runLog.Appendf(oplog.Warning,
				"Failed to set metadata %s for account %s: %v", key, decision.Username, err)
			continue
		}
		runLog.Appendf(oplog.InfoDetail, "Set metadata %s=%s for account %s",
			key, utils.CoerceScalarString(account.Metadata[key]), decision.Username)
	}
}
