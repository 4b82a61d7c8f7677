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
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wso2/identity-account-transfer-service/internal/account/model"
	"github.com/wso2/identity-account-transfer-service/internal/system/constants"
	errors2 "github.com/wso2/identity-account-transfer-service/internal/system/errors"
)

const (
	accountCollection = "accounts"
	counterCollection = "counters"
	opTimeout         = 5 * time.Second
)

// accountDocument is the BSON shape of one stored account.
type accountDocument struct {
	ID             int64                  `bson:"_id"`
	Username       string                 `bson:"username"`
	CredentialHash string                 `bson:"credential_hash"`
	Email          string                 `bson:"email"`
	URL            string                 `bson:"url"`
	NiceName       string                 `bson:"nice_name"`
	DisplayName    string                 `bson:"display_name"`
	FirstName      string                 `bson:"first_name"`
	LastName       string                 `bson:"last_name"`
	Description    string                 `bson:"description"`
	RegisteredAt   string                 `bson:"registered_at"`
	Metadata       map[string]interface{} `bson:"metadata,omitempty"`
}

// MongoAccountStore persists accounts in a mongo collection, with metadata
// embedded as a subdocument. Identifiers are allocated from a counters
// collection so they stay int64-compatible with the relational backend.
type MongoAccountStore struct {
	db *mongo.Database
}

// NewMongoAccountStore creates a store over the given mongo database.
func NewMongoAccountStore(db *mongo.Database) *MongoAccountStore {
	return &MongoAccountStore{db: db}
}

func (s *MongoAccountStore) accounts() *mongo.Collection {
	return s.db.Collection(accountCollection)
}

func toDocument(id int64, account model.Account) accountDocument {
	return accountDocument{
		ID:             id,
		Username:       account.Username,
		CredentialHash: account.CredentialHash,
		Email:          account.Email,
		URL:            account.URL,
		NiceName:       account.NiceName,
		DisplayName:    account.DisplayName,
		FirstName:      account.FirstName,
		LastName:       account.LastName,
		Description:    account.Description,
		RegisteredAt:   account.RegisteredAt,
		Metadata:       account.Metadata,
	}
}

func toModel(doc accountDocument) model.Account {
	return model.Account{
		ID:             doc.ID,
		Username:       doc.Username,
		CredentialHash: doc.CredentialHash,
		Email:          doc.Email,
		URL:            doc.URL,
		NiceName:       doc.NiceName,
		DisplayName:    doc.DisplayName,
		FirstName:      doc.FirstName,
		LastName:       doc.LastName,
		Description:    doc.Description,
		RegisteredAt:   doc.RegisteredAt,
		Metadata:       doc.Metadata,
	}
}

// All returns every account ordered by identifier.
func (s *MongoAccountStore) All() ([]model.Account, error) {

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	cursor, err := s.accounts().Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, errors2.NewServerError(errors2.GET_ACCOUNT, err)
	}
	defer cursor.Close(ctx)

	var accounts []model.Account
	for cursor.Next(ctx) {
		var doc accountDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, errors2.NewServerError(errors2.GET_ACCOUNT, err)
		}
		accounts = append(accounts, toModel(doc))
	}
	return accounts, cursor.Err()
}

// FindByUsername returns the stored account or (nil, nil) when absent.
func (s *MongoAccountStore) FindByUsername(username string) (*model.Account, error) {

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var doc accountDocument
	err := s.accounts().FindOne(ctx, bson.M{"username": username}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors2.NewServerError(errors2.GET_ACCOUNT, err)
	}

	account := toModel(doc)
	return &account, nil
}

// Create inserts a new account under a freshly allocated identifier.
func (s *MongoAccountStore) Create(account model.Account) (int64, error) {

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	id, err := s.nextID(ctx)
	if err != nil {
		return 0, errors2.NewServerError(errors2.ADD_ACCOUNT, err)
	}

	if _, err := s.accounts().InsertOne(ctx, toDocument(id, account)); err != nil {
		return 0, errors2.NewServerError(errors2.ADD_ACCOUNT, err)
	}
	return id, nil
}

// Update overwrites the core fields of an existing account. The metadata
// subdocument is left untouched; it is maintained through SetMetadata.
func (s *MongoAccountStore) Update(id int64, account model.Account) error {

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"credential_hash": account.CredentialHash,
		"email":           account.Email,
		"url":             account.URL,
		"nice_name":       account.NiceName,
		"display_name":    account.DisplayName,
		"first_name":      account.FirstName,
		"last_name":       account.LastName,
		"description":     account.Description,
		"registered_at":   account.RegisteredAt,
	}}

	result, err := s.accounts().UpdateByID(ctx, id, update)
	if err != nil {
		return errors2.NewServerError(errors2.UPDATE_ACCOUNT, err)
	}
	if result.MatchedCount == 0 {
		return errors2.NewServerError(errors2.UPDATE_ACCOUNT, fmt.Errorf("no account with id %d", id))
	}
	return nil
}

// SetMetadata upserts a single key of the metadata subdocument.
func (s *MongoAccountStore) SetMetadata(id int64, key string, value interface{}) error {

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"metadata." + key: value}}
	if _, err := s.accounts().UpdateByID(ctx, id, update); err != nil {
		return errors2.NewServerError(errors2.SET_ACCOUNT_METADATA, err)
	}
	return nil
}

// ClearRoles drops the role set key from the metadata subdocument.
func (s *MongoAccountStore) ClearRoles(id int64) error {

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	update := bson.M{"$unset": bson.M{"metadata." + constants.MetadataRolesKey: ""}}
	if _, err := s.accounts().UpdateByID(ctx, id, update); err != nil {
		return errors2.NewServerError(errors2.CLEAR_ACCOUNT_ROLES, err)
	}
	return nil
}

// nextID allocates the next account identifier from the counters collection.
func (s *MongoAccountStore) nextID(ctx context.Context) (int64, error) {

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := s.db.Collection(counterCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": accountCollection},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}
