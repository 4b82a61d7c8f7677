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

package authn

import (
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wso2/identity-account-transfer-service/internal/system/config"
	errors2 "github.com/wso2/identity-account-transfer-service/internal/system/errors"
	"github.com/wso2/identity-account-transfer-service/internal/system/log"
)

// ValidateAuthenticationAndReturnClaims validates the bearer token and
// returns its claims. Tokens must be HMAC-signed JWTs carrying the
// configured audience and an unexpired `exp` claim.
func ValidateAuthenticationAndReturnClaims(token string) (map[string]interface{}, error) {

	logger := log.GetLogger()
	cfg := config.GetATSRuntime().Config

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.Auth.JWTSecret), nil
	}, jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		logger.Debug("Bearer token failed signature or expiry validation.", log.Error(err))
		return nil, unauthorizedError()
	}

	if !validateAudience(cfg.Auth.Audience, claims) {
		return nil, unauthorizedError()
	}

	return claims, nil
}

// validateAudience ensures the token was issued for this service.
func validateAudience(expected string, claims jwt.MapClaims) bool {

	logger := log.GetLogger()
	if expected == "" {
		return true
	}
	audiences, err := claims.GetAudience()
	if err != nil {
		logger.Debug("Token does not carry a readable audience claim.", log.Error(err))
		return false
	}
	for _, aud := range audiences {
		if aud == expected {
			return true
		}
	}
	logger.Debug("Token audience does not match the expected audience.",
		log.String("expected", expected))
	return false
}

func unauthorizedError() error {
	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.UN_AUTHORIZED.Code,
		Message:     errors2.UN_AUTHORIZED.Message,
		Description: "The supplied bearer token is missing, malformed or expired.",
	}, http.StatusUnauthorized)
}
