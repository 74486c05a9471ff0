// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package tokencache

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the display fields of an access token. None of them are
// verified; the server remains the authority on every request.
type Claims struct {
	Subject   string
	Name      string
	Email     string
	Role      string
	ExpiresAt time.Time
}

// ErrOpaqueToken is returned by ParseClaims for tokens that are not JWTs.
var ErrOpaqueToken = errors.New("tokencache: token is not a JWT")

// ParseClaims extracts Claims from token without checking its signature.
func ParseClaims(token string) (Claims, error) {
	mapClaims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mapClaims); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrOpaqueToken, err)
	}

	var claims Claims
	claims.Subject, _ = mapClaims.GetSubject()
	for _, key := range []string{"_id", "id", "userId"} {
		if claims.Subject != "" {
			break
		}
		claims.Subject, _ = mapClaims[key].(string)
	}
	claims.Name, _ = mapClaims["name"].(string)
	claims.Email, _ = mapClaims["email"].(string)
	claims.Role, _ = mapClaims["role"].(string)
	if expiry, err := mapClaims.GetExpirationTime(); err == nil && expiry != nil {
		claims.ExpiresAt = expiry.Time
	}
	return claims, nil
}

// Claims loads the stored token and parses its claims.
func (c *Cache) Claims() (Claims, error) {
	token, err := c.Load()
	if err != nil {
		return Claims{}, err
	}
	return ParseClaims(token)
}
