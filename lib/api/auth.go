// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/FahadRazzaq1121/postapp/lib/secret"
)

// AuthClient wraps POST /auth/login.
type AuthClient struct {
	client *Client
}

// Login exchanges credentials for a bearer token. The password is
// borrowed, not closed. A 2xx response with success=false is returned
// as a Validation error carrying the server message.
func (a *AuthClient) Login(ctx context.Context, email string, password *secret.Buffer) (LoginResult, error) {
	if password == nil {
		return LoginResult{}, errors.New("api: password is required")
	}
	// The password becomes a heap string only for the duration of
	// the JSON encoding.
	request, err := jsonRequest(http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password.String(),
	})
	if err != nil {
		return LoginResult{}, err
	}
	request.authenticated = false

	body, err := a.client.do(ctx, request)
	if err != nil {
		return LoginResult{}, err
	}
	var result LoginResult
	if err := decode(request, body, &result); err != nil {
		return LoginResult{}, err
	}
	if !result.Success || result.Token == "" {
		message := result.Message
		if message == "" {
			message = "login rejected"
		}
		return result, &RequestError{
			Kind:       Validation,
			StatusCode: http.StatusOK,
			Method:     request.method,
			Path:       request.path,
			Message:    message,
		}
	}
	return result, nil
}
