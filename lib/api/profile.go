// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"net/http"
)

// ProfileClient wraps GET /user/me.
type ProfileClient struct {
	client *Client
}

// Me returns the authenticated user.
func (p *ProfileClient) Me(ctx context.Context) (User, error) {
	request := outgoing{method: http.MethodGet, path: "/user/me", authenticated: true}
	body, err := p.client.do(ctx, request)
	if err != nil {
		return User{}, err
	}
	var envelope struct {
		User User `json:"user"`
	}
	if err := decode(request, body, &envelope); err != nil {
		return User{}, err
	}
	return envelope.User, nil
}
