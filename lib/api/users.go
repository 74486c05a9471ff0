// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"net/http"
)

// UserClient wraps the /user endpoints.
type UserClient struct {
	client *Client
}

// List fetches one page of users whose email matches query.Search.
func (u *UserClient) List(ctx context.Context, query ListQuery) (Page[User], error) {
	request := outgoing{method: http.MethodGet, path: "/user", query: query.Values(), authenticated: true}
	body, err := u.client.do(ctx, request)
	if err != nil {
		return Page[User]{}, err
	}
	var envelope struct {
		Users      []User `json:"users"`
		TotalUsers int    `json:"totalUsers"`
	}
	if err := decode(request, body, &envelope); err != nil {
		return Page[User]{}, err
	}
	return Page[User]{Records: envelope.Users, TotalCount: envelope.TotalUsers}, nil
}

// Get fetches one user with their posts.
func (u *UserClient) Get(ctx context.Context, id string) (UserDetail, error) {
	request := outgoing{method: http.MethodGet, path: idPath("user", id), authenticated: true}
	body, err := u.client.do(ctx, request)
	if err != nil {
		return UserDetail{}, err
	}
	var envelope struct {
		User UserDetail `json:"user"`
	}
	if err := decode(request, body, &envelope); err != nil {
		return UserDetail{}, err
	}
	return envelope.User, nil
}

// Create adds a user.
func (u *UserClient) Create(ctx context.Context, draft UserDraft) (MutationResult, error) {
	request, err := jsonRequest(http.MethodPost, "/user", draft)
	if err != nil {
		return MutationResult{}, err
	}
	return u.client.mutate(ctx, request)
}

// Update replaces the editable fields of the user with id.
func (u *UserClient) Update(ctx context.Context, id string, draft UserDraft) (MutationResult, error) {
	request, err := jsonRequest(http.MethodPut, idPath("user", id), draft)
	if err != nil {
		return MutationResult{}, err
	}
	return u.client.mutate(ctx, request)
}

// Delete removes the user with id.
func (u *UserClient) Delete(ctx context.Context, id string) (MutationResult, error) {
	request := outgoing{method: http.MethodDelete, path: idPath("user", id), authenticated: true}
	return u.client.mutate(ctx, request)
}
