// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"net/http"
)

// PostClient wraps the /post endpoints.
type PostClient struct {
	client *Client
}

// List fetches one page of posts whose title matches query.Search.
func (p *PostClient) List(ctx context.Context, query ListQuery) (Page[Post], error) {
	request := outgoing{method: http.MethodGet, path: "/post", query: query.Values(), authenticated: true}
	body, err := p.client.do(ctx, request)
	if err != nil {
		return Page[Post]{}, err
	}
	var envelope struct {
		Posts      []Post `json:"posts"`
		TotalPosts int    `json:"totalPosts"`
	}
	if err := decode(request, body, &envelope); err != nil {
		return Page[Post]{}, err
	}
	return Page[Post]{Records: envelope.Posts, TotalCount: envelope.TotalPosts}, nil
}

// Create uploads a new post as multipart/form-data.
func (p *PostClient) Create(ctx context.Context, draft PostDraft) (MutationResult, error) {
	request, err := multipartRequest(http.MethodPost, "/post",
		[][2]string{{"title", draft.Title}, {"content", draft.Content}},
		"image", draft.Image)
	if err != nil {
		return MutationResult{}, err
	}
	return p.client.mutate(ctx, request)
}

// Delete removes the post with id.
func (p *PostClient) Delete(ctx context.Context, id string) (MutationResult, error) {
	request := outgoing{method: http.MethodDelete, path: idPath("post", id), authenticated: true}
	return p.client.mutate(ctx, request)
}

func (c *Client) mutate(ctx context.Context, request outgoing) (MutationResult, error) {
	body, err := c.do(ctx, request)
	if err != nil {
		return MutationResult{}, err
	}
	var result MutationResult
	if err := decode(request, body, &result); err != nil {
		return MutationResult{}, err
	}
	return result, nil
}
