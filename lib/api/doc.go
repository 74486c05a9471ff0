// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

// Package api is the HTTP client for the post/user admin backend.
//
// A Client is built once per backend with NewClient and hands out
// resource clients: Auth (login), Posts, Users, and Profile. Every
// request except login carries the bearer token from the configured
// TokenSource; when the source has no token the call fails with an
// Unauthorized RequestError before anything is sent.
//
// All failures are *RequestError values whose Kind is derived from the
// HTTP status code:
//
//	401, 403              Unauthorized
//	400, 409, 422         Validation
//	502, 503, 504, none   Transport
//	anything else         Unknown
//
// Use KindOf or IsUnauthorized instead of inspecting messages.
package api
