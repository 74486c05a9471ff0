// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil bounds reads of HTTP response bodies. The admin API
// returns small JSON documents; a misbehaving server must not be able
// to make the client buffer an unbounded body.
package netutil

import (
	"io"
	"strings"
)

// MaxResponseSize caps a single JSON response body at 32 MB.
const MaxResponseSize int64 = 32 << 20

// ReadResponse reads at most MaxResponseSize bytes of body.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}

// ErrorBody returns a trimmed, length-limited rendering of body for
// inclusion in an error message. Read errors yield whatever was read.
func ErrorBody(body []byte) string {
	const limit = 512
	text := strings.TrimSpace(string(body))
	if len(text) > limit {
		return text[:limit] + "..."
	}
	return text
}
