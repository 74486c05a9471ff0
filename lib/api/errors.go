// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a failed request by what the caller should do
// about it. It is derived from the HTTP status, never from message
// text.
type ErrorKind int

const (
	// Unknown covers statuses with no more specific handling.
	Unknown ErrorKind = iota

	// Unauthorized means the session is unusable: 401, 403, or no
	// token at call time. Callers clear the token and return to login.
	Unauthorized

	// Validation means the server rejected the request content:
	// 400, 409, or 422.
	Validation

	// Transport means no usable response arrived: connection and
	// timeout failures, unreadable bodies, and 502/503/504.
	Transport
)

func (k ErrorKind) String() string {
	switch k {
	case Unauthorized:
		return "unauthorized"
	case Validation:
		return "validation"
	case Transport:
		return "transport"
	default:
		return "unknown"
	}
}

// KindForStatus maps a non-2xx HTTP status to an ErrorKind.
func KindForStatus(status int) ErrorKind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return Unauthorized
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return Validation
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return Transport
	default:
		return Unknown
	}
}

// RequestError is the single error type returned by every Client
// operation that reached the point of issuing a request.
type RequestError struct {
	Kind ErrorKind

	// StatusCode is zero when no response was received.
	StatusCode int

	Method string
	Path   string

	// Message is the backend's "message" field when present, or a
	// description of the failure.
	Message string

	// Err is the underlying cause for transport failures.
	Err error
}

func (e *RequestError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Message)
	}
	return fmt.Sprintf("%s %s: %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

func (e *RequestError) Unwrap() error { return e.Err }

// KindOf returns the ErrorKind of err, or Unknown when err does not
// wrap a RequestError.
func KindOf(err error) ErrorKind {
	var requestErr *RequestError
	if errors.As(err, &requestErr) {
		return requestErr.Kind
	}
	return Unknown
}

// IsUnauthorized reports whether err wraps an Unauthorized RequestError.
func IsUnauthorized(err error) bool {
	return err != nil && KindOf(err) == Unauthorized
}

// MessageOf returns the backend-facing message of err, falling back
// to fallback when err carries none.
func MessageOf(err error, fallback string) string {
	var requestErr *RequestError
	if errors.As(err, &requestErr) && requestErr.Message != "" {
		return requestErr.Message
	}
	return fallback
}
