// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/FahadRazzaq1121/postapp/lib/netutil"
	"github.com/FahadRazzaq1121/postapp/lib/version"
)

// TokenSource supplies the bearer token at request time.
type TokenSource interface {
	Token() (string, error)
}

// StaticToken is a TokenSource with a fixed token. An empty token
// behaves as absent.
type StaticToken string

func (s StaticToken) Token() (string, error) {
	if s == "" {
		return "", errors.New("no access token")
	}
	return string(s), nil
}

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// BaseURL is the API root, e.g. "http://localhost:8000/api".
	BaseURL string

	// HTTPClient is used for all requests. If nil, http.DefaultClient is used.
	HTTPClient *http.Client

	// Tokens supplies the bearer token. Required for everything
	// except login.
	Tokens TokenSource

	// Logger is used for structured logging. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Client talks to the post/user admin API. Every call is a single
// attempt; nothing is retried.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *slog.Logger
}

// NewClient validates config and returns a Client.
func NewClient(config ClientConfig) (*Client, error) {
	if config.BaseURL == "" {
		return nil, errors.New("api: BaseURL is required")
	}
	parsed, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("api: invalid BaseURL %q: %w", config.BaseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("api: BaseURL %q must use http or https", config.BaseURL)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	tokens := config.Tokens
	if tokens == nil {
		tokens = StaticToken("")
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: httpClient,
		tokens:     tokens,
		logger:     logger,
	}, nil
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string { return c.baseURL }

// Auth returns the authentication endpoints.
func (c *Client) Auth() *AuthClient { return &AuthClient{client: c} }

// Posts returns the post endpoints.
func (c *Client) Posts() *PostClient { return &PostClient{client: c} }

// Users returns the user endpoints.
func (c *Client) Users() *UserClient { return &UserClient{client: c} }

// Profile returns the current-user endpoint.
func (c *Client) Profile() *ProfileClient { return &ProfileClient{client: c} }

// outgoing describes one request before it is sent.
type outgoing struct {
	method        string
	path          string
	query         url.Values
	body          io.Reader
	contentType   string
	authenticated bool
}

// jsonRequest builds an outgoing request with a JSON body.
func jsonRequest(method, path string, payload any) (outgoing, error) {
	request := outgoing{method: method, path: path, authenticated: true}
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return outgoing{}, fmt.Errorf("api: encoding %s %s body: %w", method, path, err)
		}
		request.body = bytes.NewReader(encoded)
		request.contentType = "application/json"
	}
	return request, nil
}

// do sends request and returns the body of a 2xx response. Every
// failure is a *RequestError.
func (c *Client) do(ctx context.Context, request outgoing) ([]byte, error) {
	fail := func(kind ErrorKind, status int, message string, cause error) error {
		return &RequestError{
			Kind:       kind,
			StatusCode: status,
			Method:     request.method,
			Path:       request.path,
			Message:    message,
			Err:        cause,
		}
	}

	var token string
	if request.authenticated {
		var err error
		token, err = c.tokens.Token()
		if err != nil || token == "" {
			return nil, fail(Unauthorized, 0, "no access token", err)
		}
	}

	requestURL := c.baseURL + request.path
	if request.query != nil {
		requestURL += "?" + request.query.Encode()
	}
	httpRequest, err := http.NewRequestWithContext(ctx, request.method, requestURL, request.body)
	if err != nil {
		return nil, fail(Unknown, 0, "building request", err)
	}
	requestID := uuid.NewString()
	httpRequest.Header.Set("X-Request-ID", requestID)
	httpRequest.Header.Set("User-Agent", version.UserAgent())
	httpRequest.Header.Set("Accept", "application/json")
	if request.contentType != "" {
		httpRequest.Header.Set("Content-Type", request.contentType)
	}
	if token != "" {
		httpRequest.Header.Set("Authorization", "Bearer "+token)
	}

	started := time.Now()
	response, err := c.httpClient.Do(httpRequest)
	if err != nil {
		c.logger.Debug("request failed",
			"method", request.method, "path", request.path, "request_id", requestID, "error", err)
		return nil, fail(Transport, 0, "request failed: "+transportReason(err), err)
	}
	defer response.Body.Close()

	body, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return nil, fail(Transport, response.StatusCode, "reading response body", err)
	}
	c.logger.Debug("request completed",
		"method", request.method,
		"path", request.path,
		"status", response.StatusCode,
		"request_id", requestID,
		"duration", time.Since(started),
	)

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return body, nil
	}

	var envelope struct {
		Message string `json:"message"`
	}
	message := ""
	if json.Unmarshal(body, &envelope) == nil {
		message = envelope.Message
	}
	if message == "" {
		message = fmt.Sprintf("unexpected %d response from %s %s", response.StatusCode, request.method, request.path)
		if detail := netutil.ErrorBody(body); detail != "" {
			message += ": " + detail
		}
	}
	return nil, fail(KindForStatus(response.StatusCode), response.StatusCode, message, nil)
}

// decode unmarshals a successful body into target.
func decode(request outgoing, body []byte, target any) error {
	if err := json.Unmarshal(body, target); err != nil {
		return &RequestError{
			Kind:    Unknown,
			Method:  request.method,
			Path:    request.path,
			Message: "malformed response body",
			Err:     err,
		}
	}
	return nil
}

// multipartRequest builds a multipart/form-data request from fields and
// an optional file part.
func multipartRequest(method, path string, fields [][2]string, fileField string, upload *Upload) (outgoing, error) {
	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)
	for _, field := range fields {
		if err := writer.WriteField(field[0], field[1]); err != nil {
			return outgoing{}, fmt.Errorf("api: writing field %s: %w", field[0], err)
		}
	}
	if upload != nil {
		contentType := upload.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, upload.Filename))
		header.Set("Content-Type", contentType)
		part, err := writer.CreatePart(header)
		if err != nil {
			return outgoing{}, fmt.Errorf("api: creating %s part: %w", fileField, err)
		}
		if _, err := io.Copy(part, upload.Body); err != nil {
			return outgoing{}, fmt.Errorf("api: reading %s: %w", upload.Filename, err)
		}
	}
	if err := writer.Close(); err != nil {
		return outgoing{}, fmt.Errorf("api: finishing multipart body: %w", err)
	}
	return outgoing{
		method:        method,
		path:          path,
		body:          &buffer,
		contentType:   writer.FormDataContentType(),
		authenticated: true,
	}, nil
}

func transportReason(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timed out"
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return "timed out"
	}
	return err.Error()
}

func idPath(collection, id string) string {
	return "/" + collection + "/" + url.PathEscape(id)
}
