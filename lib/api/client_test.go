// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/FahadRazzaq1121/postapp/lib/secret"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient(ClientConfig{BaseURL: server.URL + "/api/", Tokens: StaticToken(token)})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestNewClientValidatesBaseURL(t *testing.T) {
	t.Parallel()
	for _, baseURL := range []string{"", "localhost:8000", "://bad"} {
		if _, err := NewClient(ClientConfig{BaseURL: baseURL}); err == nil {
			t.Errorf("NewClient(%q) succeeded", baseURL)
		}
	}
	client, err := NewClient(ClientConfig{BaseURL: "http://localhost:8000/api/"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if client.BaseURL() != "http://localhost:8000/api" {
		t.Errorf("BaseURL = %q", client.BaseURL())
	}
}

func TestPostsList(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		if request.Method != http.MethodGet || request.URL.Path != "/api/post" {
			t.Errorf("request = %s %s", request.Method, request.URL.Path)
		}
		query := request.URL.Query()
		if query.Get("page") != "1" || query.Get("limit") != "10" || !query.Has("search") || query.Get("search") != "" {
			t.Errorf("query = %q", request.URL.RawQuery)
		}
		if got := request.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q", got)
		}
		if request.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID")
		}
		writer.Header().Set("Content-Type", "application/json")
		io.WriteString(writer, `{"posts":[
			{"_id":"p1","title":"First","content":"Hello","author_id":{"_id":"u1","name":"Ada","email":"ada@example.com"}},
			{"_id":"p2","title":"Second","content":"World","author_id":{"_id":"u1","name":"Ada","email":"ada@example.com"}},
			{"_id":"p3","title":"Third","content":"","author_id":{"_id":"u2","name":"Lin","email":"lin@example.com"}},
			{"_id":"p4","title":"Fourth","content":"","author_id":{"_id":"u2","name":"Lin","email":"lin@example.com"}},
			{"_id":"p5","title":"Fifth","content":"","author_id":{"_id":"u2","name":"Lin","email":"lin@example.com"}}
		],"totalPosts":42}`)
	}, "tok-123")

	page, err := client.Posts().List(context.Background(), ListQuery{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Records) != 5 || page.TotalCount != 42 {
		t.Fatalf("page = %d records, total %d", len(page.Records), page.TotalCount)
	}
	if page.Records[0].Author.Name != "Ada" || page.Records[0].ID != "p1" {
		t.Errorf("first record = %+v", page.Records[0])
	}
}

func TestMissingTokenSkipsNetwork(t *testing.T) {
	t.Parallel()
	called := false
	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		called = true
	}, "")

	_, err := client.Users().List(context.Background(), ListQuery{Page: 1, Limit: 10})
	if !IsUnauthorized(err) {
		t.Fatalf("err = %v, want Unauthorized", err)
	}
	if called {
		t.Error("request was sent without a token")
	}
}

func TestErrorKinds(t *testing.T) {
	t.Parallel()
	tests := []struct {
		status  int
		body    string
		kind    ErrorKind
		message string
	}{
		{http.StatusUnauthorized, `{"message":"Unauthorized"}`, Unauthorized, "Unauthorized"},
		{http.StatusForbidden, `{"message":"Forbidden"}`, Unauthorized, "Forbidden"},
		{http.StatusBadRequest, `{"message":"Email already exists"}`, Validation, "Email already exists"},
		{http.StatusUnprocessableEntity, `{"message":"bad role"}`, Validation, "bad role"},
		{http.StatusServiceUnavailable, `upstream down`, Transport, "unexpected 503 response from DELETE /post/p9: upstream down"},
		{http.StatusNotFound, `{"message":"Post not found"}`, Unknown, "Post not found"},
		{http.StatusInternalServerError, ``, Unknown, "unexpected 500 response from DELETE /post/p9"},
	}
	for _, test := range tests {
		t.Run(http.StatusText(test.status), func(t *testing.T) {
			t.Parallel()
			client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
				writer.WriteHeader(test.status)
				io.WriteString(writer, test.body)
			}, "tok")
			_, err := client.Posts().Delete(context.Background(), "p9")
			var requestErr *RequestError
			if !errors.As(err, &requestErr) {
				t.Fatalf("err = %v, want *RequestError", err)
			}
			if requestErr.Kind != test.kind {
				t.Errorf("Kind = %v, want %v", requestErr.Kind, test.kind)
			}
			if requestErr.StatusCode != test.status {
				t.Errorf("StatusCode = %d", requestErr.StatusCode)
			}
			if requestErr.Message != test.message {
				t.Errorf("Message = %q, want %q", requestErr.Message, test.message)
			}
		})
	}
}

func TestTransportFailure(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client, err := NewClient(ClientConfig{BaseURL: baseURL, Tokens: StaticToken("tok")})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, err = client.Profile().Me(context.Background())
	if KindOf(err) != Transport {
		t.Fatalf("KindOf = %v (%v), want Transport", KindOf(err), err)
	}
}

func TestCanceledContext(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		io.WriteString(writer, `{"user":{}}`)
	}, "tok")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.Profile().Me(ctx)
	if KindOf(err) != Transport || !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want Transport wrapping context.Canceled", err)
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/api/auth/login" || request.Method != http.MethodPost {
			t.Errorf("request = %s %s", request.Method, request.URL.Path)
		}
		if request.Header.Get("Authorization") != "" {
			t.Error("login sent an Authorization header")
		}
		var body map[string]string
		if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		if body["email"] == "admin@example.com" && body["password"] == "Secret123" {
			io.WriteString(writer, `{"success":true,"jwtToken":"jwt-abc","message":"Login successful"}`)
			return
		}
		writer.WriteHeader(http.StatusUnauthorized)
		io.WriteString(writer, `{"success":false,"message":"Invalid credentials"}`)
	}, "")

	password, err := secret.NewFromBytes([]byte("Secret123"))
	if err != nil {
		t.Fatalf("secret: %v", err)
	}
	defer password.Close()

	result, err := client.Auth().Login(context.Background(), "admin@example.com", password)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Token != "jwt-abc" || result.Message != "Login successful" {
		t.Errorf("result = %+v", result)
	}

	_, err = client.Auth().Login(context.Background(), "someone@example.com", password)
	if !IsUnauthorized(err) || MessageOf(err, "") != "Invalid credentials" {
		t.Errorf("bad credentials err = %v", err)
	}
}

func TestPostCreateMultipart(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		if err := request.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm: %v", err)
			writer.WriteHeader(http.StatusBadRequest)
			return
		}
		if request.FormValue("title") != "Launch" || request.FormValue("content") != "" {
			t.Errorf("fields = %v", request.MultipartForm.Value)
		}
		file, header, err := request.FormFile("image")
		if err != nil {
			t.Errorf("FormFile: %v", err)
			writer.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		if header.Filename != "cover.png" || string(data) != "PNGDATA" {
			t.Errorf("image = %s %q", header.Filename, data)
		}
		io.WriteString(writer, `{"success":true,"message":"Post created successfully"}`)
	}, "tok")

	result, err := client.Posts().Create(context.Background(), PostDraft{
		Title: "Launch",
		Image: &Upload{Filename: "cover.png", Body: strings.NewReader("PNGDATA")},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !result.Success || result.Message != "Post created successfully" {
		t.Errorf("result = %+v", result)
	}
}

func TestUsersCRUD(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		switch request.Method + " " + request.URL.Path {
		case "GET /api/user/u1":
			io.WriteString(writer, `{"user":{"_id":"u1","name":"Ada","email":"ada@example.com","role":"Admin","posts":[{"_id":"p1","title":"Hi"}]}}`)
		case "GET /api/user":
			if request.URL.Query().Get("search") != "ada" {
				t.Errorf("search = %q", request.URL.Query().Get("search"))
			}
			io.WriteString(writer, `{"users":[{"_id":"u1","name":"Ada","email":"ada@example.com","role":"Admin"}],"totalUsers":1}`)
		case "POST /api/user", "PUT /api/user/u1":
			var draft UserDraft
			json.NewDecoder(request.Body).Decode(&draft)
			if draft.Name != "Ada" || draft.Role != RoleAdmin {
				t.Errorf("draft = %+v", draft)
			}
			io.WriteString(writer, `{"success":true,"message":"ok"}`)
		case "DELETE /api/user/u1":
			io.WriteString(writer, `{"success":true,"message":"User deleted"}`)
		default:
			t.Errorf("unexpected %s %s", request.Method, request.URL.Path)
			writer.WriteHeader(http.StatusNotFound)
		}
	}, "tok")
	ctx := context.Background()

	detail, err := client.Users().Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if detail.Name != "Ada" || detail.Role != RoleAdmin || len(detail.Posts) != 1 {
		t.Errorf("detail = %+v", detail)
	}

	page, err := client.Users().List(ctx, ListQuery{Page: 1, Limit: 10, Search: "ada"})
	if err != nil || page.TotalCount != 1 || page.Records[0].Email != "ada@example.com" {
		t.Errorf("List = %+v, %v", page, err)
	}

	draft := UserDraft{Name: "Ada", Email: "ada@example.com", Password: "Secret123", Role: RoleAdmin}
	if _, err := client.Users().Create(ctx, draft); err != nil {
		t.Errorf("Create: %v", err)
	}
	if _, err := client.Users().Update(ctx, "u1", UserDraft{Name: "Ada", Role: RoleAdmin}); err != nil {
		t.Errorf("Update: %v", err)
	}
	result, err := client.Users().Delete(ctx, "u1")
	if err != nil || result.Message != "User deleted" {
		t.Errorf("Delete = %+v, %v", result, err)
	}
}

func TestUpdateOmitsEmptyCredentials(t *testing.T) {
	t.Parallel()
	encoded, err := json.Marshal(UserDraft{Name: "Ada", Role: RoleUser})
	if err != nil {
		t.Fatal(err)
	}
	if string(encoded) != `{"name":"Ada","role":"User"}` {
		t.Errorf("encoded = %s", encoded)
	}
}
