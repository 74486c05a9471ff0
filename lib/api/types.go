// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"io"
	"net/url"
	"strconv"
)

// Role is a user's authorization level.
type Role string

const (
	RoleSuperAdmin Role = "SuperAdmin"
	RoleAdmin      Role = "Admin"
	RoleUser       Role = "User"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleUser:
		return true
	}
	return false
}

// Author is the populated author of a post.
type Author struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Post is one post record.
type Post struct {
	ID      string `json:"_id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Image   string `json:"image,omitempty"`
	Author  Author `json:"author_id"`
}

// User is one user record. The password never comes back.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// UserDetail is a user with the posts they authored.
type UserDetail struct {
	User
	Posts []Post `json:"posts"`
}

// Page is one page of a list endpoint. TotalCount is the number of
// records matching the search across all pages.
type Page[T any] struct {
	Records    []T
	TotalCount int
}

// ListQuery selects one page of a list endpoint.
type ListQuery struct {
	Page   int
	Limit  int
	Search string
}

// Values encodes the query. search is always sent, empty or not.
func (q ListQuery) Values() url.Values {
	values := url.Values{}
	values.Set("page", strconv.Itoa(q.Page))
	values.Set("limit", strconv.Itoa(q.Limit))
	values.Set("search", q.Search)
	return values
}

// MutationResult is the acknowledgement returned by create, update,
// and delete endpoints.
type MutationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// LoginResult is the response of POST /auth/login.
type LoginResult struct {
	Success bool   `json:"success"`
	Token   string `json:"jwtToken"`
	Message string `json:"message"`
}

// UserDraft is the body of user create and update requests. Email and
// Password are omitted from updates when empty.
type UserDraft struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	Role     Role   `json:"role"`
}

// PostDraft is the content of a new post.
type PostDraft struct {
	Title   string
	Content string

	// Image is optional.
	Image *Upload
}

// Upload is a file part of a multipart request. ContentType defaults
// to application/octet-stream.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}
