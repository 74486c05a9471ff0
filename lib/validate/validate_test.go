// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package validate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/FahadRazzaq1121/postapp/lib/api"
)

func fieldMessage(t *testing.T, err error, field string) string {
	t.Helper()
	var result Errors
	if !errors.As(err, &result) {
		t.Fatalf("err = %v, want Errors", err)
	}
	return result.For(field)
}

func TestLogin(t *testing.T) {
	t.Parallel()
	if err := Login(LoginForm{Email: "admin@example.com", Password: "x"}); err != nil {
		t.Errorf("valid login rejected: %v", err)
	}
	err := Login(LoginForm{Email: "not-an-email"})
	if got := fieldMessage(t, err, "email"); got != "Email must be a valid email" {
		t.Errorf("email message = %q", got)
	}
	if got := fieldMessage(t, err, "password"); got != "Password is required" {
		t.Errorf("password message = %q", got)
	}
}

func TestNewUserPasswordRules(t *testing.T) {
	t.Parallel()
	base := UserForm{Name: "Ada", Email: "ada@example.com", Role: "User"}
	tests := []struct {
		password string
		want     string
	}{
		{"", "Password is required"},
		{"Ab1", "Password must be at least 8 characters"},
		{"lowercase1", "Password must contain at least one uppercase letter"},
		{"UPPERCASE1", "Password must contain at least one lowercase letter"},
		{"NoDigitsHere", "Password must contain at least one number"},
		{"Secret123", ""},
	}
	for _, test := range tests {
		form := base
		form.Password = test.password
		err := NewUser(form, api.RoleAdmin)
		if test.want == "" {
			if err != nil {
				t.Errorf("password %q rejected: %v", test.password, err)
			}
			continue
		}
		if got := fieldMessage(t, err, "password"); got != test.want {
			t.Errorf("password %q: message %q, want %q", test.password, got, test.want)
		}
	}
}

func TestNewUserRequiredFieldsAndRoles(t *testing.T) {
	t.Parallel()
	err := NewUser(UserForm{}, api.RoleSuperAdmin)
	for field, want := range map[string]string{
		"name":  "Name is required",
		"email": "Email is required",
		"role":  "Role is required",
	} {
		if got := fieldMessage(t, err, field); got != want {
			t.Errorf("%s message = %q, want %q", field, got, want)
		}
	}

	form := UserForm{Name: "Ada", Email: "ada@example.com", Password: "Secret123", Role: "SuperAdmin"}
	if err := NewUser(form, api.RoleSuperAdmin); err != nil {
		t.Errorf("SuperAdmin creating SuperAdmin: %v", err)
	}
	if got := fieldMessage(t, NewUser(form, api.RoleAdmin), "role"); got != "Role must be one of: User" {
		t.Errorf("Admin creating SuperAdmin: %q", got)
	}
	if got := fieldMessage(t, NewUser(form, api.RoleUser), "role"); got != "You are not allowed to assign roles" {
		t.Errorf("User creating SuperAdmin: %q", got)
	}
}

func TestEditUserIgnoresEmailAndPassword(t *testing.T) {
	t.Parallel()
	form := UserForm{Name: "Ada", Role: "Admin"}
	if err := EditUser(form, api.RoleSuperAdmin); err != nil {
		t.Errorf("edit without password rejected: %v", err)
	}
	form.Email = "not an email"
	form.Password = "short"
	if err := EditUser(form, api.RoleSuperAdmin); err != nil {
		t.Errorf("edit with fixed email and password rejected: %v", err)
	}
	form.Name = ""
	err := EditUser(form, api.RoleSuperAdmin)
	if got := fieldMessage(t, err, "name"); got != "Name is required" {
		t.Errorf("name message = %q", got)
	}
	if got := fieldMessage(t, err, "password"); got != "" {
		t.Errorf("password checked on edit: %q", got)
	}
}

func TestPost(t *testing.T) {
	t.Parallel()
	if got := fieldMessage(t, Post(PostForm{}), "title"); got != "Title is required" {
		t.Errorf("title message = %q", got)
	}
	image := filepath.Join(t.TempDir(), "cover.png")
	if err := os.WriteFile(image, []byte("png"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := Post(PostForm{Title: "Hello", ImagePath: image}); err != nil {
		t.Errorf("valid post rejected: %v", err)
	}
	missing := filepath.Join(t.TempDir(), "missing.png")
	if got := fieldMessage(t, Post(PostForm{Title: "Hello", ImagePath: missing}), "image"); got != "Image must be an existing file" {
		t.Errorf("image message = %q", got)
	}
}
