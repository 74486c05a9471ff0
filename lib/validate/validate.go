// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

// Package validate checks form input before any request is sent.
// Failures come back as Errors, one message per field, worded the way
// the forms display them.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/FahadRazzaq1121/postapp/lib/api"
	"github.com/FahadRazzaq1121/postapp/lib/dashboard"
)

// LoginForm is the login screen input.
type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserForm is the create/edit user input.
type UserForm struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,has_upper,has_lower,has_digit"`
	Role     string `json:"role" validate:"required"`
}

// userEdit is the part of UserForm an edit sends. Email and password
// are fixed.
type userEdit struct {
	Name string `json:"name" validate:"required"`
	Role string `json:"role" validate:"required"`
}

// PostForm is the create post input. ImagePath is optional.
type PostForm struct {
	Title     string `json:"title" validate:"required"`
	Content   string `json:"content"`
	ImagePath string `json:"image" validate:"omitempty,file"`
}

// FieldError is one failed field.
type FieldError struct {
	Field   string
	Message string
}

// Errors lists failed fields in form order.
type Errors []FieldError

func (e Errors) Error() string {
	messages := make([]string, len(e))
	for index, fieldError := range e {
		messages[index] = fieldError.Message
	}
	return strings.Join(messages, "; ")
}

// For returns the message for field, or "".
func (e Errors) For(field string) string {
	for _, fieldError := range e {
		if fieldError.Field == field {
			return fieldError.Message
		}
	}
	return ""
}

var messages = map[string]string{
	"email.required":     "Email is required",
	"email.email":        "Email must be a valid email",
	"password.required":  "Password is required",
	"password.min":       "Password must be at least %s characters",
	"password.has_upper": "Password must contain at least one uppercase letter",
	"password.has_lower": "Password must contain at least one lowercase letter",
	"password.has_digit": "Password must contain at least one number",
	"name.required":      "Name is required",
	"role.required":      "Role is required",
	"title.required":     "Title is required",
	"image.file":         "Image must be an existing file",
}

var engine = newEngine()

func newEngine() *validator.Validate {
	engine := validator.New(validator.WithRequiredStructEnabled())
	engine.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	register := func(tag string, accept func(rune) bool) {
		engine.RegisterValidation(tag, func(level validator.FieldLevel) bool {
			return strings.IndexFunc(level.Field().String(), accept) >= 0
		})
	}
	register("has_upper", unicode.IsUpper)
	register("has_lower", unicode.IsLower)
	register("has_digit", unicode.IsDigit)
	return engine
}

// check runs the struct rules and converts the result to Errors.
func check(form any) Errors {
	err := engine.Struct(form)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return Errors{{Message: err.Error()}}
	}
	result := make(Errors, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		field := fieldError.Field()
		message, ok := messages[field+"."+fieldError.Tag()]
		switch {
		case !ok:
			message = fmt.Sprintf("%s is invalid", field)
		case strings.Contains(message, "%s"):
			message = fmt.Sprintf(message, fieldError.Param())
		}
		result = append(result, FieldError{Field: field, Message: message})
	}
	return result
}

func orNil(result Errors) error {
	if len(result) == 0 {
		return nil
	}
	return result
}

// Login checks the login form.
func Login(form LoginForm) error {
	form.Email = strings.TrimSpace(form.Email)
	return orNil(check(form))
}

// NewUser checks a user being created by a caller with role caller.
func NewUser(form UserForm, caller api.Role) error {
	result := check(form)
	result = append(result, checkRole(form.Role, caller, result)...)
	return orNil(result)
}

// EditUser checks an edit of an existing user by caller.
func EditUser(form UserForm, caller api.Role) error {
	result := check(userEdit{Name: form.Name, Role: form.Role})
	result = append(result, checkRole(form.Role, caller, result)...)
	return orNil(result)
}

func checkRole(role string, caller api.Role, existing Errors) Errors {
	if role == "" || existing.For("role") != "" {
		return nil
	}
	allowed := dashboard.AssignableRoles(caller)
	names := make([]string, len(allowed))
	for index, candidate := range allowed {
		if string(candidate) == role {
			return nil
		}
		names[index] = string(candidate)
	}
	if len(names) == 0 {
		return Errors{{Field: "role", Message: "You are not allowed to assign roles"}}
	}
	return Errors{{Field: "role", Message: "Role must be one of: " + strings.Join(names, ", ")}}
}

// Post checks the create post form.
func Post(form PostForm) error {
	return orNil(check(form))
}
