// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/FahadRazzaq1121/postapp/lib/api"
	"github.com/FahadRazzaq1121/postapp/lib/tokencache"
)

func testEnvironment(t *testing.T) (*Environment, *bytes.Buffer) {
	t.Helper()
	tokens, err := tokencache.New(tokencache.Config{Directory: t.TempDir(), BaseURL: "http://backend.test/api"})
	if err != nil {
		t.Fatal(err)
	}
	var stderr bytes.Buffer
	return &Environment{
		Tokens:  tokens,
		Streams: Streams{Out: io.Discard, Err: &stderr},
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, &stderr
}

func TestEnvironmentFail_SessionErrorsExitTwo(t *testing.T) {
	for _, err := range []error{
		&api.RequestError{Kind: api.Unauthorized, StatusCode: 401, Message: "jwt expired"},
		tokencache.ErrNoToken,
	} {
		env, stderr := testEnvironment(t)
		result := env.Fail("listing posts", err)

		var exitErr *ExitError
		if !errors.As(result, &exitErr) || exitErr.Code != ExitUnauthorized {
			t.Errorf("Fail(%v) = %v, want exit code 2", err, result)
		}
		if !strings.Contains(stderr.String(), "Run 'postadmin login'") {
			t.Errorf("stderr = %q, want a login hint", stderr.String())
		}
	}
}

func TestEnvironmentFail_Categories(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCategory
	}{
		{"not found", &api.RequestError{Kind: api.Unknown, StatusCode: 404, Message: "User not found"}, CategoryNotFound},
		{"conflict", &api.RequestError{Kind: api.Validation, StatusCode: 409, Message: "Email already exists"}, CategoryConflict},
		{"validation", &api.RequestError{Kind: api.Validation, StatusCode: 400, Message: "Title is required"}, CategoryValidation},
		{"transport", &api.RequestError{Kind: api.Transport, Message: "request failed: timed out"}, CategoryTransient},
		{"server", &api.RequestError{Kind: api.Unknown, StatusCode: 500, Message: "boom"}, CategoryInternal},
		{"other", errors.New("disk full"), CategoryInternal},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			env, _ := testEnvironment(t)
			result := env.Fail("doing it", test.err)
			var toolErr *ToolError
			if !errors.As(result, &toolErr) {
				t.Fatalf("Fail() = %T, want *ToolError", result)
			}
			if toolErr.Category != test.want {
				t.Errorf("Category = %q, want %q", toolErr.Category, test.want)
			}
			if !errors.Is(result, test.err) {
				t.Error("original error lost")
			}
			if !strings.HasPrefix(result.Error(), "doing it: ") {
				t.Errorf("Error() = %q, want action prefix", result.Error())
			}
		})
	}
}

func TestClientParams_LoadConfig(t *testing.T) {
	t.Setenv("POSTADMIN_CONFIG", "")
	t.Setenv("POSTADMIN_STATE_DIR", t.TempDir())

	params := ClientParams{BaseURL: "http://127.0.0.1:9999/api"}
	cfg, err := params.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.API.BaseURL != "http://127.0.0.1:9999/api" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}

	params.BaseURL = "ftp://example.com"
	_, err = params.LoadConfig()
	var toolErr *ToolError
	if !errors.As(err, &toolErr) || toolErr.Category != CategoryValidation {
		t.Errorf("LoadConfig(ftp) error = %v, want validation", err)
	}
}

func TestClientParams_ConfigFile(t *testing.T) {
	state := t.TempDir()
	path := filepath.Join(t.TempDir(), "postadmin.yaml")
	content := "environment: staging\napi:\n  base_url: http://base.test/api\npaths:\n  state: " + state + "\nstaging:\n  api:\n    base_url: http://staging.test/api\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	params := ClientParams{ConfigFile: path}
	env, err := params.Open(Streams{Err: io.Discard}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if env.Client.BaseURL() != "http://staging.test/api" {
		t.Errorf("BaseURL = %q, want the staging override", env.Client.BaseURL())
	}
	if env.Tokens.Scope() != tokencache.Scope("http://staging.test/api") {
		t.Error("token cache not scoped to the effective base URL")
	}
}
