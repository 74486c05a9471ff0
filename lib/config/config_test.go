// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	t.Setenv("POSTADMIN_CONFIG", "")
	t.Setenv("POSTADMIN_API_URL", "")
	t.Setenv("POSTADMIN_STATE_DIR", "/tmp/postadmin-state")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:8000/api" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.Paths.State != "/tmp/postadmin-state" {
		t.Errorf("State = %q", cfg.Paths.State)
	}
	if cfg.List.Debounce != 500*time.Millisecond || cfg.List.PageSize != 10 {
		t.Errorf("List = %+v", cfg.List)
	}
	if !cfg.List.ResetsPage() {
		t.Error("ResetsPage defaults to false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadFileYAMLWithEnvironmentOverride(t *testing.T) {
	t.Setenv("POSTADMIN_API_URL", "")
	path := writeConfig(t, "postadmin.yaml", `
environment: production
api:
  base_url: http://localhost:8000/api/
  timeout: 10s
list:
  debounce: 250ms
production:
  api:
    base_url: https://admin.example.com/api
  list:
    reset_page_on_search: false
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.API.BaseURL != "https://admin.example.com/api" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v", cfg.API.Timeout)
	}
	if cfg.List.Debounce != 250*time.Millisecond {
		t.Errorf("Debounce = %v", cfg.List.Debounce)
	}
	if cfg.List.ResetsPage() {
		t.Error("production override of reset_page_on_search ignored")
	}
}

func TestLoadFileJSONC(t *testing.T) {
	t.Setenv("BACKEND", "http://10.0.0.5:8000/api")
	path := writeConfig(t, "postadmin.jsonc", `{
  // comments and trailing commas are accepted
  "api": {"base_url": "${BACKEND}", "timeout": "5s",},
  "ui": {"toast_duration": "4s"},
}`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.API.BaseURL != "http://10.0.0.5:8000/api" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.UI.ToastDuration != 4*time.Second {
		t.Errorf("ToastDuration = %v", cfg.UI.ToastDuration)
	}
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	t.Parallel()
	cfg := &Config{
		Environment: "lab",
		API:         APIConfig{BaseURL: "ftp://example"},
		List:        ListConfig{PageSize: 25},
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate accepted an invalid config")
	}
	for _, fragment := range []string{
		"invalid environment",
		"api.base_url must be",
		"list.page_size must be 10",
		"list.debounce must be positive",
		"ui.toast_duration must be positive",
		"paths.state is required",
	} {
		if !strings.Contains(err.Error(), fragment) {
			t.Errorf("error %q missing %q", err, fragment)
		}
	}
}

func TestExpandVars(t *testing.T) {
	t.Setenv("POSTADMIN_TEST_UNSET", "")
	t.Setenv("POSTADMIN_TEST_SET", "from-env")
	vars := map[string]string{"LOCAL": "from-map"}

	tests := []struct {
		input string
		want  string
	}{
		{"${LOCAL}/x", "from-map/x"},
		{"${POSTADMIN_TEST_SET}", "from-env"},
		{"${POSTADMIN_TEST_UNSET:-fallback}", "fallback"},
		{"plain", "plain"},
	}
	for _, test := range tests {
		if got := expandVars(test.input, vars); got != test.want {
			t.Errorf("expandVars(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}
