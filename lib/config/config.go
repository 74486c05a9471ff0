// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads postadmin configuration.
//
// Configuration comes from a single file named by the POSTADMIN_CONFIG
// environment variable or the --config flag. Without either, the
// built-in defaults apply. YAML is the native format; files ending in
// .json or .jsonc are read as JSON with comments and trailing commas.
//
// The file may carry development, staging, and production sections
// that override base values when the environment matches. String
// values may reference ${VAR} or ${VAR:-default}.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Environment names a deployment target.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// PageSize is the fixed number of records per list page.
const PageSize = 10

// Config is the complete postadmin configuration.
type Config struct {
	Environment Environment `yaml:"environment"`

	API   APIConfig   `yaml:"api"`
	List  ListConfig  `yaml:"list"`
	UI    UIConfig    `yaml:"ui"`
	Paths PathsConfig `yaml:"paths"`

	Development *Overrides `yaml:"development,omitempty"`
	Staging     *Overrides `yaml:"staging,omitempty"`
	Production  *Overrides `yaml:"production,omitempty"`
}

// Overrides holds the per-environment replacements. Empty fields keep
// the base value.
type Overrides struct {
	API   *APIConfig   `yaml:"api,omitempty"`
	List  *ListConfig  `yaml:"list,omitempty"`
	Paths *PathsConfig `yaml:"paths,omitempty"`
}

// APIConfig locates the backend.
type APIConfig struct {
	// BaseURL is the API root, e.g. http://localhost:8000/api.
	BaseURL string `yaml:"base_url"`

	// Timeout bounds each request. Zero disables the bound.
	Timeout time.Duration `yaml:"timeout"`
}

// ListConfig tunes the paginated list views.
type ListConfig struct {
	PageSize int           `yaml:"page_size"`
	Debounce time.Duration `yaml:"debounce"`

	// ResetPageOnSearch returns the view to page 1 whenever the
	// debounced search text changes. Nil means true.
	ResetPageOnSearch *bool `yaml:"reset_page_on_search,omitempty"`
}

// ResetsPage reports the effective ResetPageOnSearch value.
func (l ListConfig) ResetsPage() bool {
	return l.ResetPageOnSearch == nil || *l.ResetPageOnSearch
}

// UIConfig tunes the terminal interface.
type UIConfig struct {
	ToastDuration time.Duration `yaml:"toast_duration"`
}

// PathsConfig locates on-disk state.
type PathsConfig struct {
	// State holds the sealed token cache and its identity.
	State string `yaml:"state"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Environment: Development,
		API: APIConfig{
			BaseURL: "${POSTADMIN_API_URL:-http://localhost:8000/api}",
			Timeout: 30 * time.Second,
		},
		List: ListConfig{
			PageSize: PageSize,
			Debounce: 500 * time.Millisecond,
		},
		UI: UIConfig{
			ToastDuration: 3 * time.Second,
		},
		Paths: PathsConfig{
			State: "${POSTADMIN_STATE_DIR:-" + defaultStateDir() + "}",
		},
	}
}

func defaultStateDir() string {
	if base := os.Getenv("XDG_STATE_HOME"); base != "" {
		return filepath.Join(base, "postadmin")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "postadmin")
}

// Load reads the file named by POSTADMIN_CONFIG, or returns the
// expanded defaults when it is unset.
func Load() (*Config, error) {
	path := os.Getenv("POSTADMIN_CONFIG")
	if path == "" {
		cfg := Default()
		cfg.applyEnvironmentOverrides()
		cfg.expandVariables()
		return cfg, nil
	}
	return LoadFile(path)
}

// LoadFile reads path over the defaults, applies the section for the
// configured environment, and expands variables.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		// Standard JSON is a YAML subset, so the YAML decoder also
		// handles the duration strings.
		data = jsonc.ToJSON(data)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()
	return cfg, nil
}

func (c *Config) applyEnvironmentOverrides() {
	var overrides *Overrides
	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
	}
	if overrides == nil {
		return
	}

	if overrides.API != nil {
		if overrides.API.BaseURL != "" {
			c.API.BaseURL = overrides.API.BaseURL
		}
		if overrides.API.Timeout != 0 {
			c.API.Timeout = overrides.API.Timeout
		}
	}
	if overrides.List != nil {
		if overrides.List.Debounce != 0 {
			c.List.Debounce = overrides.List.Debounce
		}
		if overrides.List.ResetPageOnSearch != nil {
			c.List.ResetPageOnSearch = overrides.List.ResetPageOnSearch
		}
	}
	if overrides.Paths != nil && overrides.Paths.State != "" {
		c.Paths.State = overrides.Paths.State
	}
}

func (c *Config) expandVariables() {
	vars := map[string]string{"HOME": os.Getenv("HOME")}
	c.API.BaseURL = strings.TrimRight(expandVars(c.API.BaseURL, vars), "/")
	c.Paths.State = expandVars(c.Paths.State, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars replaces ${NAME} and ${NAME:-fallback}. Values in vars win
// over the process environment.
func expandVars(text string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(text, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		name, fallback := parts[1], parts[2]
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return fallback
	})
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var errs []error

	switch c.Environment {
	case Development, Staging, Production:
	default:
		errs = append(errs, fmt.Errorf("invalid environment: %q", c.Environment))
	}
	if c.API.BaseURL == "" {
		errs = append(errs, errors.New("api.base_url is required"))
	} else if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		errs = append(errs, fmt.Errorf("api.base_url must be an http or https URL, got %q", c.API.BaseURL))
	}
	if c.API.Timeout < 0 {
		errs = append(errs, errors.New("api.timeout must not be negative"))
	}
	if c.List.PageSize != PageSize {
		errs = append(errs, fmt.Errorf("list.page_size must be %d", PageSize))
	}
	if c.List.Debounce <= 0 {
		errs = append(errs, errors.New("list.debounce must be positive"))
	}
	if c.UI.ToastDuration <= 0 {
		errs = append(errs, errors.New("ui.toast_duration must be positive"))
	}
	if c.Paths.State == "" {
		errs = append(errs, errors.New("paths.state is required"))
	}

	return errors.Join(errs...)
}

// EnsurePaths creates the state directory with owner-only access.
func (c *Config) EnsurePaths() error {
	if err := os.MkdirAll(c.Paths.State, 0o700); err != nil {
		return fmt.Errorf("config: creating %s: %w", c.Paths.State, err)
	}
	return nil
}
