// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/pflag"

	"github.com/FahadRazzaq1121/postapp/lib/api"
	"github.com/FahadRazzaq1121/postapp/lib/config"
	"github.com/FahadRazzaq1121/postapp/lib/dashboard"
	"github.com/FahadRazzaq1121/postapp/lib/tokencache"
)

// ClientParams selects the configuration every networked command
// starts from. Embed it in a params struct.
type ClientParams struct {
	ConfigFile string
	BaseURL    string
}

// AddFlags implements [FlagBinder].
func (p *ClientParams) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&p.ConfigFile, "config", "", "configuration file (default: $POSTADMIN_CONFIG, then built-in defaults)")
	flagSet.StringVar(&p.BaseURL, "api-url", "", "API base URL, overriding api.base_url")
}

// LoadConfig reads and validates the configuration.
func (p *ClientParams) LoadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if p.ConfigFile != "" {
		cfg, err = config.LoadFile(p.ConfigFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, Validation("%w", err)
	}
	if p.BaseURL != "" {
		cfg.API.BaseURL = p.BaseURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, Validation("invalid configuration:\n%w", err)
	}
	return cfg, nil
}

// Environment is what a networked command works with: the loaded
// configuration, the token cache for the configured backend, and an
// API client that reads its bearer token from that cache.
type Environment struct {
	Config  *config.Config
	Tokens  *tokencache.Cache
	Client  *api.Client
	Streams Streams
	Logger  *slog.Logger
}

// Open loads configuration and builds the Environment.
func (p *ClientParams) Open(streams Streams, logger *slog.Logger) (*Environment, error) {
	cfg, err := p.LoadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.EnsurePaths(); err != nil {
		return nil, Internal("%w", err)
	}
	tokens, err := tokencache.New(tokencache.Config{
		Directory: cfg.Paths.State,
		BaseURL:   cfg.API.BaseURL,
		Logger:    logger,
	})
	if err != nil {
		return nil, Internal("%w", err)
	}
	client, err := api.NewClient(api.ClientConfig{
		BaseURL:    cfg.API.BaseURL,
		HTTPClient: &http.Client{Timeout: cfg.API.Timeout},
		Tokens:     tokens,
		Logger:     logger,
	})
	if err != nil {
		return nil, Validation("%w", err)
	}
	return &Environment{Config: cfg, Tokens: tokens, Client: client, Streams: streams, Logger: logger}, nil
}

// Fail converts an error from the API or the token cache into the
// command's result. Session failures clear the stored token, tell the
// user to log in again, and exit with [ExitUnauthorized]. Everything
// else becomes a categorized [ToolError] prefixed with action.
func (e *Environment) Fail(action string, err error) error {
	if dashboard.IsSessionError(err) {
		if clearErr := e.Tokens.Clear(); clearErr != nil {
			e.Logger.Error("clearing access token", "error", clearErr)
		}
		fmt.Fprintf(e.Streams.Err, "error: %s: %s\nRun 'postadmin login' to sign in again.\n",
			action, api.MessageOf(err, "not logged in"))
		return &ExitError{Code: ExitUnauthorized}
	}

	var requestErr *api.RequestError
	if !errors.As(err, &requestErr) {
		return Internal("%s: %w", action, err)
	}
	switch {
	case requestErr.StatusCode == http.StatusNotFound:
		return NotFound("%s: %w", action, err)
	case requestErr.StatusCode == http.StatusConflict:
		return Conflict("%s: %w", action, err)
	case requestErr.Kind == api.Validation:
		return Validation("%s: %w", action, err)
	case requestErr.Kind == api.Transport:
		return Transient("%s: %w", action, err)
	}
	return Internal("%s: %w", action, err)
}
